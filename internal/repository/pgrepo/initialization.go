package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	maxConnectAttempts = 30
	retryInterval      = 3 * time.Second
)

// Connect устанавливает соединение с postgres с повторными попытками
// (база может подниматься дольше приложения) и накатывает миграции.
func Connect(ctx context.Context, migrationsDir, dsn string, l *logrus.Logger) (*pgxpool.Pool, error) {
	var conn *pgxpool.Pool

	for attempt := 1; ; attempt++ {
		var connErr error
		conn, connErr = newPostgresConnection(ctx, dsn)
		if connErr == nil {
			break
		}
		if attempt >= maxConnectAttempts {
			return nil, fmt.Errorf("init postgres connection after %d attempts: %w", attempt, connErr)
		}
		l.WithError(connErr).
			WithField("CurrentAttempt", fmt.Sprintf("#%d / %d", attempt, maxConnectAttempts)).
			Warnf("init postgres connection error, retrying in %.f seconds", retryInterval.Seconds())

		select {
		case <-ctx.Done():
			return nil, ctx.Err() //nolint:wrapcheck
		case <-time.After(retryInterval):
		}
	}

	if err := postgresMigrate(migrationsDir, dsn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func newPostgresConnection(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("parse postgres config: %s", confErr.Error())
	}
	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("failed to create pool: %s", poolErr.Error())
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %s", pingErr.Error())
	}

	return pool, nil
}

func postgresMigrate(dir string, dsn string) error {
	m, mErr := migrate.New("file://"+dir, dsn)
	if mErr != nil {
		return fmt.Errorf("failed to create migrate instance: %w", mErr)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
