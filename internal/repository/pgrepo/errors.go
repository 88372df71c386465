package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rshanto/gameghor/internal/domain"
)

const (
	uniqueViolationCode = "23505"
)

// convertErr приводит ошибку хранилища к виду, понятному верхним слоям.
// Особенности:
//   - pgx.ErrNoRows превращается в domain.ErrRecordNotFound;
//   - нарушение уникального ключа (uniqueViolationCode) - в domain.ErrDuplicateKey;
//   - все прочие ошибки возвращаются как domain.ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	var pgErr *pgconn.PgError
	errType := domain.ErrUnknown

	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolationCode {
			errType = domain.ErrDuplicateKey
		}
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}
