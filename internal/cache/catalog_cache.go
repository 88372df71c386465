// Package cache хранит витринные выборки каталога в redis. Кеш строго
// display-only: прием заказов его не читает, чтобы проверка остатка всегда
// шла по свежим данным из БД.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
)

const (
	// game_list:{q}:{platform}:{featured} -> json списка игр
	keyGameList = "game_list:%s:%s:%s"

	defaultTTL     = 30 * time.Second
	requestTimeout = 2 * time.Second
)

type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
	l   *logrus.Entry
}

func New(addr string, l *logrus.Logger) *CatalogCache {
	return &CatalogCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: defaultTTL,
		l:   l.WithField("component", "catalog-cache"),
	}
}

func (c *CatalogCache) SetTTL(ttl time.Duration) *CatalogCache {
	c.ttl = ttl
	return c
}

// GetGameList возвращает закешированный список игр. Ошибка redis и промах
// неразличимы для вызывающего: и то и другое - false.
func (c *CatalogCache) GetGameList(ctx context.Context, args repoargs.ListGames) ([]domain.Game, bool) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	raw, err := c.rdb.Get(reqCtx, listKey(args)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.l.WithError(err).Debug("cache read failed")
		}
		return nil, false
	}

	var games []domain.Game
	if jsonErr := json.Unmarshal(raw, &games); jsonErr != nil {
		c.l.WithError(jsonErr).Debug("cache entry is not parsable")
		return nil, false
	}
	return games, true
}

// SetGameList пишет список с коротким TTL. Ошибка записи не мешает запросу -
// логируется и глотается.
func (c *CatalogCache) SetGameList(ctx context.Context, args repoargs.ListGames, games []domain.Game) {
	raw, jsonErr := json.Marshal(games)
	if jsonErr != nil {
		c.l.WithError(jsonErr).Debug("cache entry is not serializable")
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := c.rdb.Set(reqCtx, listKey(args), raw, c.ttl).Err(); err != nil {
		c.l.WithError(err).Debug("cache write failed")
	}
}

func listKey(args repoargs.ListGames) string {
	featured := ""
	if args.Featured != nil {
		featured = fmt.Sprintf("%t", *args.Featured)
	}
	return fmt.Sprintf(keyGameList, args.Query, args.Platform, featured)
}
