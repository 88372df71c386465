package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/pkg/uow"
)

type CatalogService struct {
	uow      uow.UOW
	gameRepo GameRepository
	// cache опционален. Кешируются только витринные списки; карточка игры и
	// прием заказов всегда читают БД напрямую.
	cache CatalogCache
}

func NewCatalogService(u uow.UOW, cache CatalogCache) (*CatalogService, error) {
	gameRepo, err := uow.GetRepositoryAs[GameRepository](u, uow.RepositoryName(repoargs.GameRepoName))
	if err != nil {
		return nil, err
	}
	return &CatalogService{
		uow:      u,
		gameRepo: gameRepo,
		cache:    cache,
	}, nil
}

type CreateGameArgs = repoargs.CreateGame

func (s *CatalogService) Create(ctx context.Context, args CreateGameArgs) (*domain.Game, error) {
	if args.Title == "" {
		return nil, domain.NewInvalidInputError("title")
	}
	if args.Price.IsNegative() {
		return nil, domain.NewInvalidInputError("price")
	}
	if args.StockCount < 0 {
		return nil, domain.NewInvalidInputError("stock_count")
	}

	game, createErr := s.gameRepo.Create(ctx, args)
	if createErr != nil {
		return nil, fmt.Errorf("creating game: %w", createErr)
	}
	return game, nil
}

func (s *CatalogService) FindByID(ctx context.Context, id int64) (*domain.Game, error) {
	game, err := s.gameRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("game")
		}
		return nil, err //nolint:wrapcheck
	}
	return game, nil
}

// List отдает игры каталога, при наличии кеша - через него. Промах и ошибка
// кеша неразличимы: идем в БД и заполняем кеш заново.
func (s *CatalogService) List(ctx context.Context, args repoargs.ListGames) ([]domain.Game, error) {
	if s.cache != nil {
		if games, ok := s.cache.GetGameList(ctx, args); ok {
			return games, nil
		}
	}

	games, err := s.gameRepo.List(ctx, args)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if s.cache != nil {
		s.cache.SetGameList(ctx, args, games)
	}
	return games, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.NewNotFoundError("game")
		}
		return fmt.Errorf("deleting game: %w", err)
	}
	return nil
}
