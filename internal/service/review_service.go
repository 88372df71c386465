package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/pkg/uow"
)

const (
	minRating = 1
	maxRating = 5
)

type ReviewService struct {
	uow        uow.UOW
	reviewRepo ReviewRepository
	gameRepo   GameRepository
}

func NewReviewService(u uow.UOW) (*ReviewService, error) {
	reviewRepo, reviewRepoErr := uow.GetRepositoryAs[ReviewRepository](u, uow.RepositoryName(repoargs.ReviewRepoName))
	if reviewRepoErr != nil {
		return nil, reviewRepoErr
	}
	gameRepo, gameRepoErr := uow.GetRepositoryAs[GameRepository](u, uow.RepositoryName(repoargs.GameRepoName))
	if gameRepoErr != nil {
		return nil, gameRepoErr
	}
	return &ReviewService{
		uow:        u,
		reviewRepo: reviewRepo,
		gameRepo:   gameRepo,
	}, nil
}

type CreateReviewArgs struct {
	// UserID - аутентифицированный автор отзыва.
	UserID  int64
	Rating  int32
	Comment string
	Author  string
}

func (s *ReviewService) Create(ctx context.Context, gameID int64, args CreateReviewArgs) (*domain.Review, error) {
	if args.Rating < minRating || args.Rating > maxRating {
		return nil, domain.NewInvalidInputError("rating")
	}

	if _, findErr := s.gameRepo.FindByID(ctx, gameID); findErr != nil {
		if errors.Is(findErr, domain.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("game")
		}
		return nil, fmt.Errorf("creating review: %w", findErr)
	}

	review, createErr := s.reviewRepo.Create(ctx, repoargs.CreateReview{
		GameID:  gameID,
		UserID:  args.UserID,
		Rating:  args.Rating,
		Comment: args.Comment,
		Author:  args.Author,
	})
	if createErr != nil {
		return nil, fmt.Errorf("creating review: %w", createErr)
	}
	return review, nil
}

func (s *ReviewService) ListByGame(ctx context.Context, gameID int64) ([]domain.Review, error) {
	reviews, err := s.reviewRepo.ListByGameID(ctx, gameID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return reviews, nil
}
