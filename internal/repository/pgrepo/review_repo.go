package pgrepo

import (
	"context"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/pkg/uow"
)

type ReviewRepository struct {
	db uow.DBTX
}

func NewReviewRepository(db uow.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, created_at, game_id, user_id, rating, comment, author`

func (r *ReviewRepository) Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO reviews (game_id, user_id, rating, comment, author)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+reviewColumns,
		args.GameID, args.UserID, args.Rating, args.Comment, args.Author,
	)
	review, err := scanReview(row)
	if err != nil {
		return nil, convertErr(err, "creating review for game `%d`", args.GameID)
	}
	return review, nil
}

func (r *ReviewRepository) ListByGameID(ctx context.Context, gameID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE game_id = $1 ORDER BY created_at DESC`, gameID)
	if err != nil {
		return nil, convertErr(err, "listing reviews for game `%d`", gameID)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		review, scanErr := scanReview(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "listing reviews for game `%d`", gameID)
		}
		reviews = append(reviews, *review)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing reviews for game `%d`", gameID)
	}
	return reviews, nil
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(&rv.ID, &rv.CreatedAt, &rv.GameID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.Author)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &rv, nil
}
