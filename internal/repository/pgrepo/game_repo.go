package pgrepo

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/pkg/uow"
)

type GameRepository struct {
	db uow.DBTX
}

func NewGameRepository(db uow.DBTX) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `id, created_at, updated_at, title, description, price, platform,
	category, images, in_stock, stock_count, featured`

func (r *GameRepository) Create(ctx context.Context, args repoargs.CreateGame) (*domain.Game, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO games (title, description, price, platform, category, images, in_stock, stock_count, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+gameColumns,
		args.Title, args.Description, args.Price, string(args.Platform),
		args.Category, args.Images, args.InStock, args.StockCount, args.Featured,
	)
	game, err := scanGame(row)
	if err != nil {
		return nil, convertErr(err, "creating game `%s`", args.Title)
	}
	return game, nil
}

func (r *GameRepository) FindByID(ctx context.Context, id int64) (*domain.Game, error) {
	row := r.db.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	game, err := scanGame(row)
	if err != nil {
		return nil, convertErr(err, "finding game by id `%d`", id)
	}
	return game, nil
}

// List возвращает игры каталога, новые - первыми. Фильтры комбинируются по AND.
func (r *GameRepository) List(ctx context.Context, args repoargs.ListGames) ([]domain.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games`
	var conditions []string
	var queryArgs []any

	appendArg := func(cond string, v any) {
		queryArgs = append(queryArgs, v)
		conditions = append(conditions, strings.Replace(cond, "?", placeholder(len(queryArgs)), 1))
	}

	if args.Query != "" {
		appendArg("title ILIKE ?", "%"+args.Query+"%")
	}
	if args.Platform != "" {
		appendArg("platform = ?", string(args.Platform))
	}
	if args.Featured != nil {
		appendArg("featured = ?", *args.Featured)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, convertErr(err, "listing games")
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		game, scanErr := scanGame(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "listing games")
		}
		games = append(games, *game)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing games")
	}
	return games, nil
}

func (r *GameRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting game with id `%d`", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting game with id `%d`", id)
	}
	return nil
}

// DecrementStock атомарно уменьшает остаток на единицу, только если он
// положителен. Возвращает false, если остаток уже исчерпан.
func (r *GameRepository) DecrementStock(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE games SET stock_count = stock_count - 1, updated_at = now()
		WHERE id = $1 AND stock_count > 0`, id)
	if err != nil {
		return false, convertErr(err, "decrementing stock for game with id `%d`", id)
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*domain.Game, error) {
	var g domain.Game
	var platform string
	err := row.Scan(
		&g.ID, &g.CreatedAt, &g.UpdatedAt, &g.Title, &g.Description, &g.Price,
		&platform, &g.Category, &g.Images, &g.InStock, &g.StockCount, &g.Featured,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	g.Platform = domain.PlatformType(platform)
	return &g, nil
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
