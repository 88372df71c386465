package pgrepo

import (
	"context"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/pkg/uow"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, created_at, updated_at, email, name, password_hash, role`

func (r *UserRepository) Create(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		args.Email, args.Name, args.PasswordHash, string(args.Role),
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user `%s`", args.Email)
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by email `%s`", email)
	}
	return user, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role string
	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Email, &u.Name, &u.PasswordHash, &role)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	u.Role = domain.RoleType(role)
	return &u, nil
}
