package service

import (
	"context"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type GameRepository interface {
	Create(ctx context.Context, args repoargs.CreateGame) (*domain.Game, error)
	FindByID(ctx context.Context, id int64) (*domain.Game, error)
	List(ctx context.Context, args repoargs.ListGames) ([]domain.Game, error)
	Delete(ctx context.Context, id int64) error
	DecrementStock(ctx context.Context, id int64) (bool, error)
}

type CouponRepository interface {
	Create(ctx context.Context, args repoargs.CreateCoupon) (*domain.Coupon, error)
	FindByCode(ctx context.Context, code string) (*domain.Coupon, error)
	List(ctx context.Context) ([]domain.Coupon, error)
	Update(ctx context.Context, id int64, args repoargs.UpdateCoupon) (*domain.Coupon, error)
	Delete(ctx context.Context, id int64) error
}

type OrderRepository interface {
	Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatusType) (*domain.Order, error)
}

type UserRepository interface {
	Create(ctx context.Context, args repoargs.CreateUser) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, args repoargs.CreateReview) (*domain.Review, error)
	ListByGameID(ctx context.Context, gameID int64) ([]domain.Review, error)
}

// CouponValidator - движок купонов с точки зрения приема заказов. OrderService
// перепроверяет купон через него на каждом приеме, не доверяя клиентской скидке.
type CouponValidator interface {
	Validate(ctx context.Context, code string, gameID int64) (*domain.CouponResult, error)
}

// CatalogCache кеширует только витринные выборки. Слой приема заказов им
// не пользуется: решение о допуске всегда читает свежие данные из БД.
type CatalogCache interface {
	GetGameList(ctx context.Context, args repoargs.ListGames) ([]domain.Game, bool)
	SetGameList(ctx context.Context, args repoargs.ListGames, games []domain.Game)
}
