package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/internal/service"
	"github.com/rshanto/gameghor/internal/transport/nagad"
)

type CatalogServicer interface {
	Create(ctx context.Context, args service.CreateGameArgs) (*domain.Game, error)
	FindByID(ctx context.Context, id int64) (*domain.Game, error)
	List(ctx context.Context, args repoargs.ListGames) ([]domain.Game, error)
	Delete(ctx context.Context, id int64) error
}

type CouponServicer interface {
	Validate(ctx context.Context, code string, gameID int64) (*domain.CouponResult, error)
	Create(ctx context.Context, args service.CreateCouponArgs) (*domain.Coupon, error)
	Update(ctx context.Context, id int64, args repoargs.UpdateCoupon) (*domain.Coupon, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Coupon, error)
}

type OrderServicer interface {
	PlaceOrder(ctx context.Context, args service.PlaceOrderArgs) (*domain.Order, error)
	SetStatus(ctx context.Context, id int64, status domain.OrderStatusType) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
}

type ReviewServicer interface {
	Create(ctx context.Context, gameID int64, args service.CreateReviewArgs) (*domain.Review, error)
	ListByGame(ctx context.Context, gameID int64) ([]domain.Review, error)
}

type PaymentVerifier interface {
	Verify(ctx context.Context, paymentNumber, transactionID string, expectedAmount decimal.Decimal) nagad.Result
}
