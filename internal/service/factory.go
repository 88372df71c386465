package service

import (
	"fmt"

	"github.com/rshanto/gameghor/internal/service/psswd"
	"github.com/rshanto/gameghor/pkg/uow"
)

type AppServices struct {
	CatalogService *CatalogService
	CouponService  *CouponService
	OrderService   *OrderService
	UserService    *UserService
	ReviewService  *ReviewService
}

type FactoryArgs struct {
	JWTSecret []byte
	AdminCode string
	// Cache может быть nil - каталог тогда работает напрямую с БД.
	Cache CatalogCache
}

func Factory(unitOfWork uow.UOW, args FactoryArgs) (*AppServices, error) {
	catalogService, catalogErr := NewCatalogService(unitOfWork, args.Cache)
	if catalogErr != nil {
		return nil, fmt.Errorf("service factory: %s", catalogErr.Error())
	}

	couponService, couponErr := NewCouponService(unitOfWork)
	if couponErr != nil {
		return nil, fmt.Errorf("service factory: %s", couponErr.Error())
	}

	orderService, orderErr := NewOrderService(unitOfWork, couponService)
	if orderErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderErr.Error())
	}

	userService, userErr := NewUserService(unitOfWork, psswd.Hasher{}, args.JWTSecret, args.AdminCode)
	if userErr != nil {
		return nil, fmt.Errorf("service factory: %s", userErr.Error())
	}

	reviewService, reviewErr := NewReviewService(unitOfWork)
	if reviewErr != nil {
		return nil, fmt.Errorf("service factory: %s", reviewErr.Error())
	}

	return &AppServices{
		CatalogService: catalogService,
		CouponService:  couponService,
		OrderService:   orderService,
		UserService:    userService,
		ReviewService:  reviewService,
	}, nil
}
