package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/pkg/uow"
)

const maxDiscountPercent = 100

type CouponService struct {
	uow        uow.UOW
	couponRepo CouponRepository
	// now подменяется в тестах для проверки граничных моментов истечения срока.
	now func() time.Time
}

func NewCouponService(u uow.UOW) (*CouponService, error) {
	couponRepo, err := uow.GetRepositoryAs[CouponRepository](u, uow.RepositoryName(repoargs.CouponRepoName))
	if err != nil {
		return nil, err
	}
	return &CouponService{
		uow:        u,
		couponRepo: couponRepo,
		now:        time.Now,
	}, nil
}

// NormalizeCouponCode приводит код к каноническому виду: обрезанный uppercase.
// В таком виде коды хранятся и сравниваются.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate проверяет купон для игры gameID. Чтение без побочных эффектов:
// купон никогда не помечается использованным. Неизвестный код - это не ошибка,
// а невалидный результат с причиной (fail closed).
//
// Ненулевая ошибка возвращается только при сбое хранилища.
func (s *CouponService) Validate(ctx context.Context, code string, gameID int64) (*domain.CouponResult, error) {
	coupon, findErr := s.couponRepo.FindByCode(ctx, NormalizeCouponCode(code))
	if findErr != nil {
		if errors.Is(findErr, domain.ErrRecordNotFound) {
			return &domain.CouponResult{Reason: domain.CouponReasonNotFound}, nil
		}
		return nil, fmt.Errorf("validating coupon: %w", findErr)
	}

	result := coupon.CheckAt(gameID, s.now())
	return &result, nil
}

type CreateCouponArgs struct {
	Code            string
	DiscountPercent int32
	Active          bool
	ExpiresAt       *time.Time
	GameID          int64
}

// Create заводит новый купон. Дубликат кода возвращается как domain.ErrDuplicateKey.
func (s *CouponService) Create(ctx context.Context, args CreateCouponArgs) (*domain.Coupon, error) {
	code := NormalizeCouponCode(args.Code)
	if code == "" {
		return nil, domain.NewInvalidInputError("code")
	}
	if args.DiscountPercent < 0 || args.DiscountPercent > maxDiscountPercent {
		return nil, domain.NewInvalidInputError("discount_percent")
	}

	coupon, createErr := s.couponRepo.Create(ctx, repoargs.CreateCoupon{
		Code:            code,
		DiscountPercent: args.DiscountPercent,
		Active:          args.Active,
		ExpiresAt:       args.ExpiresAt,
		GameID:          args.GameID,
	})
	if createErr != nil {
		return nil, fmt.Errorf("creating coupon: %w", createErr)
	}
	return coupon, nil
}

// Update частично обновляет купон. Уже созданные заказы обновление не
// затрагивает: скидка заморожена в заказе.
func (s *CouponService) Update(ctx context.Context, id int64, args repoargs.UpdateCoupon) (*domain.Coupon, error) {
	if args.DiscountPercent != nil &&
		(*args.DiscountPercent < 0 || *args.DiscountPercent > maxDiscountPercent) {
		return nil, domain.NewInvalidInputError("discount_percent")
	}
	coupon, err := s.couponRepo.Update(ctx, id, args)
	if err != nil {
		return nil, fmt.Errorf("updating coupon: %w", err)
	}
	return coupon, nil
}

func (s *CouponService) Delete(ctx context.Context, id int64) error {
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting coupon: %w", err)
	}
	return nil
}

func (s *CouponService) List(ctx context.Context) ([]domain.Coupon, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return coupons, nil
}
