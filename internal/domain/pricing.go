package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountedTotal считает итоговую цену заказа: unit * (1 - percent/100),
// округленную до 2 знаков (round-half-up). Вычисляется единожды при создании
// заказа и далее не пересчитывается.
func DiscountedTotal(unit decimal.Decimal, percent int32) decimal.Decimal {
	factor := hundred.Sub(decimal.NewFromInt32(percent))
	return unit.Mul(factor).Div(hundred).Round(2)
}

// CheckAt проверяет купон на момент времени now без обращения к хранилищу.
// Истечение срока сравнивается включительно: купон с ExpiresAt равным now
// уже считается просроченным.
func (c *Coupon) CheckAt(gameID int64, now time.Time) CouponResult {
	if !c.Active {
		return CouponResult{Reason: CouponReasonInactive}
	}
	if c.ExpiresAt != nil && !c.ExpiresAt.After(now) {
		return CouponResult{Reason: CouponReasonExpired}
	}
	if c.GameID != 0 && c.GameID != gameID {
		return CouponResult{Reason: CouponReasonNotApplicable}
	}
	return CouponResult{Valid: true, DiscountPercent: c.DiscountPercent}
}
