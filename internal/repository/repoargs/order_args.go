package repoargs

import (
	"github.com/shopspring/decimal"
)

type CreateOrder struct {
	GameID          int64
	BuyerEmail      string
	PaymentNumber   string
	TransactionID   string
	CouponCode      string
	UnitPrice       decimal.Decimal
	DiscountPercent int32
	TotalPrice      decimal.Decimal
	Note            string
}
