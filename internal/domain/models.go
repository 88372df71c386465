package domain

import (
	"github.com/shopspring/decimal"

	"time"
)

type User struct {
	ID           int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Email        string
	Name         string
	PasswordHash string
	Role         RoleType
}

type Game struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string
	Description string
	Price       decimal.Decimal
	Platform    PlatformType
	Category    string
	Images      []string
	InStock     bool
	StockCount  int32
	Featured    bool
}

// Purchasable проверяет доступность игры к покупке. Оба условия независимы:
// игра может быть временно снята с продажи (InStock=false) при ненулевом остатке.
func (g *Game) Purchasable() bool {
	return g.InStock && g.StockCount > 0
}

type Coupon struct {
	ID              int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Code            string
	DiscountPercent int32
	Active          bool
	ExpiresAt       *time.Time
	// GameID ограничивает купон одной игрой. Ноль означает отсутствие ограничения.
	GameID int64
}

type Order struct {
	ID            int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	GameID        int64
	BuyerEmail    string
	PaymentNumber string
	TransactionID string
	CouponCode    string
	// UnitPrice и TotalPrice - снапшот цены на момент создания заказа.
	// Последующие изменения каталога и купонов их не затрагивают.
	UnitPrice       decimal.Decimal
	DiscountPercent int32
	TotalPrice      decimal.Decimal
	Note            string
	Status          OrderStatusType
}

type Review struct {
	ID        int64
	CreatedAt time.Time
	GameID    int64
	// UserID - автор отзыва из JWT. Author остается свободным отображаемым именем.
	UserID  int64
	Rating  int32
	Comment string
	Author  string
}
