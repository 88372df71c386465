package repoargs

import (
	"github.com/shopspring/decimal"

	"github.com/rshanto/gameghor/internal/domain"
)

type CreateGame struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Platform    domain.PlatformType
	Category    string
	Images      []string
	InStock     bool
	StockCount  int32
	Featured    bool
}

// ListGames - фильтры публичного каталога. Пустые значения означают
// отсутствие фильтра.
type ListGames struct {
	Query    string
	Platform domain.PlatformType
	Featured *bool
}
