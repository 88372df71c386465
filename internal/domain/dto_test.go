package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	statuses := []OrderStatusType{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}

	allowed := map[OrderStatusType][]OrderStatusType{
		OrderStatusPending:    {OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusCompleted, OrderStatusCancelled},
		OrderStatusCompleted:  {},
		OrderStatusCancelled:  {},
	}

	// проверяем полную матрицу: все что не перечислено в allowed - запрещено,
	// включая переход в собственный статус.
	for _, from := range statuses {
		for _, to := range statuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equalf(t, want, CanTransition(from, to), "transition %s -> %s", from, to)
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusProcessing.Terminal())
	assert.True(t, OrderStatusCompleted.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
}

func TestParseOrderStatus(t *testing.T) {
	type tcase struct {
		raw    string
		want   OrderStatusType
		wantOK bool
	}

	cases := []tcase{
		{raw: "pending", want: OrderStatusPending, wantOK: true},
		{raw: "processing", want: OrderStatusProcessing, wantOK: true},
		{raw: "completed", want: OrderStatusCompleted, wantOK: true},
		{raw: "cancelled", want: OrderStatusCancelled, wantOK: true},
		{raw: "PENDING", wantOK: false},
		{raw: "done", wantOK: false},
		{raw: "", wantOK: false},
	}

	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			got, ok := ParseOrderStatus(c.raw)
			assert.Equal(t, c.wantOK, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestGamePurchasable(t *testing.T) {
	type tcase struct {
		name       string
		inStock    bool
		stockCount int32
		want       bool
	}

	cases := []tcase{
		{name: "in stock with count", inStock: true, stockCount: 3, want: true},
		{name: "withdrawn with count", inStock: false, stockCount: 5, want: false},
		{name: "in stock zero count", inStock: true, stockCount: 0, want: false},
		{name: "withdrawn zero count", inStock: false, stockCount: 0, want: false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := Game{InStock: c.inStock, StockCount: c.stockCount}
			assert.Equal(t, c.want, g.Purchasable())
		})
	}
}
