package pgrepo

import (
	"context"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/pkg/uow"
)

type OrderRepository struct {
	db uow.DBTX
}

func NewOrderRepository(db uow.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, created_at, updated_at, game_id, buyer_email, payment_number,
	transaction_id, coupon_code, unit_price, discount_percent, total_price, note, status`

// Create вставляет заказ в статусе pending. Ценовые поля записываются один раз
// и больше никогда не обновляются.
func (r *OrderRepository) Create(ctx context.Context, args repoargs.CreateOrder) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (game_id, buyer_email, payment_number, transaction_id,
			coupon_code, unit_price, discount_percent, total_price, note, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+orderColumns,
		args.GameID, args.BuyerEmail, args.PaymentNumber, args.TransactionID,
		args.CouponCode, args.UnitPrice, args.DiscountPercent, args.TotalPrice,
		args.Note, string(domain.OrderStatusPending),
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "creating order for game `%d`", args.GameID)
	}
	return order, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "finding order by id `%d`", id)
	}
	return order, nil
}

// List возвращает заказы, отсортированные по дате создания по убыванию.
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, convertErr(err, "listing orders")
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "listing orders")
		}
		orders = append(orders, *order)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing orders")
	}
	return orders, nil
}

// UpdateStatus меняет статус заказа и updated_at, не касаясь остальных полей.
// Допустимость перехода проверяет сервисный слой.
func (r *OrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.OrderStatusType,
) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE orders SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+orderColumns,
		id, string(status),
	)
	order, err := scanOrder(row)
	if err != nil {
		return nil, convertErr(err, "updating status for order with id `%d`", id)
	}
	return order, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var status string
	err := row.Scan(
		&o.ID, &o.CreatedAt, &o.UpdatedAt, &o.GameID, &o.BuyerEmail, &o.PaymentNumber,
		&o.TransactionID, &o.CouponCode, &o.UnitPrice, &o.DiscountPercent,
		&o.TotalPrice, &o.Note, &status,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	o.Status = domain.OrderStatusType(status)
	return &o, nil
}
