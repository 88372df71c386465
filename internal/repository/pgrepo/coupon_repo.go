package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/rshanto/gameghor/internal/domain"
	"github.com/rshanto/gameghor/internal/repository/repoargs"
	"github.com/rshanto/gameghor/pkg/uow"
)

type CouponRepository struct {
	db uow.DBTX
}

func NewCouponRepository(db uow.DBTX) *CouponRepository {
	return &CouponRepository{db: db}
}

const couponColumns = `id, created_at, updated_at, code, discount_percent, active, expires_at, game_id`

func (r *CouponRepository) Create(ctx context.Context, args repoargs.CreateCoupon) (*domain.Coupon, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO coupons (code, discount_percent, active, expires_at, game_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+couponColumns,
		args.Code, args.DiscountPercent, args.Active, args.ExpiresAt, args.GameID,
	)
	coupon, err := scanCoupon(row)
	if err != nil {
		return nil, convertErr(err, "creating coupon `%s`", args.Code)
	}
	return coupon, nil
}

// FindByCode ищет купон по нормализованному (uppercase) коду.
func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	row := r.db.QueryRow(ctx, `SELECT `+couponColumns+` FROM coupons WHERE code = $1`, code)
	coupon, err := scanCoupon(row)
	if err != nil {
		return nil, convertErr(err, "finding coupon by code `%s`", code)
	}
	return coupon, nil
}

func (r *CouponRepository) List(ctx context.Context) ([]domain.Coupon, error) {
	rows, err := r.db.Query(ctx, `SELECT `+couponColumns+` FROM coupons ORDER BY created_at DESC`)
	if err != nil {
		return nil, convertErr(err, "listing coupons")
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		coupon, scanErr := scanCoupon(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "listing coupons")
		}
		coupons = append(coupons, *coupon)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing coupons")
	}
	return coupons, nil
}

func (r *CouponRepository) Update(ctx context.Context, id int64, args repoargs.UpdateCoupon) (*domain.Coupon, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE coupons SET
			discount_percent = COALESCE($2, discount_percent),
			active = COALESCE($3, active),
			expires_at = CASE WHEN $5 THEN NULL ELSE COALESCE($4, expires_at) END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+couponColumns,
		id, args.DiscountPercent, args.Active, args.ExpiresAt, args.ClearExpiresAt,
	)
	coupon, err := scanCoupon(row)
	if err != nil {
		return nil, convertErr(err, "updating coupon with id `%d`", id)
	}
	return coupon, nil
}

func (r *CouponRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting coupon with id `%d`", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting coupon with id `%d`", id)
	}
	return nil
}

func scanCoupon(row rowScanner) (*domain.Coupon, error) {
	var c domain.Coupon
	err := row.Scan(
		&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Code, &c.DiscountPercent,
		&c.Active, &c.ExpiresAt, &c.GameID,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &c, nil
}
