package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"kisan-be/internal/utils"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	ListByPurchaser(ctx context.Context, email string) ([]*Order, error)
	ListByVendor(ctx context.Context, vendorID uint) ([]*Order, error)
	List(ctx context.Context, opts ListOptions) ([]*Order, error)
	// UpdateStatus moves the order from -> to only if it still belongs to
	// vendorID and is still in from. ErrStatusConflict means no row matched.
	UpdateStatus(ctx context.Context, orderID, vendorID uint, from, to Status) (time.Time, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectOrders = `
	SELECT
		o.id, o.user_email, o.product_id, o.vendor_id, o.quantity, o.total,
		o.full_name, o.address, o.pin_code, o.mobile,
		o.payment_method, COALESCE(o.status, 'processing'),
		o.created_at, o.updated_at,
		COALESCE(p.name, ''), COALESCE(img.img_url, '')
	FROM orders o
	LEFT JOIN products p ON p.id = o.product_id
	LEFT JOIN LATERAL (
		SELECT img_url FROM product_img
		WHERE product_id = o.product_id
		ORDER BY id
		LIMIT 1
	) img ON TRUE
`

func scanOrder(sc interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := sc.Scan(
		&o.ID, &o.UserEmail, &o.ProductID, &o.VendorID, &o.Quantity, &o.Total,
		&o.Shipping.FullName, &o.Shipping.Address, &o.Shipping.PinCode, &o.Shipping.Mobile,
		&o.PaymentMethod, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
		&o.ProductName, &o.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_email, product_id, vendor_id, quantity, total,
			full_name, address, pin_code, mobile,
			payment_method, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at, updated_at
	`,
		o.UserEmail, o.ProductID, o.VendorID, o.Quantity, o.Total,
		o.Shipping.FullName, o.Shipping.Address, o.Shipping.PinCode, o.Shipping.Mobile,
		o.PaymentMethod, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrders+` WHERE o.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) ListByPurchaser(ctx context.Context, email string) ([]*Order, error) {
	return r.query(ctx, selectOrders+` WHERE o.user_email = $1 ORDER BY o.created_at DESC, o.id DESC`, email)
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uint) ([]*Order, error) {
	return r.query(ctx, selectOrders+` WHERE o.vendor_id = $1 ORDER BY o.created_at DESC, o.id DESC`, vendorID)
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Order, error) {
	limit, offset := pageBounds(opts.Limit, opts.Page)

	var where []string
	args := []any{}
	if opts.Status != nil {
		args = append(args, *opts.Status)
		where = append(where, fmt.Sprintf("COALESCE(o.status, 'processing') = $%d", len(args)))
	}

	query := selectOrders
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY o.created_at DESC, o.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.query(ctx, query, args...)
}

func (r *repository) query(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, orderID, vendorID uint, from, to Status) (time.Time, error) {
	var updatedAt time.Time
	err := r.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND vendor_id = $3 AND COALESCE(status, 'processing') = $4
		RETURNING updated_at
	`, to, orderID, vendorID, from).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrStatusConflict
	}
	return updatedAt, err
}

// pageBounds clamps limit to [1,100] (default 20) and page to >= 1.
func pageBounds(limit, page int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	limit = utils.ClampInt(limit, 1, 100)
	page = utils.ClampInt(page, 1, 0)
	return limit, (page - 1) * limit
}
