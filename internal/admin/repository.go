package admin

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"kisan-be/internal/logger"
)

type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Overview(ctx context.Context) (*Overview, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Overview"),
	)

	var o Overview
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM vendors),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders)
	`).Scan(&o.Users, &o.Vendors, &o.Products, &o.Orders)
	if err != nil {
		log.Error("failed to count rows", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT COALESCE(status, 'processing') AS status, COUNT(*)
		FROM orders
		GROUP BY 1
	`)
	if err != nil {
		log.Error("failed to count orders by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	o.OrdersByStatus = map[string]int64{}
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		o.OrdersByStatus[status] = n
	}
	return &o, rows.Err()
}
