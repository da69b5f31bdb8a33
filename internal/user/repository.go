package user

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"kisan-be/internal/logger"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, full_name, mobile, address, pin_code, email, password_hash, created_at`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var pin sql.NullString
	if err := row.Scan(&u.ID, &u.FullName, &u.Mobile, &u.Address, &pin, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if pin.Valid {
		u.PinCode = &pin.String
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u *User) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
	)

	var pin sql.NullString
	if u.PinCode != nil {
		pin = sql.NullString{String: *u.PinCode, Valid: true}
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (full_name, mobile, address, pin_code, email, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		u.FullName, u.Mobile, u.Address, pin, u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		log.Error("db: failed to insert user", zap.String("email", u.Email), zap.Error(err))
	}
	return err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}
