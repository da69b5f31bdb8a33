package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	ListByVendor(ctx context.Context, vendorID uint) ([]Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, vendorID uint, input NewProductInput) (*Product, error)

	FirstImages(ctx context.Context, productIDs []uint) (map[uint]string, error)
	ListImages(ctx context.Context, productID uint) ([]Image, error)
	AddImage(ctx context.Context, productID uint, url string) (*Image, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, category, price, quantity, vendor_id, description, created_at`

func scanProduct(sc interface{ Scan(...any) error }) (Product, error) {
	var p Product
	var desc sql.NullString
	err := sc.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Quantity, &p.VendorID, &desc, &p.CreatedAt)
	if desc.Valid {
		p.Description = &desc.String
	}
	return p, err
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uint) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE vendor_id = $1 ORDER BY id`, vendorID)
}

func (r *repository) query(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, vendorID uint, input NewProductInput) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, category, price, quantity, vendor_id, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns,
		input.Name, input.Category, input.Price, input.Quantity, vendorID, input.Description,
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FirstImages returns the oldest image per product in one round trip.
// Products without images are absent from the map.
func (r *repository) FirstImages(ctx context.Context, productIDs []uint) (map[uint]string, error) {
	out := make(map[uint]string, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	ids := make([]int64, len(productIDs))
	for i, id := range productIDs {
		ids[i] = int64(id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT ON (product_id) product_id, img_url
		FROM product_img
		WHERE product_id = ANY($1)
		ORDER BY product_id, id
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uint
		var url string
		if err := rows.Scan(&id, &url); err != nil {
			return nil, err
		}
		out[id] = url
	}

	return out, rows.Err()
}

func (r *repository) ListImages(ctx context.Context, productID uint) ([]Image, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, img_url, created_at
		FROM product_img
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, rows.Err()
}

// AddImage appends an image record. Images are never updated or removed.
func (r *repository) AddImage(ctx context.Context, productID uint, url string) (*Image, error) {
	img := Image{ProductID: productID, URL: url}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO product_img (product_id, img_url)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, productID, url).Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &img, nil
}
