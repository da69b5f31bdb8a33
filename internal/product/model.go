package product

import "time"

type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	VendorID    uint      `json:"vendor_id"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Image struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	URL       string    `json:"img_url"`
	CreatedAt time.Time `json:"created_at"`
}

// CatalogItem is a product as shown in the browse list.
type CatalogItem struct {
	Product
	PriceDisplay string `json:"price_display"`
	ImageURL     string `json:"image_url"`
}

type Catalog struct {
	Categories []string      `json:"categories"`
	Selected   string        `json:"selected"`
	Items      []CatalogItem `json:"items"`
}

// Detail is a single product with its full gallery, oldest image first.
type Detail struct {
	Product
	PriceDisplay string   `json:"price_display"`
	Images       []string `json:"images"`
}

type NewProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Description *string `json:"description,omitempty"`
}

type NewImageInput struct {
	URL string `json:"img_url" validate:"required,url"`
}
