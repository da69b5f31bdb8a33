package order

import (
	"time"

	"kisan-be/internal/payment"
)

// ShippingInfo is copied onto the order at placement and never follows
// later profile edits.
type ShippingInfo struct {
	FullName string `json:"full_name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	PinCode  string `json:"pin_code" validate:"required"`
	Mobile   string `json:"mobile" validate:"required"`
}

type Order struct {
	ID            uint           `json:"id"`
	UserEmail     string         `json:"user_email"`
	ProductID     uint           `json:"product_id"`
	VendorID      uint           `json:"vendor_id"`
	Quantity      int            `json:"quantity"`
	Total         float64        `json:"total"`
	Shipping      ShippingInfo   `json:"shipping"`
	PaymentMethod payment.Method `json:"payment_method"`
	Status        Status         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	// filled by listing queries
	ProductName string `json:"product_name,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type CheckoutInput struct {
	ProductID     uint                 `json:"product_id" validate:"required"`
	Quantity      int                  `json:"quantity"`
	Shipping      ShippingInfo         `json:"shipping"`
	PaymentMethod payment.Method       `json:"payment_method" validate:"required,oneof=visa mastercard cod"`
	Card          *payment.CardDetails `json:"card,omitempty"`
}

type Receipt struct {
	OrderID       uint           `json:"order_id"`
	ProductID     uint           `json:"product_id"`
	ProductName   string         `json:"product_name"`
	Quantity      int            `json:"quantity"`
	Total         float64        `json:"total"`
	TotalDisplay  string         `json:"total_display"`
	PaymentMethod payment.Method `json:"payment_method"`
	Status        Status         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	Instructions  []string       `json:"instructions"`
}

type ListOptions struct {
	Status *Status
	Limit  int
	Page   int
}
