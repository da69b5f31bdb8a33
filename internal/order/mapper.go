package order

import (
	"strconv"

	"kisan-be/internal/money"
	"kisan-be/internal/payment"
)

func ToReceipt(o *Order) *Receipt {
	total := money.Format(o.Total)
	return &Receipt{
		OrderID:       o.ID,
		ProductID:     o.ProductID,
		ProductName:   o.ProductName,
		Quantity:      o.Quantity,
		Total:         o.Total,
		TotalDisplay:  total,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		Instructions: payment.InjectVariables(payment.GetInstructions(o.PaymentMethod), payment.InstructionVars{
			"amount":   total,
			"order_id": strconv.FormatUint(uint64(o.ID), 10),
		}),
	}
}

// withPlaceholder fills a missing listing image.
func withPlaceholder(orders []*Order, placeholder string) []*Order {
	for _, o := range orders {
		if o.ImageURL == "" {
			o.ImageURL = placeholder
		}
	}
	return orders
}
