package order

import (
	validatorv10 "github.com/go-playground/validator/v10"

	"kisan-be/internal/payment"
	"kisan-be/internal/validation"
)

// ClampQuantity enforces the minimum order quantity of one.
func ClampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

func newValidator() *validatorv10.Validate {
	v := validation.New()
	v.RegisterStructValidation(checkoutStructValidation, CheckoutInput{})
	return v
}

// checkoutStructValidation requires card number, expiry and CVV for card
// payments. Formats are not checked.
func checkoutStructValidation(sl validatorv10.StructLevel) {
	in := sl.Current().Interface().(CheckoutInput)
	for _, f := range payment.MissingCardFields(in.PaymentMethod, in.Card) {
		sl.ReportError("", "card."+f, "Card", "required", "")
	}
}
