package payment

// Method is the payment tag stored on an order. Checkout accepts exactly
// these three.
type Method string

const (
	MethodVisa       Method = "visa"
	MethodMastercard Method = "mastercard"
	MethodCOD        Method = "cod"
)

// RequiresCard reports whether card number, expiry and CVV must be given.
func (m Method) RequiresCard() bool {
	return m == MethodVisa || m == MethodMastercard
}

// CardDetails are checked for presence only. They are never stored.
type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

func (c CardDetails) String() string {
	return "CardDetails{redacted}"
}
