package payment

import "strings"

// MissingCardFields returns the card fields that are blank for a card
// method. COD never needs any.
func MissingCardFields(m Method, card *CardDetails) []string {
	if !m.RequiresCard() {
		return nil
	}
	if card == nil {
		return []string{"number", "expiry", "cvv"}
	}

	var missing []string
	if strings.TrimSpace(card.Number) == "" {
		missing = append(missing, "number")
	}
	if strings.TrimSpace(card.Expiry) == "" {
		missing = append(missing, "expiry")
	}
	if strings.TrimSpace(card.CVV) == "" {
		missing = append(missing, "cvv")
	}
	return missing
}
