// Package payments validates the optional card payload sent with checkout.
// No charge is made; the card is checked and discarded.
package payments

import (
	"regexp"
	"strings"
	"time"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// Card is the optional payment payload attached to an order.
type Card struct {
	CardNumber  string
	ExpiryMonth *int
	ExpiryYear  *int
}

// Validate returns a Spanish rejection message, or "" when the card is
// acceptable: 13 to 19 digits after stripping separators and an expiry
// month not in the past. Two-digit years are anchored to 2000.
func Validate(card Card, today time.Time) string {
	digits := nonDigitRe.ReplaceAllString(strings.TrimSpace(card.CardNumber), "")
	if len(digits) < 13 || len(digits) > 19 {
		return "El número de tarjeta debe tener entre 13 y 19 dígitos"
	}
	if card.ExpiryMonth == nil || card.ExpiryYear == nil {
		return "La fecha de vencimiento (mes y año) es obligatoria"
	}

	month := *card.ExpiryMonth
	year := *card.ExpiryYear
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 {
		return "El mes de vencimiento debe ser entre 01 y 12"
	}

	expiry := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if expiry.Before(day) {
		return "La tarjeta está vencida"
	}
	return ""
}
