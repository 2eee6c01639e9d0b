package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestValidateCard(t *testing.T) {
	today := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		card    Card
		message string
	}{
		{
			name:    "valid visa",
			card:    Card{CardNumber: "4111111111111111", ExpiryMonth: intPtr(12), ExpiryYear: intPtr(30)},
			message: "",
		},
		{
			name:    "valid with separators",
			card:    Card{CardNumber: "4111 1111-1111 1111", ExpiryMonth: intPtr(12), ExpiryYear: intPtr(2026)},
			message: "",
		},
		{
			// expiry is anchored to the first of the month, so a card
			// expiring the current month is already past
			name:    "expires this month",
			card:    Card{CardNumber: "4111111111111111", ExpiryMonth: intPtr(6), ExpiryYear: intPtr(26)},
			message: "La tarjeta está vencida",
		},
		{
			name:    "too short",
			card:    Card{CardNumber: "411111111111", ExpiryMonth: intPtr(12), ExpiryYear: intPtr(30)},
			message: "El número de tarjeta debe tener entre 13 y 19 dígitos",
		},
		{
			name:    "too long",
			card:    Card{CardNumber: "41111111111111111111", ExpiryMonth: intPtr(12), ExpiryYear: intPtr(30)},
			message: "El número de tarjeta debe tener entre 13 y 19 dígitos",
		},
		{
			name:    "missing expiry",
			card:    Card{CardNumber: "4111111111111111"},
			message: "La fecha de vencimiento (mes y año) es obligatoria",
		},
		{
			name:    "month out of range",
			card:    Card{CardNumber: "4111111111111111", ExpiryMonth: intPtr(13), ExpiryYear: intPtr(30)},
			message: "El mes de vencimiento debe ser entre 01 y 12",
		},
		{
			name:    "expired",
			card:    Card{CardNumber: "4111111111111111", ExpiryMonth: intPtr(5), ExpiryYear: intPtr(26)},
			message: "La tarjeta está vencida",
		},
		{
			name:    "expired four digit year",
			card:    Card{CardNumber: "4111111111111111", ExpiryMonth: intPtr(1), ExpiryYear: intPtr(2020)},
			message: "La tarjeta está vencida",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.message, Validate(tc.card, today))
		})
	}
}
