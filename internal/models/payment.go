package models

import (
	"strings"
	"time"
)

// Named payment methods; anything else is accepted as free-text "Other".
var KnownPaymentMethods = []string{"Credit Card", "Bank Transfer", "PayPal", "Venmo", "Zelle"}

// NormalizePaymentMethod maps a method onto its canonical named form
// when it matches one, so "venmo" and "Venmo" land in the same bucket
// for the method filter. Anything unrecognized passes through as
// entered.
func NormalizePaymentMethod(method string) string {
	method = strings.TrimSpace(method)
	for _, known := range KnownPaymentMethods {
		if strings.EqualFold(method, known) {
			return known
		}
	}
	return method
}

type Payment struct {
	ID            int       `json:"id"`
	SystemID      int       `json:"system_id"`
	ClientID      int       `json:"client_id"`
	PurchaseID    int       `json:"purchase_id"`
	AmountPaid    float64   `json:"amount_paid"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreatePaymentRequest struct {
	ClientID      int     `json:"client_id"`
	PurchaseID    int     `json:"purchase_id"`
	AmountPaid    float64 `json:"amount_paid"`
	PaymentDate   string  `json:"payment_date"`
	PaymentMethod string  `json:"payment_method"`
}

// CreatePaymentResponse returns the new payment together with the
// purchase's recomputed payment status, so callers never need a second
// round trip to learn the effect of the payment.
type CreatePaymentResponse struct {
	Payment       *Payment `json:"payment"`
	PaymentStatus string   `json:"payment_status"`
	Balance       float64  `json:"balance"`
}
