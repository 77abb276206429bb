// Package billing holds the payment reconciliation rule shared by the
// payment and purchase services.
package billing

import (
	"math"

	"boutique-backend/internal/models"
)

// DeriveStatus computes a purchase's payment status from its total and
// the amounts paid against it so far. A zero-total purchase has nothing
// owed and is Paid immediately. Overpayment still yields Paid; no
// credit is tracked.
func DeriveStatus(total float64, amountsPaid []float64) string {
	if total <= 0 {
		return models.PaymentStatusPaid
	}
	var paid float64
	for _, a := range amountsPaid {
		paid += a
	}
	switch {
	case paid >= total:
		return models.PaymentStatusPaid
	case paid > 0:
		return models.PaymentStatusPartial
	default:
		return models.PaymentStatusPending
	}
}

// Balance is the amount still owed on a purchase, floored at zero.
func Balance(total float64, amountsPaid []float64) float64 {
	var paid float64
	for _, a := range amountsPaid {
		paid += a
	}
	if paid >= total {
		return 0
	}
	return total - paid
}

// Cents converts a dollar amount to whole cents. Rounding, not
// truncation: 19.99 stored as a float multiplies to 1998.999…, and the
// processor must be asked for 1999.
func Cents(amount float64) int {
	return int(math.Round(amount * 100))
}

// Recomputable reports whether a purchase's status may be replaced by a
// derived one. Overdue is assigned by the overdue checker and is only
// cleared through an explicit status update, never by reconciliation.
func Recomputable(current string) bool {
	return current != models.PaymentStatusOverdue
}
