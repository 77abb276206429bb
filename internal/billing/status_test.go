package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boutique-backend/internal/billing"
	"boutique-backend/internal/models"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		total    float64
		payments []float64
		want     string
	}{
		{"no payments", 100, nil, models.PaymentStatusPending},
		{"partial payment", 100, []float64{40}, models.PaymentStatusPartial},
		{"exact payments", 100, []float64{40, 60}, models.PaymentStatusPaid},
		{"overpayment", 100, []float64{150}, models.PaymentStatusPaid},
		{"zero total", 0, nil, models.PaymentStatusPaid},
		{"zero total with payment", 0, []float64{10}, models.PaymentStatusPaid},
		{"one cent short", 100, []float64{99.99}, models.PaymentStatusPartial},
		{"many small payments", 100, []float64{25, 25, 25, 25}, models.PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billing.DeriveStatus(tt.total, tt.payments))
		})
	}
}

func TestBalance(t *testing.T) {
	assert.Equal(t, 100.0, billing.Balance(100, nil))
	assert.Equal(t, 60.0, billing.Balance(100, []float64{40}))
	assert.Equal(t, 0.0, billing.Balance(100, []float64{40, 60}))
	assert.Equal(t, 0.0, billing.Balance(100, []float64{150}))
}

func TestCents(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int
	}{
		{"whole dollars", 100, 10000},
		{"cents that truncate low", 19.99, 1999},
		{"cents that truncate high", 0.29, 29},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, billing.Cents(tt.amount))
		})
	}
}

func TestRecomputable(t *testing.T) {
	assert.True(t, billing.Recomputable(models.PaymentStatusPending))
	assert.True(t, billing.Recomputable(models.PaymentStatusPartial))
	assert.True(t, billing.Recomputable(models.PaymentStatusPaid))
	assert.False(t, billing.Recomputable(models.PaymentStatusOverdue))
}
