package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique-backend/internal/models"
	"boutique-backend/internal/pagination"
	"boutique-backend/internal/services"
)

type mockPaymentStore struct {
	recordFn         func(ctx context.Context, p *models.Payment) (string, float64, error)
	deleteFn         func(ctx context.Context, systemID, id int) error
	getFn            func(ctx context.Context, systemID, id int) (*models.Payment, error)
	listFn           func(ctx context.Context, systemID int, method string, page pagination.Page) ([]*models.Payment, int, error)
	listByPurchaseFn func(ctx context.Context, systemID, purchaseID int, page pagination.Page) ([]*models.Payment, int, error)
	listByClientFn   func(ctx context.Context, systemID, clientID int, page pagination.Page) ([]*models.Payment, int, error)
	sumFn            func(ctx context.Context, systemID, purchaseID int) (float64, error)
}

func (m *mockPaymentStore) Record(ctx context.Context, p *models.Payment) (string, float64, error) {
	return m.recordFn(ctx, p)
}
func (m *mockPaymentStore) Delete(ctx context.Context, systemID, id int) error {
	return m.deleteFn(ctx, systemID, id)
}
func (m *mockPaymentStore) Get(ctx context.Context, systemID, id int) (*models.Payment, error) {
	return m.getFn(ctx, systemID, id)
}
func (m *mockPaymentStore) List(ctx context.Context, systemID int, method string, page pagination.Page) ([]*models.Payment, int, error) {
	return m.listFn(ctx, systemID, method, page)
}
func (m *mockPaymentStore) ListByPurchase(ctx context.Context, systemID, purchaseID int, page pagination.Page) ([]*models.Payment, int, error) {
	return m.listByPurchaseFn(ctx, systemID, purchaseID, page)
}
func (m *mockPaymentStore) ListByClient(ctx context.Context, systemID, clientID int, page pagination.Page) ([]*models.Payment, int, error) {
	return m.listByClientFn(ctx, systemID, clientID, page)
}
func (m *mockPaymentStore) SumForPurchase(ctx context.Context, systemID, purchaseID int) (float64, error) {
	return m.sumFn(ctx, systemID, purchaseID)
}

type mockPurchaseGetter struct {
	getFn func(ctx context.Context, systemID, id int) (*models.Purchase, error)
}

func (m *mockPurchaseGetter) Get(ctx context.Context, systemID, id int) (*models.Purchase, error) {
	return m.getFn(ctx, systemID, id)
}

func purchaseWithClient(clientID int) *mockPurchaseGetter {
	return &mockPurchaseGetter{getFn: func(ctx context.Context, systemID, id int) (*models.Purchase, error) {
		return &models.Purchase{ID: id, SystemID: systemID, ClientID: clientID, Amount: 100,
			PaymentStatus: models.PaymentStatusPending}, nil
	}}
}

func TestRecordPaymentValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.CreatePaymentRequest
		wantErr string
	}{
		{
			name:    "zero amount",
			req:     &models.CreatePaymentRequest{PurchaseID: 1, AmountPaid: 0, PaymentMethod: "Zelle"},
			wantErr: "amount paid must be positive",
		},
		{
			name:    "negative amount",
			req:     &models.CreatePaymentRequest{PurchaseID: 1, AmountPaid: -10, PaymentMethod: "Zelle"},
			wantErr: "amount paid must be positive",
		},
		{
			name:    "missing method",
			req:     &models.CreatePaymentRequest{PurchaseID: 1, AmountPaid: 40},
			wantErr: "payment method is required",
		},
		{
			name:    "client mismatch",
			req:     &models.CreatePaymentRequest{PurchaseID: 1, ClientID: 99, AmountPaid: 40, PaymentMethod: "Zelle"},
			wantErr: "payment client does not match the purchase",
		},
		{
			name:    "bad date",
			req:     &models.CreatePaymentRequest{PurchaseID: 1, AmountPaid: 40, PaymentMethod: "Zelle", PaymentDate: "01-02-2026"},
			wantErr: "payment date must be YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewPaymentService(&mockPaymentStore{}, purchaseWithClient(3))
			_, err := svc.RecordPayment(context.Background(), 1, tt.req)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestRecordPaymentUnknownPurchase(t *testing.T) {
	purchases := &mockPurchaseGetter{getFn: func(ctx context.Context, systemID, id int) (*models.Purchase, error) {
		return nil, errors.New("no rows")
	}}
	svc := services.NewPaymentService(&mockPaymentStore{}, purchases)

	_, err := svc.RecordPayment(context.Background(), 1, &models.CreatePaymentRequest{
		PurchaseID: 404, AmountPaid: 40, PaymentMethod: "Zelle",
	})
	assert.EqualError(t, err, "purchase not found")
}

func TestRecordPaymentReturnsUpdatedStatus(t *testing.T) {
	store := &mockPaymentStore{
		recordFn: func(ctx context.Context, p *models.Payment) (string, float64, error) {
			p.ID = 11
			return models.PaymentStatusPartial, 60, nil
		},
	}
	svc := services.NewPaymentService(store, purchaseWithClient(3))

	resp, err := svc.RecordPayment(context.Background(), 1, &models.CreatePaymentRequest{
		PurchaseID:    7,
		AmountPaid:    40,
		PaymentMethod: "Venmo",
		PaymentDate:   "2026-08-15",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPartial, resp.PaymentStatus)
	assert.Equal(t, 60.0, resp.Balance)
	assert.Equal(t, 11, resp.Payment.ID)
	// Client is taken from the purchase, not trusted from the request
	assert.Equal(t, 3, resp.Payment.ClientID)
}

func TestRecordPaymentNormalizesMethod(t *testing.T) {
	var recorded *models.Payment
	store := &mockPaymentStore{
		recordFn: func(ctx context.Context, p *models.Payment) (string, float64, error) {
			recorded = p
			return models.PaymentStatusPartial, 60, nil
		},
	}
	svc := services.NewPaymentService(store, purchaseWithClient(3))

	_, err := svc.RecordPayment(context.Background(), 1, &models.CreatePaymentRequest{
		PurchaseID: 7, AmountPaid: 40, PaymentMethod: "venmo",
	})
	require.NoError(t, err)
	assert.Equal(t, "Venmo", recorded.PaymentMethod)

	// Free text that matches no named method passes through as entered
	_, err = svc.RecordPayment(context.Background(), 1, &models.CreatePaymentRequest{
		PurchaseID: 7, AmountPaid: 40, PaymentMethod: "Store credit",
	})
	require.NoError(t, err)
	assert.Equal(t, "Store credit", recorded.PaymentMethod)
}

func TestDeletePaymentIdempotent(t *testing.T) {
	calls := 0
	store := &mockPaymentStore{
		deleteFn: func(ctx context.Context, systemID, id int) error {
			calls++
			// Repository treats a missing payment as already deleted
			return nil
		},
	}
	svc := services.NewPaymentService(store, purchaseWithClient(3))

	require.NoError(t, svc.DeletePayment(context.Background(), 1, 11))
	require.NoError(t, svc.DeletePayment(context.Background(), 1, 11))
	assert.Equal(t, 2, calls)
}

func TestListPaymentsPageDefaults(t *testing.T) {
	var gotPage pagination.Page
	var gotMethod string
	store := &mockPaymentStore{
		listFn: func(ctx context.Context, systemID int, method string, page pagination.Page) ([]*models.Payment, int, error) {
			gotPage = page
			gotMethod = method
			return []*models.Payment{{ID: 1}}, 25, nil
		},
	}
	svc := services.NewPaymentService(store, purchaseWithClient(3))

	res, err := svc.ListPayments(context.Background(), 1, "Zelle", pagination.Page{})
	require.NoError(t, err)

	assert.Equal(t, pagination.PaymentsPerPage, gotPage.Size)
	assert.Equal(t, "Zelle", gotMethod)
	assert.Equal(t, 25, res.TotalCount)
	assert.True(t, res.HasMore)
}
