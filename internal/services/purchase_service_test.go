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

type mockPurchaseStore struct {
	createFn              func(ctx context.Context, p *models.Purchase, items []models.PurchaseItem) error
	getFn                 func(ctx context.Context, systemID, id int) (*models.Purchase, error)
	listFn                func(ctx context.Context, systemID int, page pagination.Page) ([]*models.Purchase, int, error)
	listByClientFn        func(ctx context.Context, systemID, clientID int, page pagination.Page) ([]*models.Purchase, int, error)
	listByProductFn       func(ctx context.Context, systemID, productID int, page pagination.Page) ([]*models.Purchase, int, error)
	listOverdueFn         func(ctx context.Context, systemID int) ([]*models.Purchase, error)
	updateFn              func(ctx context.Context, p *models.Purchase) error
	deleteFn              func(ctx context.Context, systemID, id int) error
	updatePaymentStatusFn func(ctx context.Context, systemID, id int, status string) error
	updateShippingFn      func(ctx context.Context, systemID, id int, status string) error
	totalByClientFn       func(ctx context.Context, systemID, clientID int) (float64, error)
}

func (m *mockPurchaseStore) Create(ctx context.Context, p *models.Purchase, items []models.PurchaseItem) error {
	return m.createFn(ctx, p, items)
}
func (m *mockPurchaseStore) Get(ctx context.Context, systemID, id int) (*models.Purchase, error) {
	return m.getFn(ctx, systemID, id)
}
func (m *mockPurchaseStore) List(ctx context.Context, systemID int, page pagination.Page) ([]*models.Purchase, int, error) {
	return m.listFn(ctx, systemID, page)
}
func (m *mockPurchaseStore) ListByClient(ctx context.Context, systemID, clientID int, page pagination.Page) ([]*models.Purchase, int, error) {
	return m.listByClientFn(ctx, systemID, clientID, page)
}
func (m *mockPurchaseStore) ListByProduct(ctx context.Context, systemID, productID int, page pagination.Page) ([]*models.Purchase, int, error) {
	return m.listByProductFn(ctx, systemID, productID, page)
}
func (m *mockPurchaseStore) ListOverdue(ctx context.Context, systemID int) ([]*models.Purchase, error) {
	return m.listOverdueFn(ctx, systemID)
}
func (m *mockPurchaseStore) Update(ctx context.Context, p *models.Purchase) error {
	return m.updateFn(ctx, p)
}
func (m *mockPurchaseStore) Delete(ctx context.Context, systemID, id int) error {
	return m.deleteFn(ctx, systemID, id)
}
func (m *mockPurchaseStore) UpdatePaymentStatus(ctx context.Context, systemID, id int, status string) error {
	return m.updatePaymentStatusFn(ctx, systemID, id, status)
}
func (m *mockPurchaseStore) UpdateShippingStatus(ctx context.Context, systemID, id int, status string) error {
	return m.updateShippingFn(ctx, systemID, id, status)
}
func (m *mockPurchaseStore) TotalAmountByClient(ctx context.Context, systemID, clientID int) (float64, error) {
	return m.totalByClientFn(ctx, systemID, clientID)
}

type mockClientGetter struct {
	getFn func(ctx context.Context, systemID, id int) (*models.Client, error)
}

func (m *mockClientGetter) Get(ctx context.Context, systemID, id int) (*models.Client, error) {
	return m.getFn(ctx, systemID, id)
}

type mockProductGetter struct {
	getFn func(ctx context.Context, id int) (*models.Product, error)
}

func (m *mockProductGetter) Get(ctx context.Context, id int) (*models.Product, error) {
	return m.getFn(ctx, id)
}

type mockPaymentRecorder struct {
	recordFn func(ctx context.Context, systemID int, req *models.CreatePaymentRequest) (*models.CreatePaymentResponse, error)
	sumFn    func(ctx context.Context, systemID, purchaseID int) (float64, error)
}

func (m *mockPaymentRecorder) RecordPayment(ctx context.Context, systemID int, req *models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {
	return m.recordFn(ctx, systemID, req)
}
func (m *mockPaymentRecorder) SumForPurchase(ctx context.Context, systemID, purchaseID int) (float64, error) {
	return m.sumFn(ctx, systemID, purchaseID)
}

func knownClient() *mockClientGetter {
	return &mockClientGetter{getFn: func(ctx context.Context, systemID, id int) (*models.Client, error) {
		return &models.Client{ID: id, SystemID: systemID, FirstName: "Jane", LastName: "Doe"}, nil
	}}
}

func knownProduct() *mockProductGetter {
	return &mockProductGetter{getFn: func(ctx context.Context, id int) (*models.Product, error) {
		return &models.Product{ID: id, Name: "Silk Scarf", Price: 50}, nil
	}}
}

func capturingStore() *mockPurchaseStore {
	return &mockPurchaseStore{
		createFn: func(ctx context.Context, p *models.Purchase, items []models.PurchaseItem) error {
			p.ID = 7
			p.Items = items
			return nil
		},
	}
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.CreateOrderRequest
		wantErr string
	}{
		{
			name:    "missing client",
			req:     &models.CreateOrderRequest{ProductID: 1, Amount: 100},
			wantErr: "client is required",
		},
		{
			name:    "no product and no items",
			req:     &models.CreateOrderRequest{ClientID: 1, Amount: 100},
			wantErr: "product or line items are required",
		},
		{
			name: "negative amount",
			req:  &models.CreateOrderRequest{ClientID: 1, ProductID: 1, Amount: -5},

			wantErr: "amount cannot be negative",
		},
		{
			name: "zero quantity line item",
			req: &models.CreateOrderRequest{ClientID: 1, Items: []models.OrderItemRequest{
				{ProductID: 1, Size: "M", Quantity: 0, PricePerItem: 20},
			}},
			wantErr: "line item quantity must be positive",
		},
		{
			name: "bad purchase date",
			req:  &models.CreateOrderRequest{ClientID: 1, ProductID: 1, Amount: 100, PurchaseDate: "13/01/2025"},

			wantErr: "purchase date must be YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewPurchaseService(capturingStore(), knownClient(), knownProduct(), &mockPaymentRecorder{})
			_, err := svc.CreateOrder(context.Background(), 1, tt.req)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestCreateOrderUnknownClient(t *testing.T) {
	clients := &mockClientGetter{getFn: func(ctx context.Context, systemID, id int) (*models.Client, error) {
		return nil, errors.New("no rows")
	}}
	svc := services.NewPurchaseService(capturingStore(), clients, knownProduct(), &mockPaymentRecorder{})

	_, err := svc.CreateOrder(context.Background(), 1, &models.CreateOrderRequest{ClientID: 42, ProductID: 1, Amount: 100})
	assert.EqualError(t, err, "client not found")
}

func TestCreateOrderSingleItem(t *testing.T) {
	svc := services.NewPurchaseService(capturingStore(), knownClient(), knownProduct(), &mockPaymentRecorder{})

	resp, err := svc.CreateOrder(context.Background(), 1, &models.CreateOrderRequest{
		ClientID:     3,
		ProductID:    5,
		Size:         "M",
		Amount:       100,
		PurchaseDate: "2026-08-01",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Purchase)

	assert.Equal(t, models.PaymentStatusPending, resp.Purchase.PaymentStatus)
	assert.Equal(t, models.ShippingStatusPending, resp.Purchase.ShippingStatus)
	assert.Equal(t, 100.0, resp.Purchase.Amount)
	assert.Empty(t, resp.PaymentError)
}

func TestCreateOrderZeroAmountIsPaid(t *testing.T) {
	svc := services.NewPurchaseService(capturingStore(), knownClient(), knownProduct(), &mockPaymentRecorder{})

	resp, err := svc.CreateOrder(context.Background(), 1, &models.CreateOrderRequest{
		ClientID:  3,
		ProductID: 5,
		Amount:    0,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, resp.Purchase.PaymentStatus)
}

func TestCreateOrderMultiItemComputesAmount(t *testing.T) {
	svc := services.NewPurchaseService(capturingStore(), knownClient(), knownProduct(), &mockPaymentRecorder{})

	resp, err := svc.CreateOrder(context.Background(), 1, &models.CreateOrderRequest{
		ClientID: 3,
		Items: []models.OrderItemRequest{
			{ProductID: 1, Size: "S", Quantity: 2, PricePerItem: 25},
			{ProductID: 2, Size: "L", Quantity: 1, PricePerItem: 40},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 90.0, resp.Purchase.Amount)
	assert.Len(t, resp.Purchase.Items, 2)
	assert.Nil(t, resp.Purchase.ProductID)
}

func TestCreateOrderWithImmediatePayment(t *testing.T) {
	payments := &mockPaymentRecorder{
		recordFn: func(ctx context.Context, systemID int, req *models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {
			assert.Equal(t, 7, req.PurchaseID)
			assert.Equal(t, 3, req.ClientID)
			return &models.CreatePaymentResponse{
				Payment:       &models.Payment{ID: 1, AmountPaid: req.AmountPaid},
				PaymentStatus: models.PaymentStatusPartial,
				Balance:       60,
			}, nil
		},
	}
	svc := services.NewPurchaseService(capturingStore(), knownClient(), knownProduct(), payments)

	resp, err := svc.CreateOrder(context.Background(), 1, &models.CreateOrderRequest{
		ClientID:  3,
		ProductID: 5,
		Amount:    100,
		Payment:   &models.CreatePaymentRequest{AmountPaid: 40, PaymentMethod: "Venmo"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPartial, resp.Purchase.PaymentStatus)
	assert.Empty(t, resp.PaymentError)
}

func TestCreateOrderPaymentFailureKeepsPurchase(t *testing.T) {
	payments := &mockPaymentRecorder{
		recordFn: func(ctx context.Context, systemID int, req *models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {
			return nil, errors.New("amount paid must be positive")
		},
	}
	svc := services.NewPurchaseService(capturingStore(), knownClient(), knownProduct(), payments)

	resp, err := svc.CreateOrder(context.Background(), 1, &models.CreateOrderRequest{
		ClientID:  3,
		ProductID: 5,
		Amount:    100,
		Payment:   &models.CreatePaymentRequest{AmountPaid: -1, PaymentMethod: "Zelle"},
	})
	require.NoError(t, err)

	assert.NotNil(t, resp.Purchase)
	assert.Equal(t, models.PaymentStatusPending, resp.Purchase.PaymentStatus)
	assert.Equal(t, "amount paid must be positive", resp.PaymentError)
}

func TestSetPaymentStatusRejectsUnknown(t *testing.T) {
	svc := services.NewPurchaseService(&mockPurchaseStore{}, knownClient(), knownProduct(), &mockPaymentRecorder{})

	err := svc.SetPaymentStatus(context.Background(), 1, 7, "Settled")
	assert.EqualError(t, err, "invalid payment status")
}

func TestSetShippingStatus(t *testing.T) {
	var gotStatus string
	store := &mockPurchaseStore{
		updateShippingFn: func(ctx context.Context, systemID, id int, status string) error {
			gotStatus = status
			return nil
		},
	}
	svc := services.NewPurchaseService(store, knownClient(), knownProduct(), &mockPaymentRecorder{})

	require.NoError(t, svc.SetShippingStatus(context.Background(), 1, 7, models.ShippingStatusDelivered))
	assert.Equal(t, models.ShippingStatusDelivered, gotStatus)

	assert.EqualError(t, svc.SetShippingStatus(context.Background(), 1, 7, "Teleported"), "invalid shipping status")
}

func TestUpdatePurchaseRederivesStatus(t *testing.T) {
	statusUpdates := map[int]string{}
	store := &mockPurchaseStore{
		getFn: func(ctx context.Context, systemID, id int) (*models.Purchase, error) {
			status := models.PaymentStatusPartial
			if s, ok := statusUpdates[id]; ok {
				status = s
			}
			return &models.Purchase{ID: id, SystemID: systemID, ClientID: 3, Amount: 100, PaymentStatus: status}, nil
		},
		updateFn: func(ctx context.Context, p *models.Purchase) error { return nil },
		updatePaymentStatusFn: func(ctx context.Context, systemID, id int, status string) error {
			statusUpdates[id] = status
			return nil
		},
	}
	payments := &mockPaymentRecorder{
		sumFn: func(ctx context.Context, systemID, purchaseID int) (float64, error) { return 40, nil },
	}
	svc := services.NewPurchaseService(store, knownClient(), knownProduct(), payments)

	// Lowering the amount to what was already paid settles the purchase
	updated, err := svc.UpdatePurchase(context.Background(), 1, 7, &models.UpdatePurchaseRequest{Amount: 40})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
}

func TestUpdatePurchaseKeepsAmountOnPartialEdit(t *testing.T) {
	var written *models.Purchase
	statusUpdates := 0
	store := &mockPurchaseStore{
		getFn: func(ctx context.Context, systemID, id int) (*models.Purchase, error) {
			return &models.Purchase{ID: id, SystemID: systemID, ClientID: 3, Amount: 100,
				PaymentStatus: models.PaymentStatusPartial}, nil
		},
		updateFn: func(ctx context.Context, p *models.Purchase) error {
			written = p
			return nil
		},
		updatePaymentStatusFn: func(ctx context.Context, systemID, id int, status string) error {
			statusUpdates++
			return nil
		},
	}
	payments := &mockPaymentRecorder{
		sumFn: func(ctx context.Context, systemID, purchaseID int) (float64, error) { return 40, nil },
	}
	svc := services.NewPurchaseService(store, knownClient(), knownProduct(), payments)

	// Editing only the size leaves the amount alone, so the status
	// stays Partial instead of collapsing to Paid on a zeroed total
	updated, err := svc.UpdatePurchase(context.Background(), 1, 7, &models.UpdatePurchaseRequest{Size: "L"})
	require.NoError(t, err)

	assert.Equal(t, 100.0, written.Amount)
	assert.Equal(t, models.PaymentStatusPartial, updated.PaymentStatus)
	assert.Zero(t, statusUpdates)
}

func TestListByProductPageDefaults(t *testing.T) {
	var gotProductID int
	var gotPage pagination.Page
	store := &mockPurchaseStore{
		listByProductFn: func(ctx context.Context, systemID, productID int, page pagination.Page) ([]*models.Purchase, int, error) {
			gotProductID = productID
			gotPage = page
			return []*models.Purchase{{ID: 1}}, 9, nil
		},
	}
	svc := services.NewPurchaseService(store, knownClient(), knownProduct(), &mockPaymentRecorder{})

	res, err := svc.ListByProduct(context.Background(), 1, 5, pagination.Page{})
	require.NoError(t, err)

	assert.Equal(t, 5, gotProductID)
	assert.Equal(t, pagination.PurchaseSubListSize, gotPage.Size)
	assert.Equal(t, 9, res.TotalCount)
	assert.True(t, res.HasMore)
}

func TestListPurchasesPageDefaults(t *testing.T) {
	var gotPage pagination.Page
	store := &mockPurchaseStore{
		listFn: func(ctx context.Context, systemID int, page pagination.Page) ([]*models.Purchase, int, error) {
			gotPage = page
			return nil, 0, nil
		},
	}
	svc := services.NewPurchaseService(store, knownClient(), knownProduct(), &mockPaymentRecorder{})

	res, err := svc.ListPurchases(context.Background(), 1, pagination.Page{})
	require.NoError(t, err)

	assert.Equal(t, 1, gotPage.Number)
	assert.Equal(t, pagination.PurchaseSubListSize, gotPage.Size)
	assert.NotNil(t, res.Items)
	assert.False(t, res.HasMore)
}
