package services

import (
	"context"
	"errors"

	"boutique-backend/internal/cache"
	"boutique-backend/internal/metrics"
	"boutique-backend/internal/models"
	"boutique-backend/internal/pagination"
	"boutique-backend/internal/timeutil"
)

// PaymentStore is the subset of the payment repository the service
// needs. Record and Delete run the reconciliation rule transactionally.
type PaymentStore interface {
	Record(ctx context.Context, p *models.Payment) (string, float64, error)
	Delete(ctx context.Context, systemID, id int) error
	Get(ctx context.Context, systemID, id int) (*models.Payment, error)
	List(ctx context.Context, systemID int, method string, page pagination.Page) ([]*models.Payment, int, error)
	ListByPurchase(ctx context.Context, systemID, purchaseID int, page pagination.Page) ([]*models.Payment, int, error)
	ListByClient(ctx context.Context, systemID, clientID int, page pagination.Page) ([]*models.Payment, int, error)
	SumForPurchase(ctx context.Context, systemID, purchaseID int) (float64, error)
}

// PurchaseGetter looks up a purchase for validation.
type PurchaseGetter interface {
	Get(ctx context.Context, systemID, id int) (*models.Purchase, error)
}

type PaymentService struct {
	Repo      PaymentStore
	Purchases PurchaseGetter
}

func NewPaymentService(repo PaymentStore, purchases PurchaseGetter) *PaymentService {
	return &PaymentService{Repo: repo, Purchases: purchases}
}

// RecordPayment validates and records a payment. The purchase's payment
// status is recomputed in the same transaction as the insert, and the
// response carries the resulting status and balance.
func (s *PaymentService) RecordPayment(ctx context.Context, systemID int, req *models.CreatePaymentRequest) (*models.CreatePaymentResponse, error) {
	if req.AmountPaid <= 0 {
		return nil, errors.New("amount paid must be positive")
	}
	method := models.NormalizePaymentMethod(req.PaymentMethod)
	if method == "" {
		return nil, errors.New("payment method is required")
	}

	purchase, err := s.Purchases.Get(ctx, systemID, req.PurchaseID)
	if err != nil {
		return nil, errors.New("purchase not found")
	}
	if req.ClientID != 0 && req.ClientID != purchase.ClientID {
		return nil, errors.New("payment client does not match the purchase")
	}

	paymentDate := timeutil.Now()
	if req.PaymentDate != "" {
		paymentDate, err = timeutil.ParseLocal(timeutil.DateLayout, req.PaymentDate)
		if err != nil {
			return nil, errors.New("payment date must be YYYY-MM-DD")
		}
	}

	payment := &models.Payment{
		SystemID:      systemID,
		ClientID:      purchase.ClientID,
		PurchaseID:    req.PurchaseID,
		AmountPaid:    req.AmountPaid,
		PaymentDate:   paymentDate,
		PaymentMethod: method,
	}

	status, balance, err := s.Repo.Record(ctx, payment)
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.Inc()
	cache.InvalidatePaymentCaches(ctx)

	return &models.CreatePaymentResponse{
		Payment:       payment,
		PaymentStatus: status,
		Balance:       balance,
	}, nil
}

// DeletePayment removes a payment and reconciles the purchase. A
// payment that is already gone counts as deleted.
func (s *PaymentService) DeletePayment(ctx context.Context, systemID, id int) error {
	if err := s.Repo.Delete(ctx, systemID, id); err != nil {
		return err
	}
	cache.InvalidatePaymentCaches(ctx)
	return nil
}

func (s *PaymentService) GetPayment(ctx context.Context, systemID, id int) (*models.Payment, error) {
	return s.Repo.Get(ctx, systemID, id)
}

func (s *PaymentService) ListPayments(ctx context.Context, systemID int, method string, page pagination.Page) (*pagination.Result[*models.Payment], error) {
	page = page.Normalize(pagination.PaymentsPerPage)

	payments, total, err := s.Repo.List(ctx, systemID, method, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(payments, page, total)
	return &result, nil
}

func (s *PaymentService) ListByPurchase(ctx context.Context, systemID, purchaseID int, page pagination.Page) (*pagination.Result[*models.Payment], error) {
	page = page.Normalize(pagination.PurchaseSubListSize)

	payments, total, err := s.Repo.ListByPurchase(ctx, systemID, purchaseID, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(payments, page, total)
	return &result, nil
}

// SumForPurchase totals the payments recorded against a purchase.
func (s *PaymentService) SumForPurchase(ctx context.Context, systemID, purchaseID int) (float64, error) {
	return s.Repo.SumForPurchase(ctx, systemID, purchaseID)
}

func (s *PaymentService) ListByClient(ctx context.Context, systemID, clientID int, page pagination.Page) (*pagination.Result[*models.Payment], error) {
	page = page.Normalize(pagination.PurchaseSubListSize)

	payments, total, err := s.Repo.ListByClient(ctx, systemID, clientID, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(payments, page, total)
	return &result, nil
}
