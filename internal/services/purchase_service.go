package services

import (
	"context"
	"errors"
	"fmt"

	"boutique-backend/internal/billing"
	"boutique-backend/internal/cache"
	"boutique-backend/internal/metrics"
	"boutique-backend/internal/models"
	"boutique-backend/internal/pagination"
	"boutique-backend/internal/timeutil"
)

// PurchaseStore is the subset of the purchase repository the service
// needs.
type PurchaseStore interface {
	Create(ctx context.Context, p *models.Purchase, items []models.PurchaseItem) error
	Get(ctx context.Context, systemID, id int) (*models.Purchase, error)
	List(ctx context.Context, systemID int, page pagination.Page) ([]*models.Purchase, int, error)
	ListByClient(ctx context.Context, systemID, clientID int, page pagination.Page) ([]*models.Purchase, int, error)
	ListByProduct(ctx context.Context, systemID, productID int, page pagination.Page) ([]*models.Purchase, int, error)
	ListOverdue(ctx context.Context, systemID int) ([]*models.Purchase, error)
	Update(ctx context.Context, p *models.Purchase) error
	Delete(ctx context.Context, systemID, id int) error
	UpdatePaymentStatus(ctx context.Context, systemID, id int, status string) error
	UpdateShippingStatus(ctx context.Context, systemID, id int, status string) error
	TotalAmountByClient(ctx context.Context, systemID, clientID int) (float64, error)
}

// ClientGetter looks up a client for validation.
type ClientGetter interface {
	Get(ctx context.Context, systemID, id int) (*models.Client, error)
}

// ProductGetter looks up a product for validation.
type ProductGetter interface {
	Get(ctx context.Context, id int) (*models.Product, error)
}

// PaymentRecorder records the optional first payment of an order.
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, systemID int, req *models.CreatePaymentRequest) (*models.CreatePaymentResponse, error)
	SumForPurchase(ctx context.Context, systemID, purchaseID int) (float64, error)
}

type PurchaseService struct {
	Repo     PurchaseStore
	Clients  ClientGetter
	Products ProductGetter
	Payments PaymentRecorder
}

func NewPurchaseService(repo PurchaseStore, clients ClientGetter, products ProductGetter, payments PaymentRecorder) *PurchaseService {
	return &PurchaseService{Repo: repo, Clients: clients, Products: products, Payments: payments}
}

// CreateOrder is the one user-facing action that records a sale: it
// validates the client and products, creates the purchase with its
// line items in one transaction, and optionally records an immediate
// first payment. A failed payment step leaves the purchase in place
// with Pending status and reports the error alongside it.
func (s *PurchaseService) CreateOrder(ctx context.Context, systemID int, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	if req.ClientID == 0 {
		return nil, errors.New("client is required")
	}
	if _, err := s.Clients.Get(ctx, systemID, req.ClientID); err != nil {
		return nil, errors.New("client not found")
	}

	purchaseDate := timeutil.Now()
	if req.PurchaseDate != "" {
		var err error
		purchaseDate, err = timeutil.ParseLocal(timeutil.DateLayout, req.PurchaseDate)
		if err != nil {
			return nil, errors.New("purchase date must be YYYY-MM-DD")
		}
	}

	amount := req.Amount
	if amount < 0 {
		return nil, errors.New("amount cannot be negative")
	}

	var items []models.PurchaseItem
	var productID *int

	if len(req.Items) > 0 {
		for _, item := range req.Items {
			if item.ProductID == 0 {
				return nil, errors.New("each line item needs a product")
			}
			if item.Quantity <= 0 {
				return nil, errors.New("line item quantity must be positive")
			}
			if item.PricePerItem < 0 {
				return nil, errors.New("line item price cannot be negative")
			}
			if _, err := s.Products.Get(ctx, item.ProductID); err != nil {
				return nil, fmt.Errorf("product %d not found", item.ProductID)
			}
			items = append(items, models.PurchaseItem{
				ProductID:    item.ProductID,
				Size:         item.Size,
				Quantity:     item.Quantity,
				PricePerItem: item.PricePerItem,
			})
		}
		// Amount defaults to the sum of the lines
		if amount == 0 {
			for _, item := range items {
				amount += float64(item.Quantity) * item.PricePerItem
			}
		}
	} else {
		if req.ProductID == 0 {
			return nil, errors.New("product or line items are required")
		}
		if _, err := s.Products.Get(ctx, req.ProductID); err != nil {
			return nil, errors.New("product not found")
		}
		pid := req.ProductID
		productID = &pid
	}

	purchase := &models.Purchase{
		SystemID:       systemID,
		ClientID:       req.ClientID,
		ProductID:      productID,
		Size:           req.Size,
		Amount:         amount,
		PurchaseDate:   purchaseDate,
		PaymentStatus:  billing.DeriveStatus(amount, nil),
		ShippingStatus: models.ShippingStatusPending,
	}

	if err := s.Repo.Create(ctx, purchase, items); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	cache.InvalidatePurchaseCaches(ctx)

	resp := &models.CreateOrderResponse{Purchase: purchase}

	if req.Payment != nil {
		payReq := *req.Payment
		payReq.PurchaseID = purchase.ID
		payReq.ClientID = purchase.ClientID
		payResp, err := s.Payments.RecordPayment(ctx, systemID, &payReq)
		if err != nil {
			resp.PaymentError = err.Error()
		} else {
			purchase.PaymentStatus = payResp.PaymentStatus
		}
	}

	return resp, nil
}

func (s *PurchaseService) GetPurchase(ctx context.Context, systemID, id int) (*models.Purchase, error) {
	return s.Repo.Get(ctx, systemID, id)
}

func (s *PurchaseService) ListPurchases(ctx context.Context, systemID int, page pagination.Page) (*pagination.Result[*models.Purchase], error) {
	page = page.Normalize(pagination.PurchaseSubListSize)

	purchases, total, err := s.Repo.List(ctx, systemID, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(purchases, page, total)
	return &result, nil
}

func (s *PurchaseService) ListByClient(ctx context.Context, systemID, clientID int, page pagination.Page) (*pagination.Result[*models.Purchase], error) {
	page = page.Normalize(pagination.PurchaseSubListSize)

	purchases, total, err := s.Repo.ListByClient(ctx, systemID, clientID, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(purchases, page, total)
	return &result, nil
}

func (s *PurchaseService) ListByProduct(ctx context.Context, systemID, productID int, page pagination.Page) (*pagination.Result[*models.Purchase], error) {
	page = page.Normalize(pagination.PurchaseSubListSize)

	purchases, total, err := s.Repo.ListByProduct(ctx, systemID, productID, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(purchases, page, total)
	return &result, nil
}

func (s *PurchaseService) ListOverdue(ctx context.Context, systemID int) ([]*models.Purchase, error) {
	return s.Repo.ListOverdue(ctx, systemID)
}

func (s *PurchaseService) TotalByClient(ctx context.Context, systemID, clientID int) (float64, error) {
	return s.Repo.TotalAmountByClient(ctx, systemID, clientID)
}

// UpdatePurchase edits the purchase fields. Changing the amount can
// change what the payments add up to, so the payment status is
// rederived afterwards unless the purchase is Overdue.
func (s *PurchaseService) UpdatePurchase(ctx context.Context, systemID, id int, req *models.UpdatePurchaseRequest) (*models.Purchase, error) {
	existing, err := s.Repo.Get(ctx, systemID, id)
	if err != nil {
		return nil, errors.New("purchase not found")
	}
	if req.Amount < 0 {
		return nil, errors.New("amount cannot be negative")
	}
	if req.ClientID != 0 {
		if _, err := s.Clients.Get(ctx, systemID, req.ClientID); err != nil {
			return nil, errors.New("client not found")
		}
		existing.ClientID = req.ClientID
	}
	if req.ProductID != 0 {
		if _, err := s.Products.Get(ctx, req.ProductID); err != nil {
			return nil, errors.New("product not found")
		}
		pid := req.ProductID
		existing.ProductID = &pid
	}
	if req.Size != "" {
		existing.Size = req.Size
	}
	if req.PurchaseDate != "" {
		existing.PurchaseDate, err = timeutil.ParseLocal(timeutil.DateLayout, req.PurchaseDate)
		if err != nil {
			return nil, errors.New("purchase date must be YYYY-MM-DD")
		}
	}
	// Zero means unchanged, like the other fields; a partial edit must
	// not wipe the total and settle the purchase through rederivation
	if req.Amount != 0 {
		existing.Amount = req.Amount
	}

	if err := s.Repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if billing.Recomputable(existing.PaymentStatus) {
		paid, err := s.Payments.SumForPurchase(ctx, systemID, id)
		if err == nil {
			status := billing.DeriveStatus(existing.Amount, []float64{paid})
			if status != existing.PaymentStatus {
				if err := s.Repo.UpdatePaymentStatus(ctx, systemID, id, status); err != nil {
					return nil, err
				}
			}
		}
	}

	cache.InvalidatePurchaseCaches(ctx)
	return s.Repo.Get(ctx, systemID, id)
}

// DeletePurchase removes a purchase with its payments and items. A
// purchase that is already gone counts as deleted.
func (s *PurchaseService) DeletePurchase(ctx context.Context, systemID, id int) error {
	if err := s.Repo.Delete(ctx, systemID, id); err != nil {
		return err
	}
	cache.InvalidatePurchaseCaches(ctx)
	return nil
}

// SetPaymentStatus is the explicit override, the only way a purchase
// leaves the Overdue state short of new payments covering it.
func (s *PurchaseService) SetPaymentStatus(ctx context.Context, systemID, id int, status string) error {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusPartial,
		models.PaymentStatusPaid, models.PaymentStatusOverdue:
	default:
		return errors.New("invalid payment status")
	}

	if err := s.Repo.UpdatePaymentStatus(ctx, systemID, id, status); err != nil {
		return err
	}
	cache.InvalidatePurchaseCaches(ctx)
	return nil
}

func (s *PurchaseService) SetShippingStatus(ctx context.Context, systemID, id int, status string) error {
	switch status {
	case models.ShippingStatusPending, models.ShippingStatusShipped, models.ShippingStatusDelivered:
	default:
		return errors.New("invalid shipping status")
	}

	if err := s.Repo.UpdateShippingStatus(ctx, systemID, id, status); err != nil {
		return err
	}
	cache.InvalidatePurchaseCaches(ctx)
	return nil
}
