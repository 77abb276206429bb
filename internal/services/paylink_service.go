package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"boutique-backend/internal/billing"
	"boutique-backend/internal/models"
	"boutique-backend/internal/repositories"

	razorpay "github.com/razorpay/razorpay-go"
)

// PayLinkService creates hosted payment links for purchases through the
// system's stored processor credentials.
type PayLinkService struct {
	Purchases *repositories.PurchaseRepository
	Clients   *repositories.ClientRepository
	Processor *ProcessorService
}

func NewPayLinkService(purchases *repositories.PurchaseRepository, clients *repositories.ClientRepository, processor *ProcessorService) *PayLinkService {
	return &PayLinkService{Purchases: purchases, Clients: clients, Processor: processor}
}

func (s *PayLinkService) getClient(ctx context.Context, systemID int) (*razorpay.Client, error) {
	key, secret, err := s.Processor.GetCredentials(ctx, systemID)
	if err != nil {
		return nil, err
	}
	return razorpay.NewClient(key, secret), nil
}

// GenerateLink creates a payment link for the purchase's outstanding
// amount. A purchase already carrying a link gets that link cancelled
// first, so at most one live link exists per purchase.
func (s *PayLinkService) GenerateLink(ctx context.Context, systemID, purchaseID int) (*models.PaymentLinkResponse, error) {
	purchase, err := s.Purchases.Get(ctx, systemID, purchaseID)
	if err != nil {
		return nil, errors.New("purchase not found")
	}
	if purchase.PaymentStatus == models.PaymentStatusPaid {
		return nil, errors.New("purchase is already paid in full")
	}

	client, err := s.getClient(ctx, systemID)
	if err != nil {
		return nil, err
	}

	if purchase.PaymentLinkID != "" {
		if _, err := client.PaymentLink.Cancel(purchase.PaymentLinkID, nil, nil); err != nil {
			// A link that is already paid or expired cannot be
			// cancelled; the new link still supersedes it
			log.Printf("[PayLink] Could not cancel link %s: %v", purchase.PaymentLinkID, err)
		}
	}

	buyer, err := s.Clients.Get(ctx, systemID, purchase.ClientID)
	if err != nil {
		return nil, errors.New("client not found")
	}

	amountCents := billing.Cents(purchase.Amount)
	linkData := map[string]interface{}{
		"amount":      amountCents,
		"currency":    "USD",
		"description": fmt.Sprintf("Purchase #%d", purchase.ID),
		"notes": map[string]interface{}{
			"purchase_id": purchase.ID,
			"client_name": buyer.FirstName + " " + buyer.LastName,
		},
	}
	if buyer.ContactMethod == models.ContactMethodEmail {
		linkData["customer"] = map[string]interface{}{
			"name":  buyer.FirstName + " " + buyer.LastName,
			"email": buyer.ContactDetails,
		}
	}

	link, err := client.PaymentLink.Create(linkData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	linkID, _ := link["id"].(string)
	shortURL, _ := link["short_url"].(string)

	if err := s.Purchases.SetPaymentLink(ctx, systemID, purchase.ID, linkID, shortURL); err != nil {
		return nil, err
	}

	return &models.PaymentLinkResponse{
		PurchaseID: purchase.ID,
		LinkID:     linkID,
		ShortURL:   shortURL,
		Amount:     purchase.Amount,
	}, nil
}
