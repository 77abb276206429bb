package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"boutique-backend/internal/cache"
	"boutique-backend/internal/models"
	"boutique-backend/internal/pagination"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ClientStore is the subset of the client repository the service needs.
type ClientStore interface {
	Create(ctx context.Context, c *models.Client) error
	Get(ctx context.Context, systemID, id int) (*models.Client, error)
	List(ctx context.Context, systemID int, search string, page pagination.Page) ([]*models.Client, int, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, systemID, id int) error
}

type ClientService struct {
	Repo ClientStore
}

func NewClientService(repo ClientStore) *ClientService {
	return &ClientService{Repo: repo}
}

func validateClient(firstName, lastName, contactMethod, contactDetails string) error {
	if firstName == "" || lastName == "" {
		return errors.New("first name and last name are required")
	}
	switch contactMethod {
	case models.ContactMethodEmail:
		if !emailPattern.MatchString(contactDetails) {
			return errors.New("contact details must be a valid email address")
		}
	case models.ContactMethodPhone:
		if strings.TrimSpace(contactDetails) == "" {
			return errors.New("contact details must be a phone number")
		}
	default:
		return errors.New("contact method must be phone or email")
	}
	return nil
}

func (s *ClientService) CreateClient(ctx context.Context, systemID int, req *models.CreateClientRequest) (*models.Client, error) {
	if err := validateClient(req.FirstName, req.LastName, req.ContactMethod, req.ContactDetails); err != nil {
		return nil, err
	}

	client := &models.Client{
		SystemID:               systemID,
		FirstName:              strings.TrimSpace(req.FirstName),
		LastName:               strings.TrimSpace(req.LastName),
		ContactMethod:          req.ContactMethod,
		ContactDetails:         strings.TrimSpace(req.ContactDetails),
		PreferredPaymentMethod: req.PreferredPaymentMethod,
		AdditionalNotes:        req.AdditionalNotes,
	}

	if err := s.Repo.Create(ctx, client); err != nil {
		return nil, err
	}

	cache.InvalidateClientCaches(ctx)
	return client, nil
}

func (s *ClientService) GetClient(ctx context.Context, systemID, id int) (*models.Client, error) {
	return s.Repo.Get(ctx, systemID, id)
}

// ListClients returns one page, alphabetical, optionally narrowed by a
// name search.
func (s *ClientService) ListClients(ctx context.Context, systemID int, search string, page pagination.Page) (*pagination.Result[*models.Client], error) {
	page = page.Normalize(pagination.ClientsPerPage)

	clients, total, err := s.Repo.List(ctx, systemID, search, page)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(clients, page, total)
	return &result, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, systemID, id int, req *models.UpdateClientRequest) (*models.Client, error) {
	if err := validateClient(req.FirstName, req.LastName, req.ContactMethod, req.ContactDetails); err != nil {
		return nil, err
	}

	client := &models.Client{
		ID:                     id,
		SystemID:               systemID,
		FirstName:              strings.TrimSpace(req.FirstName),
		LastName:               strings.TrimSpace(req.LastName),
		ContactMethod:          req.ContactMethod,
		ContactDetails:         strings.TrimSpace(req.ContactDetails),
		PreferredPaymentMethod: req.PreferredPaymentMethod,
		AdditionalNotes:        req.AdditionalNotes,
	}

	if err := s.Repo.Update(ctx, client); err != nil {
		return nil, err
	}

	cache.InvalidateClientCaches(ctx)
	return s.Repo.Get(ctx, systemID, id)
}

func (s *ClientService) DeleteClient(ctx context.Context, systemID, id int) error {
	if err := s.Repo.Delete(ctx, systemID, id); err != nil {
		return err
	}
	cache.InvalidateClientCaches(ctx)
	return nil
}
