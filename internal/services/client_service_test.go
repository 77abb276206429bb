package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique-backend/internal/models"
	"boutique-backend/internal/pagination"
	"boutique-backend/internal/services"
)

type mockClientStore struct {
	createFn func(ctx context.Context, c *models.Client) error
	getFn    func(ctx context.Context, systemID, id int) (*models.Client, error)
	listFn   func(ctx context.Context, systemID int, search string, page pagination.Page) ([]*models.Client, int, error)
	updateFn func(ctx context.Context, c *models.Client) error
	deleteFn func(ctx context.Context, systemID, id int) error
}

func (m *mockClientStore) Create(ctx context.Context, c *models.Client) error { return m.createFn(ctx, c) }
func (m *mockClientStore) Get(ctx context.Context, systemID, id int) (*models.Client, error) {
	return m.getFn(ctx, systemID, id)
}
func (m *mockClientStore) List(ctx context.Context, systemID int, search string, page pagination.Page) ([]*models.Client, int, error) {
	return m.listFn(ctx, systemID, search, page)
}
func (m *mockClientStore) Update(ctx context.Context, c *models.Client) error { return m.updateFn(ctx, c) }
func (m *mockClientStore) Delete(ctx context.Context, systemID, id int) error {
	return m.deleteFn(ctx, systemID, id)
}

func TestCreateClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.CreateClientRequest
		wantErr string
	}{
		{
			name:    "missing names",
			req:     &models.CreateClientRequest{ContactMethod: "phone", ContactDetails: "555-0101"},
			wantErr: "first name and last name are required",
		},
		{
			name: "bad email",
			req: &models.CreateClientRequest{FirstName: "Jane", LastName: "Doe",
				ContactMethod: "email", ContactDetails: "not-an-email"},
			wantErr: "contact details must be a valid email address",
		},
		{
			name: "blank phone",
			req: &models.CreateClientRequest{FirstName: "Jane", LastName: "Doe",
				ContactMethod: "phone", ContactDetails: "   "},
			wantErr: "contact details must be a phone number",
		},
		{
			name: "unknown contact method",
			req: &models.CreateClientRequest{FirstName: "Jane", LastName: "Doe",
				ContactMethod: "carrier-pigeon", ContactDetails: "coop 4"},
			wantErr: "contact method must be phone or email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewClientService(&mockClientStore{})
			_, err := svc.CreateClient(context.Background(), 1, tt.req)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestCreateClientTrimsAndScopes(t *testing.T) {
	var created *models.Client
	store := &mockClientStore{
		createFn: func(ctx context.Context, c *models.Client) error {
			c.ID = 9
			created = c
			return nil
		},
	}
	svc := services.NewClientService(store)

	client, err := svc.CreateClient(context.Background(), 4, &models.CreateClientRequest{
		FirstName:      "  Jane ",
		LastName:       " Doe ",
		ContactMethod:  "email",
		ContactDetails: " jane@example.com ",
	})
	require.NoError(t, err)

	assert.Equal(t, 9, client.ID)
	assert.Equal(t, 4, created.SystemID)
	assert.Equal(t, "Jane", created.FirstName)
	assert.Equal(t, "Doe", created.LastName)
	assert.Equal(t, "jane@example.com", created.ContactDetails)
}

func TestListClientsPageDefaults(t *testing.T) {
	var gotPage pagination.Page
	var gotSearch string
	store := &mockClientStore{
		listFn: func(ctx context.Context, systemID int, search string, page pagination.Page) ([]*models.Client, int, error) {
			gotPage = page
			gotSearch = search
			clients := make([]*models.Client, 20)
			for i := range clients {
				clients[i] = &models.Client{ID: i + 1}
			}
			return clients, 45, nil
		},
	}
	svc := services.NewClientService(store)

	res, err := svc.ListClients(context.Background(), 1, "ja do", pagination.Page{})
	require.NoError(t, err)

	assert.Equal(t, 1, gotPage.Number)
	assert.Equal(t, pagination.ClientsPerPage, gotPage.Size)
	assert.Equal(t, "ja do", gotSearch)
	assert.Equal(t, 45, res.TotalCount)
	assert.Equal(t, 3, res.TotalPages)
	assert.True(t, res.HasMore)
}
