package repositories

import (
	"context"
	"strconv"
	"strings"

	"boutique-backend/internal/models"
	"boutique-backend/internal/pagination"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientRepository struct {
	DB *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{DB: db}
}

const clientColumns = `id, system_id, first_name, last_name, contact_method, contact_details,
        COALESCE(preferred_payment_method, '') as preferred_payment_method,
        COALESCE(additional_notes, '') as additional_notes, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.SystemID, &c.FirstName, &c.LastName, &c.ContactMethod,
		&c.ContactDetails, &c.PreferredPaymentMethod, &c.AdditionalNotes, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO clients(system_id, first_name, last_name, contact_method, contact_details,
             preferred_payment_method, additional_notes)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at, updated_at`,
		c.SystemID, c.FirstName, c.LastName, c.ContactMethod, c.ContactDetails,
		c.PreferredPaymentMethod, c.AdditionalNotes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClientRepository) Get(ctx context.Context, systemID, id int) (*models.Client, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE system_id=$1 AND id=$2`, systemID, id)
	return scanClient(row)
}

// List returns one page of clients ordered alphabetically, optionally
// filtered by a search term. Each whitespace-separated part of the term
// must match the first or last name, so "ja do" finds Jane Doe.
func (r *ClientRepository) List(ctx context.Context, systemID int, search string, page pagination.Page) ([]*models.Client, int, error) {
	where := `system_id=$1`
	args := []any{systemID}

	for _, part := range strings.Fields(search) {
		args = append(args, "%"+part+"%")
		n := len(args)
		where += ` AND (first_name ILIKE $` + strconv.Itoa(n) + ` OR last_name ILIKE $` + strconv.Itoa(n) + `)`
	}

	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM clients WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, page.Size, page.Offset())
	rows, err := r.DB.Query(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE `+where+`
         ORDER BY first_name ASC, last_name ASC
         LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, c)
	}
	return clients, total, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE clients SET first_name=$1, last_name=$2, contact_method=$3, contact_details=$4,
             preferred_payment_method=$5, additional_notes=$6, updated_at=CURRENT_TIMESTAMP
         WHERE system_id=$7 AND id=$8`,
		c.FirstName, c.LastName, c.ContactMethod, c.ContactDetails,
		c.PreferredPaymentMethod, c.AdditionalNotes, c.SystemID, c.ID)
	return err
}

func (r *ClientRepository) Delete(ctx context.Context, systemID, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM clients WHERE system_id=$1 AND id=$2`, systemID, id)
	return err
}
