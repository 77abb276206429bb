package repositories

import (
	"context"

	"boutique-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProcessorRepository struct {
	DB *pgxpool.Pool
}

func NewProcessorRepository(db *pgxpool.Pool) *ProcessorRepository {
	return &ProcessorRepository{DB: db}
}

// Save upserts the processor credentials for a system. Each system
// holds at most one set.
func (r *ProcessorRepository) Save(ctx context.Context, c *models.ProcessorCredentials) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO processor_credentials(system_id, client_key, encrypted_secret)
         VALUES($1, $2, $3)
         ON CONFLICT (system_id) DO UPDATE
             SET client_key=EXCLUDED.client_key,
                 encrypted_secret=EXCLUDED.encrypted_secret,
                 updated_at=CURRENT_TIMESTAMP
         RETURNING id, created_at, updated_at`,
		c.SystemID, c.ClientKey, c.EncryptedSecret,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ProcessorRepository) GetBySystem(ctx context.Context, systemID int) (*models.ProcessorCredentials, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, system_id, client_key, encrypted_secret, created_at, updated_at
         FROM processor_credentials WHERE system_id=$1`, systemID)

	var creds models.ProcessorCredentials
	err := row.Scan(&creds.ID, &creds.SystemID, &creds.ClientKey, &creds.EncryptedSecret,
		&creds.CreatedAt, &creds.UpdatedAt)
	return &creds, err
}

func (r *ProcessorRepository) Delete(ctx context.Context, systemID int) error {
	_, err := r.DB.Exec(ctx,
		`DELETE FROM processor_credentials WHERE system_id=$1`, systemID)
	return err
}
