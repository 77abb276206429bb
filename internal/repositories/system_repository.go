package repositories

import (
	"context"

	"boutique-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SystemRepository struct {
	DB *pgxpool.Pool
}

func NewSystemRepository(db *pgxpool.Pool) *SystemRepository {
	return &SystemRepository{DB: db}
}

// Create inserts a system. The owner is attached afterwards, once the
// admin user row exists.
func (r *SystemRepository) Create(ctx context.Context, s *models.System) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO systems(owner_id) VALUES(NULLIF($1, 0))
         RETURNING id, created_at, updated_at`,
		s.OwnerID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SystemRepository) Get(ctx context.Context, id int) (*models.System, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, COALESCE(owner_id, 0), created_at, updated_at FROM systems WHERE id=$1`, id)

	var system models.System
	err := row.Scan(&system.ID, &system.OwnerID, &system.CreatedAt, &system.UpdatedAt)
	return &system, err
}

func (r *SystemRepository) SetOwner(ctx context.Context, id, ownerID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE systems SET owner_id=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`, ownerID, id)
	return err
}

// DeleteCascade wipes a tenant: every business row scoped to the
// system, its users, and the system itself, in one transaction.
func (r *SystemRepository) DeleteCascade(ctx context.Context, systemID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM payments WHERE system_id=$1`,
		`DELETE FROM purchase_items WHERE purchase_id IN (SELECT id FROM purchases WHERE system_id=$1)`,
		`DELETE FROM purchases WHERE system_id=$1`,
		`DELETE FROM clients WHERE system_id=$1`,
		`DELETE FROM processor_credentials WHERE system_id=$1`,
		`UPDATE systems SET owner_id=NULL WHERE id=$1`,
		`DELETE FROM users WHERE system_id=$1`,
		`DELETE FROM systems WHERE id=$1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, systemID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Initialized reports whether any system exists yet. The frontend asks
// this before showing registration versus login.
func (r *SystemRepository) Initialized(ctx context.Context) (bool, error) {
	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM systems`).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
