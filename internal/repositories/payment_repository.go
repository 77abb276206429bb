package repositories

import (
	"context"

	"boutique-backend/internal/billing"
	"boutique-backend/internal/models"
	"boutique-backend/internal/pagination"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `id, system_id, client_id, purchase_id, amount_paid, payment_date,
        payment_method, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.SystemID, &p.ClientID, &p.PurchaseID, &p.AmountPaid,
		&p.PaymentDate, &p.PaymentMethod, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

// Record inserts the payment and recomputes the purchase's payment
// status in the same transaction, so a concurrent payment can never
// leave the status stale. Returns the status and the remaining balance
// as of this payment.
func (r *PaymentRepository) Record(ctx context.Context, p *models.Payment) (string, float64, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return "", 0, err
	}
	defer tx.Rollback(ctx)

	// Lock the purchase row first so two payments serialize
	var total float64
	var currentStatus string
	err = tx.QueryRow(ctx,
		`SELECT amount, payment_status FROM purchases
         WHERE system_id=$1 AND id=$2 FOR UPDATE`,
		p.SystemID, p.PurchaseID).Scan(&total, &currentStatus)
	if err != nil {
		return "", 0, err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO payments(system_id, client_id, purchase_id, amount_paid, payment_date, payment_method)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		p.SystemID, p.ClientID, p.PurchaseID, p.AmountPaid, p.PaymentDate, p.PaymentMethod,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return "", 0, err
	}

	status, balance, err := reconcileTx(ctx, tx, p.SystemID, p.PurchaseID, total, currentStatus)
	if err != nil {
		return "", 0, err
	}

	return status, balance, tx.Commit(ctx)
}

// Delete removes a payment and recomputes the purchase status in the
// same transaction. Deleting an already-deleted payment is a no-op.
func (r *PaymentRepository) Delete(ctx context.Context, systemID, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var purchaseID int
	err = tx.QueryRow(ctx,
		`DELETE FROM payments WHERE system_id=$1 AND id=$2 RETURNING purchase_id`,
		systemID, id).Scan(&purchaseID)
	if err == pgx.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	var total float64
	var currentStatus string
	err = tx.QueryRow(ctx,
		`SELECT amount, payment_status FROM purchases
         WHERE system_id=$1 AND id=$2 FOR UPDATE`,
		systemID, purchaseID).Scan(&total, &currentStatus)
	if err != nil {
		return err
	}

	if _, _, err := reconcileTx(ctx, tx, systemID, purchaseID, total, currentStatus); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// reconcileTx derives the purchase status from its payments inside an
// open transaction. An Overdue status is left alone; only an explicit
// status update clears it.
func reconcileTx(ctx context.Context, tx pgx.Tx, systemID, purchaseID int, total float64, currentStatus string) (string, float64, error) {
	var paid float64
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_paid), 0) FROM payments
         WHERE system_id=$1 AND purchase_id=$2`,
		systemID, purchaseID).Scan(&paid)
	if err != nil {
		return "", 0, err
	}

	balance := billing.Balance(total, []float64{paid})
	if !billing.Recomputable(currentStatus) {
		return currentStatus, balance, nil
	}

	status := billing.DeriveStatus(total, []float64{paid})
	if status != currentStatus {
		_, err = tx.Exec(ctx,
			`UPDATE purchases SET payment_status=$1, updated_at=CURRENT_TIMESTAMP
             WHERE system_id=$2 AND id=$3`, status, systemID, purchaseID)
		if err != nil {
			return "", 0, err
		}
	}
	return status, balance, nil
}

func (r *PaymentRepository) Get(ctx context.Context, systemID, id int) (*models.Payment, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE system_id=$1 AND id=$2`, systemID, id)
	return scanPayment(row)
}

func (r *PaymentRepository) collect(rows pgx.Rows) ([]*models.Payment, error) {
	defer rows.Close()
	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// List returns one page of payments, optionally narrowed to a single
// payment method.
func (r *PaymentRepository) List(ctx context.Context, systemID int, method string, page pagination.Page) ([]*models.Payment, int, error) {
	where := `system_id=$1 AND ($2::text = '' OR payment_method = $2)`

	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE `+where, systemID, method).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE `+where+`
         ORDER BY payment_date DESC, id DESC
         LIMIT $3 OFFSET $4`, systemID, method, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	payments, err := r.collect(rows)
	return payments, total, err
}

// ListByPurchase powers the payment panel on a purchase's page.
func (r *PaymentRepository) ListByPurchase(ctx context.Context, systemID, purchaseID int, page pagination.Page) ([]*models.Payment, int, error) {
	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE system_id=$1 AND purchase_id=$2`,
		systemID, purchaseID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE system_id=$1 AND purchase_id=$2
         ORDER BY payment_date DESC, id DESC
         LIMIT $3 OFFSET $4`, systemID, purchaseID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	payments, err := r.collect(rows)
	return payments, total, err
}

func (r *PaymentRepository) ListByClient(ctx context.Context, systemID, clientID int, page pagination.Page) ([]*models.Payment, int, error) {
	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE system_id=$1 AND client_id=$2`,
		systemID, clientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE system_id=$1 AND client_id=$2
         ORDER BY payment_date DESC, id DESC
         LIMIT $3 OFFSET $4`, systemID, clientID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	payments, err := r.collect(rows)
	return payments, total, err
}

// SumForPurchase totals the payments recorded against a purchase.
func (r *PaymentRepository) SumForPurchase(ctx context.Context, systemID, purchaseID int) (float64, error) {
	var paid float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_paid), 0) FROM payments
         WHERE system_id=$1 AND purchase_id=$2`, systemID, purchaseID).Scan(&paid)
	return paid, err
}
