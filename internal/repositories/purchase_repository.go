package repositories

import (
	"context"
	"time"

	"boutique-backend/internal/models"
	"boutique-backend/internal/pagination"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PurchaseRepository struct {
	DB *pgxpool.Pool
}

func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{DB: db}
}

const purchaseColumns = `id, system_id, client_id, product_id, COALESCE(size, '') as size, amount,
        purchase_date, payment_status, shipping_status,
        COALESCE(payment_link_id, '') as payment_link_id,
        COALESCE(payment_link_url, '') as payment_link_url,
        created_at, updated_at`

func scanPurchase(row interface{ Scan(...any) error }) (*models.Purchase, error) {
	var p models.Purchase
	err := row.Scan(&p.ID, &p.SystemID, &p.ClientID, &p.ProductID, &p.Size, &p.Amount,
		&p.PurchaseDate, &p.PaymentStatus, &p.ShippingStatus,
		&p.PaymentLinkID, &p.PaymentLinkURL, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

// Create inserts the purchase and its line items in one transaction. A
// single-item purchase has no rows in purchase_items; its product lives
// on the purchase itself.
func (r *PurchaseRepository) Create(ctx context.Context, p *models.Purchase, items []models.PurchaseItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO purchases(system_id, client_id, product_id, size, amount, purchase_date,
             payment_status, shipping_status)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at, updated_at`,
		p.SystemID, p.ClientID, p.ProductID, p.Size, p.Amount, p.PurchaseDate,
		p.PaymentStatus, p.ShippingStatus,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range items {
		items[i].PurchaseID = p.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO purchase_items(purchase_id, product_id, size, quantity, price_per_item)
             VALUES($1, $2, $3, $4, $5)
             RETURNING id, created_at, updated_at`,
			items[i].PurchaseID, items[i].ProductID, items[i].Size, items[i].Quantity, items[i].PricePerItem,
		).Scan(&items[i].ID, &items[i].CreatedAt, &items[i].UpdatedAt)
		if err != nil {
			return err
		}
	}
	p.Items = items

	return tx.Commit(ctx)
}

func (r *PurchaseRepository) Get(ctx context.Context, systemID, id int) (*models.Purchase, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE system_id=$1 AND id=$2`, systemID, id)
	p, err := scanPurchase(row)
	if err != nil {
		return nil, err
	}
	if p.Items, err = r.loadItems(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PurchaseRepository) loadItems(ctx context.Context, purchaseID int) ([]models.PurchaseItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT pi.id, pi.purchase_id, pi.product_id, pr.name, pi.size, pi.quantity,
             pi.price_per_item, pi.created_at, pi.updated_at
         FROM purchase_items pi
         JOIN products pr ON pr.id = pi.product_id
         WHERE pi.purchase_id=$1
         ORDER BY pi.id ASC`, purchaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.PurchaseItem
	for rows.Next() {
		var it models.PurchaseItem
		err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.ProductName, &it.Size,
			&it.Quantity, &it.PricePerItem, &it.CreatedAt, &it.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PurchaseRepository) collect(rows pgx.Rows) ([]*models.Purchase, error) {
	defer rows.Close()
	var purchases []*models.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func (r *PurchaseRepository) List(ctx context.Context, systemID int, page pagination.Page) ([]*models.Purchase, int, error) {
	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM purchases WHERE system_id=$1`, systemID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE system_id=$1
         ORDER BY purchase_date DESC, id DESC
         LIMIT $2 OFFSET $3`, systemID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	purchases, err := r.collect(rows)
	return purchases, total, err
}

// ListByClient powers the small purchase panel on a client's page.
func (r *PurchaseRepository) ListByClient(ctx context.Context, systemID, clientID int, page pagination.Page) ([]*models.Purchase, int, error) {
	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM purchases WHERE system_id=$1 AND client_id=$2`,
		systemID, clientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE system_id=$1 AND client_id=$2
         ORDER BY purchase_date DESC, id DESC
         LIMIT $3 OFFSET $4`, systemID, clientID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	purchases, err := r.collect(rows)
	return purchases, total, err
}

// ListByProduct powers the purchase panel on a product's page. Both
// single-item purchases of the product and multi-item purchases
// containing it count.
func (r *PurchaseRepository) ListByProduct(ctx context.Context, systemID, productID int, page pagination.Page) ([]*models.Purchase, int, error) {
	where := `system_id=$1 AND (product_id=$2 OR id IN
            (SELECT purchase_id FROM purchase_items WHERE product_id=$2))`

	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM purchases WHERE `+where,
		systemID, productID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE `+where+`
         ORDER BY purchase_date DESC, id DESC
         LIMIT $3 OFFSET $4`, systemID, productID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	purchases, err := r.collect(rows)
	return purchases, total, err
}

func (r *PurchaseRepository) Update(ctx context.Context, p *models.Purchase) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE purchases SET client_id=$1, product_id=$2, size=$3, amount=$4, purchase_date=$5,
             updated_at=CURRENT_TIMESTAMP
         WHERE system_id=$6 AND id=$7`,
		p.ClientID, p.ProductID, p.Size, p.Amount, p.PurchaseDate, p.SystemID, p.ID)
	return err
}

// Delete removes the purchase together with its payments and items.
func (r *PurchaseRepository) Delete(ctx context.Context, systemID, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM payments WHERE system_id=$1 AND purchase_id=$2`, systemID, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM purchase_items WHERE purchase_id IN
             (SELECT id FROM purchases WHERE system_id=$1 AND id=$2)`, systemID, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM purchases WHERE system_id=$1 AND id=$2`, systemID, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PurchaseRepository) UpdatePaymentStatus(ctx context.Context, systemID, id int, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE purchases SET payment_status=$1, updated_at=CURRENT_TIMESTAMP
         WHERE system_id=$2 AND id=$3`, status, systemID, id)
	return err
}

func (r *PurchaseRepository) UpdateShippingStatus(ctx context.Context, systemID, id int, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE purchases SET shipping_status=$1, updated_at=CURRENT_TIMESTAMP
         WHERE system_id=$2 AND id=$3`, status, systemID, id)
	return err
}

func (r *PurchaseRepository) SetPaymentLink(ctx context.Context, systemID, id int, linkID, linkURL string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE purchases SET payment_link_id=$1, payment_link_url=$2, updated_at=CURRENT_TIMESTAMP
         WHERE system_id=$3 AND id=$4`, linkID, linkURL, systemID, id)
	return err
}

// TotalAmountByClient sums everything a client has ever been billed.
func (r *PurchaseRepository) TotalAmountByClient(ctx context.Context, systemID, clientID int) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM purchases
         WHERE system_id=$1 AND client_id=$2`, systemID, clientID).Scan(&total)
	return total, err
}

// ListOverdue returns a system's purchases currently flagged Overdue.
func (r *PurchaseRepository) ListOverdue(ctx context.Context, systemID int) ([]*models.Purchase, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases
         WHERE system_id=$1 AND payment_status=$2
         ORDER BY purchase_date ASC`, systemID, models.PaymentStatusOverdue)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// ListOverdueCandidates finds unpaid purchases older than the cutoff
// across every system. The overdue checker runs them all at once.
func (r *PurchaseRepository) ListOverdueCandidates(ctx context.Context, cutoff time.Time) ([]*models.Purchase, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases
         WHERE payment_status IN ($1, $2) AND purchase_date < $3
         ORDER BY purchase_date ASC`,
		models.PaymentStatusPending, models.PaymentStatusPartial, cutoff)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

// ListPaidUndelivered finds purchases paid in full but still not
// delivered after the cutoff, for the delivery reminder.
func (r *PurchaseRepository) ListPaidUndelivered(ctx context.Context, cutoff time.Time) ([]*models.Purchase, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases
         WHERE payment_status=$1 AND shipping_status<>$2 AND purchase_date < $3
         ORDER BY purchase_date ASC`,
		models.PaymentStatusPaid, models.ShippingStatusDelivered, cutoff)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}
