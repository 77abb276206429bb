package repositories

import (
	"context"
	"time"

	"boutique-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepository struct {
	DB *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// SalesMetrics computes the three headline figures for a window:
// gross sales from purchases dated in it, revenue from payments
// received in it, and net sales as payments received against purchases
// dated in it.
func (r *AnalyticsRepository) SalesMetrics(ctx context.Context, systemID int, start, end time.Time) (*models.SalesMetrics, error) {
	var m models.SalesMetrics

	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM purchases
         WHERE system_id=$1 AND purchase_date >= $2 AND purchase_date < $3`,
		systemID, start, end).Scan(&m.GrossSales)
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_paid), 0) FROM payments
         WHERE system_id=$1 AND payment_date >= $2 AND payment_date < $3`,
		systemID, start, end).Scan(&m.RevenueEarned)
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(pay.amount_paid), 0)
         FROM payments pay
         JOIN purchases pur ON pur.id = pay.purchase_id
         WHERE pay.system_id=$1 AND pur.purchase_date >= $2 AND pur.purchase_date < $3`,
		systemID, start, end).Scan(&m.NetSales)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// MonthlyBreakdown returns one row per month of the year, including
// months with no sales.
func (r *AnalyticsRepository) MonthlyBreakdown(ctx context.Context, systemID int, year int, loc *time.Location) ([]*models.SalesMetrics, error) {
	months := make([]*models.SalesMetrics, 0, 12)
	for month := time.January; month <= time.December; month++ {
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0)
		m, err := r.SalesMetrics(ctx, systemID, start, end)
		if err != nil {
			return nil, err
		}
		m.Period = start.Format("2006-01")
		months = append(months, m)
	}
	return months, nil
}

// TopProductsByClients ranks products by how many distinct clients
// bought them, counting only products with at least minClients buyers.
func (r *AnalyticsRepository) TopProductsByClients(ctx context.Context, systemID, minClients, limit int) ([]*models.TopProduct, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT pr.id, pr.name, COALESCE(pr.image_url, ''), COUNT(DISTINCT sub.client_id) as clients
         FROM (
             SELECT product_id, client_id FROM purchases
             WHERE system_id=$1 AND product_id IS NOT NULL
             UNION
             SELECT pi.product_id, p.client_id FROM purchase_items pi
             JOIN purchases p ON p.id = pi.purchase_id
             WHERE p.system_id=$1
         ) sub
         JOIN products pr ON pr.id = sub.product_id
         GROUP BY pr.id, pr.name, pr.image_url
         HAVING COUNT(DISTINCT sub.client_id) >= $2
         ORDER BY clients DESC, pr.name ASC
         LIMIT $3`, systemID, minClients, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.TopProduct
	for rows.Next() {
		var tp models.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.ProductName, &tp.ImageURL, &tp.Clients); err != nil {
			return nil, err
		}
		products = append(products, &tp)
	}
	return products, rows.Err()
}

// TopProductsBySales ranks products by units sold. Single-item
// purchases count as one unit; multi-item purchases count quantities.
func (r *AnalyticsRepository) TopProductsBySales(ctx context.Context, systemID, limit int) ([]*models.TopProduct, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT pr.id, pr.name, COALESCE(pr.image_url, ''), SUM(sub.qty) as sales
         FROM (
             SELECT product_id, 1 as qty FROM purchases
             WHERE system_id=$1 AND product_id IS NOT NULL
             UNION ALL
             SELECT pi.product_id, pi.quantity FROM purchase_items pi
             JOIN purchases p ON p.id = pi.purchase_id
             WHERE p.system_id=$1
         ) sub
         JOIN products pr ON pr.id = sub.product_id
         GROUP BY pr.id, pr.name, pr.image_url
         ORDER BY sales DESC, pr.name ASC
         LIMIT $2`, systemID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.TopProduct
	for rows.Next() {
		var tp models.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.ProductName, &tp.ImageURL, &tp.Sales); err != nil {
			return nil, err
		}
		products = append(products, &tp)
	}
	return products, rows.Err()
}

// RecentActivities merges purchases, payments and deliveries into one
// feed ordered by recency.
func (r *AnalyticsRepository) RecentActivities(ctx context.Context, systemID, limit int) ([]*models.Activity, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT kind, first_name || ' ' || last_name as client_name, amount, occurred_at FROM (
             SELECT 'purchase' as kind, c.first_name, c.last_name, p.amount, p.created_at as occurred_at
             FROM purchases p JOIN clients c ON c.id = p.client_id
             WHERE p.system_id=$1
             UNION ALL
             SELECT 'payment' as kind, c.first_name, c.last_name, pay.amount_paid, pay.created_at
             FROM payments pay JOIN clients c ON c.id = pay.client_id
             WHERE pay.system_id=$1
             UNION ALL
             SELECT 'delivery' as kind, c.first_name, c.last_name, p.amount, p.updated_at
             FROM purchases p JOIN clients c ON c.id = p.client_id
             WHERE p.system_id=$1 AND p.shipping_status='Delivered'
         ) feed
         ORDER BY occurred_at DESC
         LIMIT $2`, systemID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		var a models.Activity
		var occurredAt time.Time
		if err := rows.Scan(&a.Kind, &a.ClientName, &a.Amount, &occurredAt); err != nil {
			return nil, err
		}
		a.OccurredAt = occurredAt.Format(time.RFC3339)
		activities = append(activities, &a)
	}
	return activities, rows.Err()
}

// DashboardSummary gathers the headline counters for the dashboard.
func (r *AnalyticsRepository) DashboardSummary(ctx context.Context, systemID int, monthStart time.Time) (*models.DashboardSummary, error) {
	var s models.DashboardSummary

	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM clients WHERE system_id=$1`, systemID).Scan(&s.TotalClients)
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&s.TotalProducts)
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM purchases
         WHERE system_id=$1 AND payment_status <> $2`,
		systemID, models.PaymentStatusPaid).Scan(&s.OpenPurchases)
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(p.amount - paid.total), 0)
         FROM purchases p
         JOIN LATERAL (
             SELECT COALESCE(SUM(amount_paid), 0) as total
             FROM payments WHERE purchase_id = p.id
         ) paid ON TRUE
         WHERE p.system_id=$1 AND p.amount > paid.total`,
		systemID).Scan(&s.OutstandingOwed)
	if err != nil {
		return nil, err
	}

	err = r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_paid), 0) FROM payments
         WHERE system_id=$1 AND payment_date >= $2`,
		systemID, monthStart).Scan(&s.RevenueThisMonth)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
