package repositories

import (
	"context"

	"boutique-backend/internal/models"
	"boutique-backend/internal/pagination"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `id, name, COALESCE(description, '') as description, price,
        COALESCE(image_url, '') as image_url, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO products(name, description, price, image_url)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.Price, p.ImageURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, id)
	return scanProduct(row)
}

// List pages through the catalog, optionally narrowed by a name search
// and a price range. Negative bounds mean unbounded.
func (r *ProductRepository) List(ctx context.Context, search string, minPrice, maxPrice float64, page pagination.Page) ([]*models.Product, int, error) {
	where := `($1::text = '' OR name ILIKE '%' || $1 || '%')
        AND ($2::numeric < 0 OR price >= $2)
        AND ($3::numeric < 0 OR price <= $3)`

	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE `+where,
		search, minPrice, maxPrice).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+where+`
         ORDER BY created_at DESC
         LIMIT $4 OFFSET $5`, search, minPrice, maxPrice, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE products SET name=$1, description=$2, price=$3, image_url=$4, updated_at=CURRENT_TIMESTAMP
         WHERE id=$5`,
		p.Name, p.Description, p.Price, p.ImageURL, p.ID)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}

// ImageInUse reports whether another product already uses the image.
// Uploads are content-addressed, so this catches duplicate photos.
func (r *ProductRepository) ImageInUse(ctx context.Context, imageURL string) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE image_url=$1`, imageURL).Scan(&count)
	return count > 0, err
}

// ClientsForProduct lists clients who bought the product, with how many
// times each did, through either single-item or multi-item purchases.
func (r *ProductRepository) ClientsForProduct(ctx context.Context, systemID, productID int, page pagination.Page) ([]*models.ProductClient, int, error) {
	base := `
        FROM clients c
        JOIN (
            SELECT client_id, COUNT(*) as purchases FROM (
                SELECT p.client_id FROM purchases p
                WHERE p.system_id=$1 AND p.product_id=$2
                UNION ALL
                SELECT p.client_id FROM purchases p
                JOIN purchase_items pi ON pi.purchase_id = p.id
                WHERE p.system_id=$1 AND pi.product_id=$2
            ) sub GROUP BY client_id
        ) bought ON bought.client_id = c.id`

	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) `+base, systemID, productID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT c.id, c.first_name, c.last_name, bought.purchases `+base+`
         ORDER BY bought.purchases DESC, c.first_name ASC
         LIMIT $3 OFFSET $4`, systemID, productID, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var clients []*models.ProductClient
	for rows.Next() {
		var pc models.ProductClient
		if err := rows.Scan(&pc.ClientID, &pc.FirstName, &pc.LastName, &pc.Purchases); err != nil {
			return nil, 0, err
		}
		clients = append(clients, &pc)
	}
	return clients, total, rows.Err()
}
