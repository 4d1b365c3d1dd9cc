package repositories

import (
	"context"
	"time"

	"storefront/config"
	"storefront/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

const productColumns = `id, name, slug, description, price, category_id, quantity, shipping, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }, p *models.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price,
		&p.CategoryID, &p.Quantity, &p.Shipping, &p.CreatedAt, &p.UpdatedAt,
	)
}

// FindBySlugs resolves cart lines against the catalog in one batch query.
func (r *ProductRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = ANY($1)`

	rows, err := config.DB.Query(ctx, query, slugs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE slug = $1`

	var p models.Product
	if err := scanProduct(config.DB.QueryRow(ctx, query, slug), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) FindAll(ctx context.Context, page, limit int) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	var total int
	if err := config.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := config.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
	          WHERE name ILIKE $1 OR description ILIKE $1
	          ORDER BY created_at DESC`

	rows, err := config.DB.Query(ctx, query, "%"+keyword+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Related returns products sharing a category, excluding the product itself.
func (r *ProductRepository) Related(ctx context.Context, productID, categoryID, limit int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
	          WHERE category_id = $1 AND id <> $2
	          ORDER BY created_at DESC LIMIT $3`

	rows, err := config.DB.Query(ctx, query, categoryID, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) FindByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY created_at DESC`

	rows, err := config.DB.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product, photo *models.ProductPhoto) error {
	query := `
		INSERT INTO products (name, slug, description, price, category_id, quantity, shipping, photo, photo_content_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	var photoData []byte
	var photoType *string
	if photo != nil {
		photoData = photo.Data
		photoType = &photo.ContentType
	}

	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		product.Name, product.Slug, product.Description, product.Price,
		product.CategoryID, product.Quantity, product.Shipping,
		photoData, photoType, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product, photo *models.ProductPhoto) error {
	if photo != nil {
		query := `UPDATE products SET name=$1, slug=$2, description=$3, price=$4, category_id=$5,
		          quantity=$6, shipping=$7, photo=$8, photo_content_type=$9, updated_at=$10 WHERE id=$11`
		_, err := config.DB.Exec(ctx, query,
			product.Name, product.Slug, product.Description, product.Price, product.CategoryID,
			product.Quantity, product.Shipping, photo.Data, photo.ContentType, time.Now(), product.ID,
		)
		return err
	}

	query := `UPDATE products SET name=$1, slug=$2, description=$3, price=$4, category_id=$5,
	          quantity=$6, shipping=$7, updated_at=$8 WHERE id=$9`
	_, err := config.DB.Exec(ctx, query,
		product.Name, product.Slug, product.Description, product.Price, product.CategoryID,
		product.Quantity, product.Shipping, time.Now(), product.ID,
	)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := config.DB.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

func (r *ProductRepository) GetPhoto(ctx context.Context, id int) (*models.ProductPhoto, error) {
	var photo models.ProductPhoto
	err := config.DB.QueryRow(ctx,
		`SELECT photo, COALESCE(photo_content_type, '') FROM products WHERE id = $1`, id,
	).Scan(&photo.Data, &photo.ContentType)
	if err != nil {
		return nil, err
	}
	return &photo, nil
}
