package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"storefront/config"
	"storefront/models"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists the order and its product snapshots in one transaction.
// It is only ever called after the gateway reported a successful sale.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	err = tx.QueryRow(ctx,
		`INSERT INTO orders (buyer_id, payment, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		order.BuyerID, order.Payment, order.Status, now, now,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	for _, p := range order.Products {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_products (order_id, product_id, name, slug, price)
			 VALUES ($1, $2, $3, $4, $5)`,
			order.ID, p.ProductID, p.Name, p.Slug, p.Price,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// UpdateStatus writes the new status unconditionally and returns the updated
// order. A missing order id yields (nil, nil), not an error.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int, status string) (*models.Order, error) {
	var order models.Order
	err := config.DB.QueryRow(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3
		 RETURNING id, buyer_id, payment, status, created_at, updated_at`,
		status, time.Now(), id,
	).Scan(&order.ID, &order.BuyerID, &order.Payment, &order.Status, &order.CreatedAt, &order.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadProducts(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindByBuyer(ctx context.Context, buyerID int) ([]models.Order, error) {
	return r.find(ctx,
		`SELECT id, buyer_id, payment, status, created_at, updated_at
		 FROM orders WHERE buyer_id=$1 ORDER BY created_at DESC`, buyerID)
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx,
		`SELECT id, buyer_id, payment, status, created_at, updated_at
		 FROM orders ORDER BY created_at DESC`)
}

func (r *OrderRepository) find(ctx context.Context, query string, args ...interface{}) ([]models.Order, error) {
	rows, err := config.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.BuyerID, &o.Payment, &o.Status, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.loadProducts(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) loadProducts(ctx context.Context, order *models.Order) error {
	rows, err := config.DB.Query(ctx,
		`SELECT product_id, name, slug, price FROM order_products WHERE order_id=$1 ORDER BY product_id`,
		order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.Products = []models.OrderProduct{}
	for rows.Next() {
		var p models.OrderProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Slug, &p.Price); err != nil {
			return err
		}
		order.Products = append(order.Products, p)
	}
	return rows.Err()
}
