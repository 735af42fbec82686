package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arafkarim/shopleaf-golang/internal/models"
	"github.com/shopspring/decimal"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// OrderRepository provides read access to persisted orders plus the
// idempotent CREATED -> PAID status flip. Order creation itself happens
// inside the checkout transaction owned by the checkout service.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT id, reference, user_id, total, status, created_at FROM orders WHERE id = ?`
	var o models.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.Reference, &o.UserID, &o.Total, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, models.WrapStorage(err, "SELECT", "orders")
	}
	items, err := r.itemsFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// ListByUser returns the user's orders, newest first, items included.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	query := `
		SELECT id, reference, user_id, total, status, created_at
		FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, models.WrapStorage(err, "SELECT", "orders")
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.UserID, &o.Total, &o.Status, &o.CreatedAt); err != nil {
			return nil, models.WrapStorage(err, "SELECT", "orders")
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapStorage(err, "SELECT", "orders")
	}

	for i := range orders {
		items, err := r.itemsFor(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *OrderRepository) itemsFor(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items WHERE order_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, models.WrapStorage(err, "SELECT", "order_items")
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, models.WrapStorage(err, "SELECT", "order_items")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapStorage(err, "SELECT", "order_items")
	}
	return items, nil
}

// MarkPaid flips the order to PAID. Calling it on an already-paid order is
// a no-op reported as alreadyPaid=true, so the payment endpoint stays
// idempotent.
func (r *OrderRepository) MarkPaid(ctx context.Context, id int64) (alreadyPaid bool, err error) {
	var status string
	err = r.db.QueryRowContext(ctx, "SELECT status FROM orders WHERE id = ?", id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, models.ErrNotFound
		}
		return false, models.WrapStorage(err, "SELECT", "orders")
	}
	if status == models.OrderStatusPaid {
		return true, nil
	}
	_, err = r.db.ExecContext(ctx, "UPDATE orders SET status = ? WHERE id = ?", models.OrderStatusPaid, id)
	if err != nil {
		return false, models.WrapStorage(err, "UPDATE", "orders")
	}
	return false, nil
}
