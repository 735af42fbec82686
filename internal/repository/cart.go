package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/arafkarim/shopleaf-golang/internal/models"
)

// CartRepository provides access to the 'cart_items' table. Each row is
// exclusively owned by one user; (user_id, product_id) is unique so adding
// the same product twice accumulates instead of duplicating.
type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Upsert inserts a cart line or accumulates the quantity onto an existing
// line for the same (user, product).
func (r *CartRepository) Upsert(ctx context.Context, userID, productID int64, qty int) error {
	query := `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			quantity = quantity + VALUES(quantity),
			updated_at = VALUES(updated_at)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, userID, productID, qty, now, now)
	return models.WrapStorage(err, "INSERT", "cart_items")
}

func (r *CartRepository) Get(ctx context.Context, itemID int64) (*models.CartItem, error) {
	query := `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items WHERE id = ?`
	var item models.CartItem
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, models.WrapStorage(err, "SELECT", "cart_items")
	}
	return &item, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, itemID int64, qty int) error {
	query := `UPDATE cart_items SET quantity = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, qty, time.Now(), itemID)
	return models.WrapStorage(err, "UPDATE", "cart_items")
}

func (r *CartRepository) Delete(ctx context.Context, itemID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE id = ?", itemID)
	return models.WrapStorage(err, "DELETE", "cart_items")
}

// Clear removes every line for the user. Clearing an empty cart is a no-op.
func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = ?", userID)
	return models.WrapStorage(err, "DELETE", "cart_items")
}

// Lines returns the user's cart joined with product name and current price.
func (r *CartRepository) Lines(ctx context.Context, userID int64) ([]models.CartLine, error) {
	query := `
		SELECT ci.id, ci.product_id, p.name, p.price, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = ?
		ORDER BY ci.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, models.WrapStorage(err, "SELECT", "cart_items")
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(&line.ItemID, &line.ProductID, &line.Name, &line.Price, &line.Quantity); err != nil {
			return nil, models.WrapStorage(err, "SELECT", "cart_items")
		}
		line.LineTotal = line.Price.Mul(decimalFromInt(line.Quantity))
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapStorage(err, "SELECT", "cart_items")
	}
	return lines, nil
}
