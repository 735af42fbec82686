package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/arafkarim/shopleaf-golang/internal/models"
)

// WishlistRepository provides access to the 'wishlist_items' table.
type WishlistRepository struct {
	db *sql.DB
}

func NewWishlistRepository(db *sql.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) Add(ctx context.Context, userID, productID int64) (*models.WishlistItem, error) {
	now := time.Now()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO wishlist_items (user_id, product_id, created_at) VALUES (?, ?, ?)",
		userID, productID, now)
	if err != nil {
		return nil, models.WrapStorage(err, "INSERT", "wishlist_items")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, models.WrapStorage(err, "INSERT", "wishlist_items")
	}
	return &models.WishlistItem{ID: id, UserID: userID, ProductID: productID, CreatedAt: now}, nil
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID int64) ([]models.WishlistItem, error) {
	query := `
		SELECT w.id, w.user_id, w.product_id, w.created_at, p.name
		FROM wishlist_items w
		JOIN products p ON w.product_id = p.id
		WHERE w.user_id = ?
		ORDER BY w.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, models.WrapStorage(err, "SELECT", "wishlist_items")
	}
	defer rows.Close()

	items := []models.WishlistItem{}
	for rows.Next() {
		var item models.WishlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt, &item.ProductName); err != nil {
			return nil, models.WrapStorage(err, "SELECT", "wishlist_items")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapStorage(err, "SELECT", "wishlist_items")
	}
	return items, nil
}

// Remove deletes the entry only when it belongs to the user.
func (r *WishlistRepository) Remove(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM wishlist_items WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return models.WrapStorage(err, "DELETE", "wishlist_items")
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
