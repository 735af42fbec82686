package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arafkarim/shopleaf-golang/internal/models"
)

// ReviewRepository provides read access to the 'reviews' table. Review
// writes happen inside the review service transaction so the avg_rating
// recompute commits atomically with them.
type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Get(ctx context.Context, id int64) (*models.Review, error) {
	query := `SELECT id, user_id, product_id, rating, comment, created_at FROM reviews WHERE id = ?`
	var rev models.Review
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rev.ID, &rev.UserID, &rev.ProductID, &rev.Rating, &rev.Comment, &rev.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, models.WrapStorage(err, "SELECT", "reviews")
	}
	return &rev, nil
}

func (r *ReviewRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	query := `SELECT id, user_id, product_id, rating, comment, created_at FROM reviews ORDER BY id`
	return r.queryReviews(ctx, query)
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	query := `
		SELECT id, user_id, product_id, rating, comment, created_at
		FROM reviews WHERE product_id = ? ORDER BY id`
	return r.queryReviews(ctx, query, productID)
}

func (r *ReviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, models.WrapStorage(err, "SELECT", "reviews")
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.ProductID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, models.WrapStorage(err, "SELECT", "reviews")
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, models.WrapStorage(err, "SELECT", "reviews")
	}
	return reviews, nil
}

// ExistsByUserAndProduct reports whether the user already reviewed the
// product, used when single-review-per-product mode is configured.
func (r *ReviewRepository) ExistsByUserAndProduct(ctx context.Context, userID, productID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM reviews WHERE user_id = ? AND product_id = ? LIMIT 1",
		userID, productID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, models.WrapStorage(err, "SELECT", "reviews")
	}
	return true, nil
}
