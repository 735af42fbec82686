package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/arafkarim/shopleaf-golang/internal/models"
	"github.com/arafkarim/shopleaf-golang/internal/repository"
)

// ReviewService owns review writes and keeps products.avg_rating equal to
// the mean of the product's live reviews. Every mutation recomputes the
// aggregate inside the same transaction as the review write.
type ReviewService struct {
	db       *sql.DB
	users    *repository.UserRepository
	products *repository.ProductRepository
	reviews  *repository.ReviewRepository

	// allowMultiple permits several reviews by one user on one product.
	// Defaults to true, matching the store's historical behavior.
	allowMultiple bool
}

func NewReviewService(db *sql.DB, users *repository.UserRepository, products *repository.ProductRepository, reviews *repository.ReviewRepository, allowMultiple bool) *ReviewService {
	return &ReviewService{
		db:            db,
		users:         users,
		products:      products,
		reviews:       reviews,
		allowMultiple: allowMultiple,
	}
}

// ReviewUpdate carries a partial update; nil fields keep their prior value.
type ReviewUpdate struct {
	Rating  *int
	Comment *string
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (s *ReviewService) Add(ctx context.Context, userID, productID int64, rating int, comment string) (*models.Review, error) {
	if !validRating(rating) {
		return nil, models.ErrInvalidRating
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}
	if !s.allowMultiple {
		exists, err := s.reviews.ExistsByUserAndProduct(ctx, userID, productID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, models.ErrDuplicate
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, models.WrapStorage(err, "BEGIN", "")
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.ExecContext(ctx,
		"INSERT INTO reviews (user_id, product_id, rating, comment, created_at) VALUES (?, ?, ?, ?, ?)",
		userID, productID, rating, comment, now)
	if err != nil {
		return nil, models.WrapStorage(err, "INSERT", "reviews")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, models.WrapStorage(err, "INSERT", "reviews")
	}

	if err := recomputeAvgRating(ctx, tx, productID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, models.WrapStorage(err, "COMMIT", "")
	}

	logger.Info().
		Int64("userId", userID).
		Int64("productId", productID).
		Int("rating", rating).
		Msg("review added, rating recomputed")

	return &models.Review{
		ID:        id,
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	}, nil
}

// Update overwrites only the supplied fields, and only for the review's
// author. A blank comment is treated as not supplied.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID int64, upd ReviewUpdate) (*models.Review, error) {
	existing, err := s.reviews.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, models.ErrForbidden
	}

	rating := existing.Rating
	if upd.Rating != nil {
		if !validRating(*upd.Rating) {
			return nil, models.ErrInvalidRating
		}
		rating = *upd.Rating
	}
	comment := existing.Comment
	if upd.Comment != nil && *upd.Comment != "" {
		comment = *upd.Comment
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, models.WrapStorage(err, "BEGIN", "")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE reviews SET rating = ?, comment = ? WHERE id = ?",
		rating, comment, reviewID); err != nil {
		return nil, models.WrapStorage(err, "UPDATE", "reviews")
	}
	if err := recomputeAvgRating(ctx, tx, existing.ProductID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, models.WrapStorage(err, "COMMIT", "")
	}

	logger.Info().
		Int64("reviewId", reviewID).
		Int64("productId", existing.ProductID).
		Int("rating", rating).
		Msg("review updated, rating recomputed")

	existing.Rating = rating
	existing.Comment = comment
	return existing, nil
}

// Delete removes the author's review and recomputes the product average
// over the remaining reviews (zero when none are left).
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID int64) error {
	existing, err := s.reviews.Get(ctx, reviewID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return models.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.WrapStorage(err, "BEGIN", "")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", reviewID); err != nil {
		return models.WrapStorage(err, "DELETE", "reviews")
	}
	if err := recomputeAvgRating(ctx, tx, existing.ProductID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return models.WrapStorage(err, "COMMIT", "")
	}

	logger.Info().
		Int64("reviewId", reviewID).
		Int64("productId", existing.ProductID).
		Msg("review deleted, rating recomputed")

	return nil
}

// recomputeAvgRating rescans every review for the product and writes the
// mean back onto the product row.
func recomputeAvgRating(ctx context.Context, tx *sql.Tx, productID int64) error {
	var avg float64
	err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = ?",
		productID).Scan(&avg)
	if err != nil {
		return models.WrapStorage(err, "SELECT", "reviews")
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE products SET avg_rating = ? WHERE id = ?", avg, productID); err != nil {
		return models.WrapStorage(err, "UPDATE", "products")
	}
	return nil
}
