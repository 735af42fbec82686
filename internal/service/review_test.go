package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/arafkarim/shopleaf-golang/internal/models"
	"github.com/arafkarim/shopleaf-golang/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	selectProductByID = `SELECT id, name, description, price, qty, image_url, avg_rating, category_id, created_at, updated_at FROM products WHERE id = ?`
	selectReviewByID  = `SELECT id, user_id, product_id, rating, comment, created_at FROM reviews WHERE id = ?`
	insertReview      = "INSERT INTO reviews (user_id, product_id, rating, comment, created_at) VALUES (?, ?, ?, ?, ?)"
	selectAvgRating   = "SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = ?"
	updateAvgRating   = "UPDATE products SET avg_rating = ? WHERE id = ?"
	deleteReview      = "DELETE FROM reviews WHERE id = ?"
	updateReview      = "UPDATE reviews SET rating = ?, comment = ? WHERE id = ?"
)

func newReviewService(t *testing.T, allowMultiple bool) (*ReviewService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewReviewService(db,
		repository.NewUserRepository(db),
		repository.NewProductRepository(db),
		repository.NewReviewRepository(db),
		allowMultiple)
	return svc, mock
}

func productRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "price", "qty", "image_url", "avg_rating", "category_id", "created_at", "updated_at"}).
		AddRow(id, "Mug", "A mug", "9.90", 5, nil, 0.0, nil, time.Now(), time.Now())
}

func reviewRow(id, userID, productID int64, rating int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "product_id", "rating", "comment", "created_at"}).
		AddRow(id, userID, productID, rating, "nice", time.Now())
}

func TestAddReviewRecomputesAverage(t *testing.T) {
	svc, mock := newReviewService(t, true)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByID)).WithArgs(int64(1)).WillReturnRows(userRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(selectProductByID)).WithArgs(int64(10)).WillReturnRows(productRow(10))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertReview)).
		WithArgs(int64(1), int64(10), 4, "great", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))
	// Reviews [4,5,3] now exist on the product: the mean is exactly 4.0.
	mock.ExpectQuery(regexp.QuoteMeta(selectAvgRating)).WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(4.0))
	mock.ExpectExec(regexp.QuoteMeta(updateAvgRating)).WithArgs(4.0, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	review, err := svc.Add(context.Background(), 1, 10, 4, "great")
	require.NoError(t, err)
	assert.Equal(t, int64(5), review.ID)
	assert.Equal(t, 4, review.Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddReviewRejectsRatingOutOfRange(t *testing.T) {
	svc, mock := newReviewService(t, true)

	for _, rating := range []int{0, -1, 6} {
		review, err := svc.Add(context.Background(), 1, 10, rating, "")
		assert.ErrorIs(t, err, models.ErrInvalidRating)
		assert.Nil(t, review)
	}

	// Validation happens before any query runs.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddReviewSingleReviewMode(t *testing.T) {
	svc, mock := newReviewService(t, false)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByID)).WithArgs(int64(1)).WillReturnRows(userRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(selectProductByID)).WithArgs(int64(10)).WillReturnRows(productRow(10))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM reviews WHERE user_id = ? AND product_id = ? LIMIT 1")).
		WithArgs(int64(1), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	review, err := svc.Add(context.Background(), 1, 10, 4, "")
	assert.ErrorIs(t, err, models.ErrDuplicate)
	assert.Nil(t, review)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReviewRecomputesAverage(t *testing.T) {
	svc, mock := newReviewService(t, true)

	mock.ExpectQuery(regexp.QuoteMeta(selectReviewByID)).WithArgs(int64(5)).
		WillReturnRows(reviewRow(5, 1, 10, 3))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteReview)).WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Ratings [4,5] remain after dropping the 3: the mean moves to 4.5.
	mock.ExpectQuery(regexp.QuoteMeta(selectAvgRating)).WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(4.5))
	mock.ExpectExec(regexp.QuoteMeta(updateAvgRating)).WithArgs(4.5, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteLastReviewResetsAverageToZero(t *testing.T) {
	svc, mock := newReviewService(t, true)

	mock.ExpectQuery(regexp.QuoteMeta(selectReviewByID)).WithArgs(int64(5)).
		WillReturnRows(reviewRow(5, 1, 10, 4))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteReview)).WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectAvgRating)).WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(0.0))
	mock.ExpectExec(regexp.QuoteMeta(updateAvgRating)).WithArgs(0.0, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Delete(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReviewByNonOwnerForbidden(t *testing.T) {
	svc, mock := newReviewService(t, true)

	mock.ExpectQuery(regexp.QuoteMeta(selectReviewByID)).WithArgs(int64(5)).
		WillReturnRows(reviewRow(5, 2, 10, 4))

	rating := 1
	review, err := svc.Update(context.Background(), 1, 5, ReviewUpdate{Rating: &rating})
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Nil(t, review)

	// The stored review was never touched.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReviewPartialFields(t *testing.T) {
	svc, mock := newReviewService(t, true)

	mock.ExpectQuery(regexp.QuoteMeta(selectReviewByID)).WithArgs(int64(5)).
		WillReturnRows(reviewRow(5, 1, 10, 4))
	mock.ExpectBegin()
	// Only the rating was supplied; the stored comment is kept.
	mock.ExpectExec(regexp.QuoteMeta(updateReview)).WithArgs(2, "nice", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectAvgRating)).WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(2.0))
	mock.ExpectExec(regexp.QuoteMeta(updateAvgRating)).WithArgs(2.0, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rating := 2
	review, err := svc.Update(context.Background(), 1, 5, ReviewUpdate{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 2, review.Rating)
	assert.Equal(t, "nice", review.Comment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReviewByNonOwnerForbidden(t *testing.T) {
	svc, mock := newReviewService(t, true)

	mock.ExpectQuery(regexp.QuoteMeta(selectReviewByID)).WithArgs(int64(5)).
		WillReturnRows(reviewRow(5, 2, 10, 4))

	err := svc.Delete(context.Background(), 1, 5)
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}
