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
	upsertCartItem = `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			quantity = quantity + VALUES(quantity),
			updated_at = VALUES(updated_at)`
	selectCartItem = `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM cart_items WHERE id = ?`
	updateCartQty  = `UPDATE cart_items SET quantity = ?, updated_at = ? WHERE id = ?`
	deleteCartItem = "DELETE FROM cart_items WHERE id = ?"
)

func newCartService(t *testing.T) (*CartService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
	return svc, mock
}

func cartItemRow(id, userID, productID int64, qty int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity", "created_at", "updated_at"}).
		AddRow(id, userID, productID, qty, now, now)
}

func TestCartAddAccumulatesExistingLine(t *testing.T) {
	svc, mock := newCartService(t)

	// Same product added twice: the upsert accumulates rather than
	// inserting a second row, so both calls issue the same statement.
	for _, qty := range []int{2, 3} {
		mock.ExpectQuery(regexp.QuoteMeta(selectProductByID)).WithArgs(int64(10)).WillReturnRows(productRow(10))
		mock.ExpectExec(regexp.QuoteMeta(upsertCartItem)).
			WithArgs(int64(1), int64(10), qty, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}

	require.NoError(t, svc.Add(context.Background(), 1, 10, 2))
	require.NoError(t, svc.Add(context.Background(), 1, 10, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	svc, mock := newCartService(t)

	for _, qty := range []int{0, -1} {
		err := svc.Add(context.Background(), 1, 10, qty)
		assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	}

	// Rejected before any query runs.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartAddUnknownProduct(t *testing.T) {
	svc, mock := newCartService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectProductByID)).WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "qty", "image_url", "avg_rating", "category_id", "created_at", "updated_at"}))

	err := svc.Add(context.Background(), 1, 99, 1)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartUpdateQuantityRejectsNonPositive(t *testing.T) {
	svc, mock := newCartService(t)

	for _, qty := range []int{0, -1} {
		err := svc.UpdateQuantity(context.Background(), 1, 5, qty)
		assert.ErrorIs(t, err, models.ErrInvalidQuantity)
	}

	// The stored quantity was never touched.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartUpdateQuantityForeignItemForbidden(t *testing.T) {
	svc, mock := newCartService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectCartItem)).WithArgs(int64(5)).
		WillReturnRows(cartItemRow(5, 2, 10, 1))

	err := svc.UpdateQuantity(context.Background(), 1, 5, 3)
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartUpdateQuantity(t *testing.T) {
	svc, mock := newCartService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectCartItem)).WithArgs(int64(5)).
		WillReturnRows(cartItemRow(5, 1, 10, 1))
	mock.ExpectExec(regexp.QuoteMeta(updateCartQty)).
		WithArgs(3, sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.UpdateQuantity(context.Background(), 1, 5, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRemoveForeignItemForbidden(t *testing.T) {
	svc, mock := newCartService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectCartItem)).WithArgs(int64(5)).
		WillReturnRows(cartItemRow(5, 2, 10, 1))

	err := svc.Remove(context.Background(), 1, 5)
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRemoveUnknownItem(t *testing.T) {
	svc, mock := newCartService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectCartItem)).WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "product_id", "quantity", "created_at", "updated_at"}))

	err := svc.Remove(context.Background(), 1, 404)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRemove(t *testing.T) {
	svc, mock := newCartService(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectCartItem)).WithArgs(int64(5)).
		WillReturnRows(cartItemRow(5, 1, 10, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteCartItem)).WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Remove(context.Background(), 1, 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartClearEmptyCartSucceeds(t *testing.T) {
	svc, mock := newCartService(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE user_id = ?")).WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, svc.Clear(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartListComputesLineTotals(t *testing.T) {
	svc, mock := newCartService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT ci.id, ci.product_id, p.name, p.price, ci.quantity
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = ?
		ORDER BY ci.id`)).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "name", "price", "quantity"}).
			AddRow(int64(5), int64(10), "Mug", "10.00", 2))

	lines, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "20.00", lines[0].LineTotal.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
