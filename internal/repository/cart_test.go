package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upsertCartItem = `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			quantity = quantity + VALUES(quantity),
			updated_at = VALUES(updated_at)`

// Repeated adds for the same (user, product) go through one accumulating
// statement; the ON DUPLICATE KEY UPDATE clause folds the second insert
// into the existing row via the uq_cart_user_product key, so two adds can
// never produce two lines.
func TestCartUpsertUsesAccumulatingStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := NewCartRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(upsertCartItem)).
		WithArgs(int64(1), int64(10), 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertCartItem)).
		WithArgs(int64(1), int64(10), 3, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 2))

	require.NoError(t, repo.Upsert(context.Background(), 1, 10, 2))
	require.NoError(t, repo.Upsert(context.Background(), 1, 10, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
