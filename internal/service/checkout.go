package service

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/arafkarim/shopleaf-golang/internal/models"
	"github.com/arafkarim/shopleaf-golang/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// CheckoutService converts a user's cart into a durable order. The whole
// conversion runs in one serializable transaction: read the cart lines with
// their current prices, write the order and its item snapshots, clear the
// cart. Either all of it commits or none of it does, so a failed checkout
// leaves the cart intact and retry-safe.
type CheckoutService struct {
	db     *sql.DB
	users  *repository.UserRepository
	orders *repository.OrderRepository
}

func NewCheckoutService(db *sql.DB, users *repository.UserRepository, orders *repository.OrderRepository) *CheckoutService {
	return &CheckoutService{db: db, users: users, orders: orders}
}

type checkoutLine struct {
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
}

// Checkout places an order from the user's current cart.
//
// It is deliberately not idempotent: a successful call empties the cart, so
// a second call fails with ErrEmptyCart instead of producing a second order
// from the same lines. Product stock is not decremented here.
func (s *CheckoutService) Checkout(ctx context.Context, userID int64) (*models.Order, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	// Serializable isolation plus FOR UPDATE keeps two concurrent checkouts
	// by the same user from both reading a non-empty cart.
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, models.WrapStorage(err, "BEGIN", "")
	}
	defer tx.Rollback()

	query := `
		SELECT ci.product_id, ci.quantity, p.price
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = ?
		FOR UPDATE`
	rows, err := tx.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, models.WrapStorage(err, "SELECT", "cart_items")
	}

	var lines []checkoutLine
	for rows.Next() {
		var line checkoutLine
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.Price); err != nil {
			rows.Close()
			return nil, models.WrapStorage(err, "SELECT", "cart_items")
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, models.WrapStorage(err, "SELECT", "cart_items")
	}
	rows.Close()

	if len(lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	now := time.Now()
	reference := uuid.NewString()

	orderResult, err := tx.ExecContext(ctx,
		"INSERT INTO orders (reference, user_id, total, status, created_at) VALUES (?, ?, ?, ?, ?)",
		reference, userID, total, models.OrderStatusPaid, now)
	if err != nil {
		return nil, models.WrapStorage(err, "INSERT", "orders")
	}
	orderID, err := orderResult.LastInsertId()
	if err != nil {
		return nil, models.WrapStorage(err, "INSERT", "orders")
	}

	order := &models.Order{
		ID:        orderID,
		Reference: reference,
		UserID:    userID,
		Total:     total,
		Status:    models.OrderStatusPaid,
		CreatedAt: now,
		Items:     make([]models.OrderItem, 0, len(lines)),
	}

	for _, line := range lines {
		itemResult, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)",
			orderID, line.ProductID, line.Quantity, line.Price)
		if err != nil {
			return nil, models.WrapStorage(err, "INSERT", "order_items")
		}
		itemID, err := itemResult.LastInsertId()
		if err != nil {
			return nil, models.WrapStorage(err, "INSERT", "order_items")
		}
		order.Items = append(order.Items, models.OrderItem{
			ID:        itemID,
			OrderID:   orderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = ?", userID); err != nil {
		return nil, models.WrapStorage(err, "DELETE", "cart_items")
	}

	if err := tx.Commit(); err != nil {
		return nil, models.WrapStorage(err, "COMMIT", "")
	}

	logger.Info().
		Int64("userId", userID).
		Str("reference", reference).
		Str("total", total.String()).
		Int("items", len(order.Items)).
		Msg("checkout completed")

	return order, nil
}

// History returns the user's orders, items included.
func (s *CheckoutService) History(ctx context.Context, userID int64) ([]models.Order, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, userID)
}
