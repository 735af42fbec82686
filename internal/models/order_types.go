package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. The only legal transition is CREATED -> PAID.
const (
	OrderStatusCreated = "CREATED"
	OrderStatusPaid    = "PAID"
)

// Order is the model for the 'orders' table. Items is a one-directional
// ownership list; OrderItem carries no pointer back to its order.
type Order struct {
	ID        int64           `json:"id" db:"id"`
	Reference string          `json:"reference" db:"reference"`
	UserID    int64           `json:"userId" db:"user_id"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Status    string          `json:"status" db:"status"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`

	Items []OrderItem `json:"items" db:"-"`
}

// OrderItem is the model for the 'order_items' table. Price is the unit
// price snapshotted at checkout time; later catalog price changes never
// touch it.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"orderId" db:"order_id"`
	ProductID int64           `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
}
