package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table.
// AvgRating is derived from the reviews table; it is never accepted as
// client input on the review path, only recomputed by the review service.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Qty         int             `json:"qty" db:"qty"`
	ImageURL    *string         `json:"imageUrl,omitempty" db:"image_url"`
	AvgRating   float64         `json:"avgRating" db:"avg_rating"`
	CategoryID  *int64          `json:"categoryId,omitempty" db:"category_id"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`

	// Join field, populated manually when listing with categories.
	CategoryName string `json:"categoryName,omitempty" db:"-"`
}

// ProductFilter carries the optional /products/filter query parameters.
type ProductFilter struct {
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	MinRating  *float64
}
