package service

import (
	"context"

	"github.com/arafkarim/shopleaf-golang/internal/models"
	"github.com/arafkarim/shopleaf-golang/internal/repository"
)

// CartService applies quantity validation and ownership checks in front of
// the cart repository. Validation happens before any mutation, so a
// rejected call leaves the cart untouched.
type CartService struct {
	cart     *repository.CartRepository
	products *repository.ProductRepository
}

func NewCartService(cart *repository.CartRepository, products *repository.ProductRepository) *CartService {
	return &CartService{cart: cart, products: products}
}

// Add puts qty units of the product into the user's cart, accumulating onto
// an existing line for the same product.
func (s *CartService) Add(ctx context.Context, userID, productID int64, qty int) error {
	if qty < 1 {
		return models.ErrInvalidQuantity
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return err
	}
	return s.cart.Upsert(ctx, userID, productID, qty)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID int64, qty int) error {
	if qty < 1 {
		return models.ErrInvalidQuantity
	}
	item, err := s.cart.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return models.ErrForbidden
	}
	return s.cart.UpdateQuantity(ctx, itemID, qty)
}

func (s *CartService) Remove(ctx context.Context, userID, itemID int64) error {
	item, err := s.cart.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return models.ErrForbidden
	}
	return s.cart.Delete(ctx, itemID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.cart.Clear(ctx, userID)
}

func (s *CartService) List(ctx context.Context, userID int64) ([]models.CartLine, error) {
	return s.cart.Lines(ctx, userID)
}
