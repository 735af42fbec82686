package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/arafkarim/shopleaf-golang/internal/models"
	"github.com/arafkarim/shopleaf-golang/internal/repository"
	"github.com/arafkarim/shopleaf-golang/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Users      *repository.UserRepository
	Products   *repository.ProductRepository
	Categories *repository.CategoryRepository
	Orders     *repository.OrderRepository
	Reviews    *repository.ReviewRepository
	Wishlist   *repository.WishlistRepository

	Cart        *service.CartService
	CheckoutSvc *service.CheckoutService
	Review      *service.ReviewService
}

// currentUserID reads the authenticated principal set by AuthMiddleware.
func currentUserID(c *gin.Context) int64 {
	userIDRaw, _ := c.Get("userID")
	return userIDRaw.(int64)
}

// respondError maps the domain error taxonomy onto HTTP status codes.
// Storage failures are logged server-side and surfaced as a plain 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrDuplicate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
