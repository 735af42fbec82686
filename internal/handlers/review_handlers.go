package handlers

import (
	"net/http"
	"strconv"

	"github.com/arafkarim/shopleaf-golang/internal/service"
	"github.com/gin-gonic/gin"
)

//
// --- Review Handlers ---
//

// AddReviewInput defines the JSON for POST /api/reviews/add.
type AddReviewInput struct {
	ProductID int64  `json:"productId" binding:"required"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *Handlers) AddReview(c *gin.Context) {
	var input AddReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.Review.Add(c.Request.Context(), currentUserID(c), input.ProductID, input.Rating, input.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// UpdateReviewInput carries a partial update; omitted fields keep their
// stored value.
type UpdateReviewInput struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// UpdateReview is the handler for PUT /api/reviews/update/:id. Only the
// review's author may edit it.
func (h *Handlers) UpdateReview(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	var input UpdateReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.Review.Update(c.Request.Context(), currentUserID(c), reviewID, service.ReviewUpdate{
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// DeleteReview is the handler for DELETE /api/reviews/delete/:id. Only the
// review's author may delete it.
func (h *Handlers) DeleteReview(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	if err := h.Review.Delete(c.Request.Context(), currentUserID(c), reviewID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// GetAllReviews is the handler for GET /api/reviews.
func (h *Handlers) GetAllReviews(c *gin.Context) {
	reviews, err := h.Reviews.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// GetProductReviews is the handler for GET /api/products/:id/reviews.
func (h *Handlers) GetProductReviews(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if _, err := h.Products.Get(c.Request.Context(), productID); err != nil {
		respondError(c, err)
		return
	}

	reviews, err := h.Reviews.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
