package handlers

import (
	"net/http"
	"strconv"

	"github.com/arafkarim/shopleaf-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Order Handlers ---
//

// Checkout is the handler for POST /api/orders/checkout. It converts the
// authenticated user's cart into a PAID order in one atomic transaction and
// returns the order with its item snapshots.
func (h *Handlers) Checkout(c *gin.Context) {
	order, err := h.CheckoutSvc.Checkout(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// OrderHistory is the handler for GET /api/orders/history.
func (h *Handlers) OrderHistory(c *gin.Context) {
	orders, err := h.CheckoutSvc.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ProcessPayment is the handler for POST /api/payment/process/:orderId.
// Payments in this system are a status flip, not a settlement protocol, and
// the flip is idempotent: paying an already-paid order returns 200.
func (h *Handlers) ProcessPayment(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := h.Orders.Get(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.UserID != currentUserID(c) {
		respondError(c, models.ErrForbidden)
		return
	}

	alreadyPaid, err := h.Orders.MarkPaid(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	if alreadyPaid {
		c.JSON(http.StatusOK, gin.H{"message": "Order is already paid"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment successful"})
}
