package routes

import (
	"net/http"

	"github.com/arafkarim/shopleaf-golang/internal/handlers"
	"github.com/arafkarim/shopleaf-golang/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware tells the browser the frontend origin is allowed to call
// this API, and answers preflight OPTIONS requests with 204.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:5173")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware())

	api := router.Group("/api")
	{
		// --- Ping Route (Public) ---
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		// --- Public Catalog Routes ---
		api.GET("/products", h.GetAllProducts)
		api.GET("/products/search", h.SearchProducts)
		api.GET("/products/filter", h.FilterProducts)
		api.GET("/products/:id", h.GetProduct)
		api.GET("/products/:id/reviews", h.GetProductReviews)
		api.GET("/categories", h.GetAllCategories)
		api.GET("/categories/:id", h.GetCategory)
		api.GET("/reviews", h.GetAllReviews)

		// --- Protected Routes (Login Required) ---
		auth := api.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.GET("/auth/me", h.Me)

			// --- Cart Routes ---
			auth.GET("/cart", h.GetCart)
			auth.POST("/cart/add", h.AddToCart)
			auth.PUT("/cart/update/:id", h.UpdateCartItem)
			auth.DELETE("/cart/remove/:id", h.RemoveCartItem)
			auth.DELETE("/cart/clear", h.ClearCart)

			// --- Order Routes ---
			auth.POST("/orders/checkout", h.Checkout)
			auth.GET("/orders/history", h.OrderHistory)
			auth.POST("/payment/process/:orderId", h.ProcessPayment)

			// --- Review Routes ---
			auth.POST("/reviews/add", h.AddReview)
			auth.PUT("/reviews/update/:id", h.UpdateReview)
			auth.DELETE("/reviews/delete/:id", h.DeleteReview)

			// --- Wishlist Routes ---
			auth.POST("/wishlist/add", h.AddToWishlist)
			auth.GET("/wishlist", h.GetWishlist)
			auth.DELETE("/wishlist/remove/:id", h.RemoveFromWishlist)
		}

		// --- Admin-Only Routes ---
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminMiddleware(h.Users))
		{
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)

			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)
		}
	}

	return router
}
