package main

import (
	"log"
	"os"

	"github.com/arafkarim/shopleaf-golang/internal/database"
	"github.com/arafkarim/shopleaf-golang/internal/handlers"
	"github.com/arafkarim/shopleaf-golang/internal/repository"
	"github.com/arafkarim/shopleaf-golang/internal/routes"
	"github.com/arafkarim/shopleaf-golang/internal/service"
	"github.com/arafkarim/shopleaf-golang/migrations"
	"github.com/joho/godotenv"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migrations.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	// 2. --- Repositories ---
	users := repository.NewUserRepository(db)
	products := repository.NewProductRepository(db)
	categories := repository.NewCategoryRepository(db)
	carts := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)
	reviews := repository.NewReviewRepository(db)
	wishlist := repository.NewWishlistRepository(db)

	// 3. --- Services ---
	// Multiple reviews by one user on one product are allowed unless
	// explicitly switched off.
	allowMultipleReviews := os.Getenv("REVIEWS_ALLOW_MULTIPLE") != "false"

	app := &handlers.Handlers{
		Users:      users,
		Products:   products,
		Categories: categories,
		Orders:     orders,
		Reviews:    reviews,
		Wishlist:   wishlist,

		Cart:        service.NewCartService(carts, products),
		CheckoutSvc: service.NewCheckoutService(db, users, orders),
		Review:      service.NewReviewService(db, users, products, reviews, allowMultipleReviews),
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting Shopleaf API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
