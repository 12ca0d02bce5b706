// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tiara-mobile-zone/cache"
	"tiara-mobile-zone/controllers"
	"tiara-mobile-zone/routes"
	"tiara-mobile-zone/utils"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))
	if len(utils.JwtKey) == 0 {
		log.Fatal("JWT_SECRET is not set")
	}

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Println("Error disconnecting from MongoDB:", err)
		}
	}()

	db := client.Database(utils.DatabaseName)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := utils.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatal("Failed to create indexes: ", err)
	}
	if err := utils.SeedAdminUser(ctx, db); err != nil {
		cancel()
		log.Fatal("Failed to seed admin user: ", err)
	}
	cancel()

	// Shared services
	gateway := utils.NewGateway()
	emailService := utils.NewEmailService()
	catalogCache := cache.New(5 * time.Minute)

	// Initialize controllers
	authController := controllers.NewAuthController(client)
	stockController := controllers.NewStockController(client, catalogCache)
	orderController := controllers.NewOrderController(client, gateway, emailService)
	paymentController := controllers.NewPaymentController(gateway)
	healthController := controllers.NewHealthController(client)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, authController, stockController, orderController, paymentController, healthController)

	// CORS and request logging around the whole router
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	handler := handlers.CombinedLoggingHandler(os.Stdout, cors(router))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server is running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Server shutdown failed:", err)
	}
	log.Println("Server stopped")
}
