package routes

import (
	"net/http"

	"tiara-mobile-zone/controllers"
	"tiara-mobile-zone/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	authController *controllers.AuthController,
	stockController *controllers.StockController,
	orderController *controllers.OrderController,
	paymentController *controllers.PaymentController,
	healthController *controllers.HealthController,
) {
	api := router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/health", healthController.Health).Methods("GET")
	api.HandleFunc("/auth/signup", authController.Signup).Methods("POST")
	api.HandleFunc("/auth/login", authController.Login).Methods("POST")
	api.HandleFunc("/admin/login", authController.AdminLogin).Methods("POST")

	// Catalog reads are public; the storefront browses without a session
	api.HandleFunc("/stock", stockController.GetStock).Methods("GET")
	api.HandleFunc("/stock/{id}", stockController.GetStockItem).Methods("GET")

	// Payment gateway adapter (invoked from the checkout page)
	api.HandleFunc("/razorpay/order", paymentController.CreateGatewayOrder).Methods("POST")
	api.HandleFunc("/razorpay/verify", paymentController.VerifyPayment).Methods("POST")

	// Authenticated routes
	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(middleware.AuthMiddleware)
	orders.HandleFunc("", orderController.CreateOrder).Methods("POST")
	orders.HandleFunc("", orderController.GetOrders).Methods("GET")
	orders.HandleFunc("/{id}", orderController.GetOrder).Methods("GET")

	// Admin routes
	adminStock := api.PathPrefix("/stock").Subrouter()
	adminStock.Use(middleware.AuthMiddleware)
	adminStock.Use(middleware.AdminMiddleware)
	adminStock.HandleFunc("", stockController.CreateStockItem).Methods("POST")
	adminStock.HandleFunc("/{id}", stockController.UpdateStockItem).Methods("PUT")
	adminStock.HandleFunc("/{id}", stockController.DeleteStockItem).Methods("DELETE")

	adminOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}
	api.Handle("/orders/{id}/status", adminOnly(orderController.UpdateOrderStatus)).Methods("PATCH")
	api.Handle("/payments/{id}/status", adminOnly(orderController.UpdatePaymentStatus)).Methods("PATCH")
}
