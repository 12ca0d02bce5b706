package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tiara-mobile-zone/middleware"
	"tiara-mobile-zone/models"
	"tiara-mobile-zone/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderController handles the order ledger: one atomic write per order
// aggregate, lookups by id or owning user, and status transitions.
type OrderController struct {
	Collection     *mongo.Collection
	UserCollection *mongo.Collection
	DB             *mongo.Database
	Gateway        *utils.Gateway
	EmailService   *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, gateway *utils.Gateway, emailService *utils.EmailService) *OrderController {
	db := client.Database(utils.DatabaseName)
	return &OrderController{
		Collection:     db.Collection("orders"),
		UserCollection: db.Collection("users"),
		DB:             db,
		Gateway:        gateway,
		EmailService:   emailService,
	}
}

// CreateOrder creates an order with its owned address and payment in a
// single document insert. When the payment method is the gateway, the
// client callback signature must verify before anything is persisted.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := utils.Validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if claims.Role != utils.RoleAdmin && claims.UserID != req.UserID {
		writeError(w, http.StatusForbidden, "Token does not match userId")
		return
	}

	if strings.EqualFold(req.Payment.Method, "razorpay") {
		if !oc.Gateway.VerifySignature(req.Payment.RazorpayOrderID, req.Payment.RazorpayPaymentID, req.Payment.RazorpaySignature) {
			writeError(w, http.StatusBadRequest, "Payment signature verification failed")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID, err := utils.NextSequence(ctx, oc.DB, "orders")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error creating order")
		return
	}
	paymentID, err := utils.NextSequence(ctx, oc.DB, "payments")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error creating order")
		return
	}

	order := models.Order{
		ID:        orderID,
		UserID:    req.UserID, // weak reference, not validated against users
		Items:     req.Items,
		Total:     req.Total,
		Status:    "pending",
		CreatedAt: time.Now().UTC(),
		Address:   req.Address.ToAddress(),
		Payment: models.Payment{
			ID:                paymentID,
			Amount:            req.Total,
			Method:            req.Payment.Method,
			CardLast4:         models.CardLast4(req.Payment.CardNumber),
			Status:            "pending",
			RazorpayPaymentID: req.Payment.RazorpayPaymentID,
			RazorpayOrderID:   req.Payment.RazorpayOrderID,
			RazorpaySignature: req.Payment.RazorpaySignature,
		},
	}

	if _, err := oc.Collection.InsertOne(ctx, order); err != nil {
		writeError(w, http.StatusInternalServerError, "Error creating order")
		return
	}

	go oc.sendConfirmation(order)

	writeJSON(w, http.StatusCreated, order)
}

func (oc *OrderController) sendConfirmation(order models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := oc.UserCollection.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user); err != nil {
		return // weak userId reference may not resolve to a user
	}
	if err := oc.EmailService.SendOrderConfirmationEmail(user.Email, order); err != nil {
		log.Printf("Failed to send confirmation email to %s: %v", user.Email, err)
	}
}

// GetOrders retrieves all orders for a user, newest first
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userIDParam := r.URL.Query().Get("userId")
	if userIDParam == "" {
		writeError(w, http.StatusBadRequest, "Missing userId parameter")
		return
	}
	userID, err := strconv.Atoi(userIDParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid userId parameter")
		return
	}
	if claims.Role != utils.RoleAdmin && claims.UserID != userID {
		writeError(w, http.StatusForbidden, "Token does not match userId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := oc.Collection.Find(
		ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		writeError(w, http.StatusInternalServerError, "Error reading orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetOrder retrieves a single order with its address and payment
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = oc.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error fetching order")
		return
	}

	if claims.Role != utils.RoleAdmin && claims.UserID != order.UserID {
		writeError(w, http.StatusForbidden, "Token does not match order owner")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus updates an order's status (Admin only). The write
// is idempotent: repeating the same status is a no-op beyond the write.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := utils.Validate.Struct(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = oc.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": body.Status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating order status")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// UpdatePaymentStatus updates a payment's status by payment id (Admin
// only). The payment lives embedded in its owning order.
func (oc *OrderController) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}

	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := utils.Validate.Struct(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = oc.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"payment.id": id},
		bson.M{"$set": bson.M{"payment.status": body.Status}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err == mongo.ErrNoDocuments {
		writeError(w, http.StatusNotFound, "Payment not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating payment status")
		return
	}

	writeJSON(w, http.StatusOK, order.Payment)
}
