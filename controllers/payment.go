package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"tiara-mobile-zone/utils"
)

// PaymentController exposes the payment gateway adapter: remote order
// creation for the hosted checkout, and callback signature verification.
type PaymentController struct {
	Gateway *utils.Gateway
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(gateway *utils.Gateway) *PaymentController {
	return &PaymentController{Gateway: gateway}
}

type gatewayOrderRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency"`
	Receipt  string  `json:"receipt"`
}

type verifyRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// CreateGatewayOrder creates a remote order with the payment gateway.
// The amount arrives in major units and is validated server-side before
// the minor-unit conversion at the adapter boundary.
func (pc *PaymentController) CreateGatewayOrder(w http.ResponseWriter, r *http.Request) {
	var req gatewayOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := utils.Validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := pc.Gateway.CreateOrder(req.Amount, req.Currency, req.Receipt)
	if err != nil {
		log.Printf("Razorpay order creation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Razorpay order creation failed")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// VerifyPayment verifies the hosted checkout callback signature. The
// client cannot be trusted with this check; an unverified callback is
// rejected before any order referencing it can be persisted.
func (pc *PaymentController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := utils.Validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !pc.Gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		writeError(w, http.StatusBadRequest, "Payment signature verification failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}
