package models

import (
	"strings"
	"time"
)

// OrderItem is a denormalized snapshot of a catalog product at purchase
// time. Later catalog edits never touch historical orders.
type OrderItem struct {
	ProductID int    `bson:"product_id" json:"productId"`
	Name      string `bson:"name" json:"name"`
	Price     int    `bson:"price" json:"price"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

// Address is a shipping address owned by exactly one order.
type Address struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipcode" json:"zipCode"`
	Country string `bson:"country" json:"country"`
}

// Payment is the payment record owned by exactly one order. It carries
// its own store-assigned id so its status can be updated independently.
type Payment struct {
	ID                int     `bson:"id" json:"id"`
	Amount            float64 `bson:"amount" json:"amount"`
	Method            string  `bson:"method" json:"method"` // e.g. "card", "razorpay", "cod"
	CardLast4         string  `bson:"card_last4,omitempty" json:"cardLast4,omitempty"`
	Status            string  `bson:"status" json:"status"` // "pending", "completed", "failed"
	RazorpayPaymentID string  `bson:"razorpay_payment_id,omitempty" json:"razorpayPaymentId,omitempty"`
	RazorpayOrderID   string  `bson:"razorpay_order_id,omitempty" json:"razorpayOrderId,omitempty"`
	RazorpaySignature string  `bson:"razorpay_signature,omitempty" json:"razorpaySignature,omitempty"`
}

// Order is the aggregate root of the ledger. Address and Payment are
// embedded subdocuments, so the whole aggregate is written in a single
// atomic insert and always read back fully composed.
type Order struct {
	ID        int         `bson:"_id" json:"id"`
	UserID    int         `bson:"user_id" json:"userId"`
	Items     []OrderItem `bson:"items" json:"items"`
	Total     float64     `bson:"total" json:"total"`
	Status    string      `bson:"status" json:"status"` // e.g. "pending", "shipped"
	CreatedAt time.Time   `bson:"created_at" json:"createdAt"`
	Address   Address     `bson:"address" json:"address"`
	Payment   Payment     `bson:"payment" json:"payment"`
}

// AddressInput is the checkout address payload.
type AddressInput struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country"`
}

// ToAddress applies the country default.
func (in *AddressInput) ToAddress() Address {
	country := in.Country
	if country == "" {
		country = "India"
	}
	return Address{
		Street:  in.Street,
		City:    in.City,
		State:   in.State,
		ZipCode: in.ZipCode,
		Country: country,
	}
}

// PaymentInput is the checkout payment payload. The razorpay fields are
// only present when the hosted gateway checkout completed client-side.
type PaymentInput struct {
	Method            string `json:"method" validate:"required"`
	CardNumber        string `json:"cardNumber"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

// CreateOrderRequest is the POST /api/orders body.
type CreateOrderRequest struct {
	UserID  int          `json:"userId" validate:"required"`
	Items   []OrderItem  `json:"items" validate:"required,min=1"`
	Total   float64      `json:"total" validate:"gt=0"`
	Address AddressInput `json:"address" validate:"required"`
	Payment PaymentInput `json:"payment" validate:"required"`
}

// CardLast4 returns the last four digits of a card number, ignoring
// spaces and dashes. Shorter input is returned as-is; full card numbers
// are never stored.
func CardLast4(cardNumber string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, cardNumber)
	if len(cleaned) <= 4 {
		return cleaned
	}
	return cleaned[len(cleaned)-4:]
}
