package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"os"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway wraps the Razorpay SDK for order creation and server-side
// callback signature verification.
type Gateway struct {
	client    *razorpay.Client
	keySecret string
}

// NewGateway builds a Gateway from RAZORPAY_KEY_ID and
// RAZORPAY_KEY_SECRET.
func NewGateway() *Gateway {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	return &Gateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

// GatewayOrder is the subset of the remote order descriptor the
// checkout page needs.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor units (paise)
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder creates a remote gateway order. The amount is supplied in
// major currency units and converted to the gateway's minor-unit
// representation here, at a single boundary.
func (g *Gateway) CreateOrder(amount float64, currency, receipt string) (*GatewayOrder, error) {
	if currency == "" {
		currency = "INR"
	}
	if receipt == "" {
		receipt = NewReceipt()
	}

	data := map[string]interface{}{
		"amount":   ToMinorUnits(amount),
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	order := &GatewayOrder{
		Amount:   ToMinorUnits(amount),
		Currency: currency,
		Receipt:  receipt,
	}
	if id, ok := body["id"].(string); ok {
		order.ID = id
	}
	return order, nil
}

// VerifySignature checks the checkout callback signature: HMAC-SHA256
// of "<order_id>|<payment_id>" keyed with the gateway secret, hex
// encoded. Constant-time comparison.
func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifyRazorpaySignature(orderID, paymentID, signature, g.keySecret)
}

// VerifyRazorpaySignature is the bare verification primitive, split out
// so it can be exercised without a configured client.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ToMinorUnits converts a major-unit amount to the gateway's integer
// minor units (rupees to paise), rounding half away from zero.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// NewReceipt returns a collision-resistant receipt identifier.
func NewReceipt() string {
	return "rcpt_" + uuid.NewString()
}
