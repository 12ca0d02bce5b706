package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tiara-mobile-zone/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, secret string) *utils.Gateway {
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", secret)
	return utils.NewGateway()
}

func razorpaySign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPayment(t *testing.T) {
	const secret = "handler-test-secret"
	pc := NewPaymentController(newTestGateway(t, secret))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/razorpay/verify", strings.NewReader(body))
		rec := httptest.NewRecorder()
		pc.VerifyPayment(rec, req)
		return rec
	}

	t.Run("valid signature", func(t *testing.T) {
		sig := razorpaySign("order_abc", "pay_xyz", secret)
		body, err := json.Marshal(map[string]string{
			"razorpay_order_id":   "order_abc",
			"razorpay_payment_id": "pay_xyz",
			"razorpay_signature":  sig,
		})
		require.NoError(t, err)

		rec := post(string(body))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"valid":true}`, rec.Body.String())
	})

	t.Run("tampered signature", func(t *testing.T) {
		rec := post(`{"razorpay_order_id":"order_abc","razorpay_payment_id":"pay_xyz","razorpay_signature":"deadbeef"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := post(`{"razorpay_order_id":"order_abc"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		rec := post(`{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreateGatewayOrderValidation(t *testing.T) {
	pc := NewPaymentController(newTestGateway(t, "secret"))

	// Zero and negative amounts must be rejected before any remote call.
	for _, body := range []string{
		`{"amount":0}`,
		`{"amount":-10}`,
		`{}`,
	} {
		req := httptest.NewRequest("POST", "/api/razorpay/order", strings.NewReader(body))
		rec := httptest.NewRecorder()
		pc.CreateGatewayOrder(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}
