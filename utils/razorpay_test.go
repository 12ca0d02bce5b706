package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	const secret = "test_secret"
	sig := sign("order_abc", "pay_xyz", secret)

	assert.True(t, VerifyRazorpaySignature("order_abc", "pay_xyz", sig, secret))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", sig, "other_secret"))
	assert.False(t, VerifyRazorpaySignature("order_other", "pay_xyz", sig, secret))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", "tampered", secret))
	assert.False(t, VerifyRazorpaySignature("", "pay_xyz", sig, secret))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", "", secret))
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(100000), ToMinorUnits(1000))
	assert.Equal(t, int64(59999), ToMinorUnits(599.99))
	// float arithmetic must not truncate 0.1+0.2-style amounts
	assert.Equal(t, int64(30), ToMinorUnits(0.1+0.2))
	assert.Equal(t, int64(1), ToMinorUnits(0.005))
	assert.Equal(t, int64(0), ToMinorUnits(0))
}

func TestNewReceipt(t *testing.T) {
	a := NewReceipt()
	b := NewReceipt()

	assert.True(t, strings.HasPrefix(a, "rcpt_"))
	assert.NotEqual(t, a, b)
	assert.Greater(t, len(a), len("rcpt_"))
}
