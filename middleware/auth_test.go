package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tiara-mobile-zone/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	utils.JwtKey = []byte("middleware-test-key")

	var gotClaims *utils.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/orders?userId=1", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/orders?userId=1", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/orders?userId=1", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		token, err := utils.GenerateJWT(7, "user@example.com", utils.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/orders?userId=7", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotClaims)
		assert.Equal(t, 7, gotClaims.UserID)
		assert.Equal(t, utils.RoleUser, gotClaims.Role)
	})
}

func TestAdminMiddleware(t *testing.T) {
	utils.JwtKey = []byte("middleware-test-key")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(AdminMiddleware(next))

	t.Run("user role forbidden", func(t *testing.T) {
		token, err := utils.GenerateJWT(7, "user@example.com", utils.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/stock", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin role passes", func(t *testing.T) {
		token, err := utils.GenerateJWT(1, "admin", utils.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/stock", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no claims forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdminMiddleware(next).ServeHTTP(rec, httptest.NewRequest("POST", "/api/stock", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
