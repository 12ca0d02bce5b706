package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JWT secret key, loaded from JWT_SECRET in main.
var JwtKey []byte

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Claims is the session token payload. Tokens are server-issued and
// expiring; nothing about identity is trusted from client storage.
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// GenerateJWT issues a signed session token valid for 24 hours.
func GenerateJWT(userID int, email, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// ParseJWT validates a token string and returns its claims.
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("token is not valid", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}
