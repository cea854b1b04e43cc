package jwtutil

import (
	"github.com/golang-jwt/jwt/v5"
)

var secret []byte

// UserClaims represents the JWT claims for an authenticated admin user.
// Tokens are issued by the external identity provider; this service only
// validates them and extracts the caller identity.
type UserClaims struct {
	Email  string `json:"email"`
	UserID uint   `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Initialize sets the signing key used to validate incoming tokens
func Initialize(signingKey string) {
	secret = []byte(signingKey)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
