package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is returned for tokens that fail signature, expiry or claim checks.
var ErrInvalidSession = errors.New("invalid or expired session")

// AdminClaims is the payload of the admin session token.
type AdminClaims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// GenerateAdminToken creates a signed HS256 session token valid for ttl.
func GenerateAdminToken(secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &AdminClaims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAdminToken validates the token and returns its claims.
func ParseAdminToken(secret, tokenString string) (*AdminClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidSession
	}

	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidSession
	}

	if claims, ok := token.Claims.(*AdminClaims); ok && token.Valid && claims.IsAdmin {
		return claims, nil
	}

	return nil, ErrInvalidSession
}
