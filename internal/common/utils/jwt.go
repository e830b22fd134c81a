// internal/common/utils/jwt.go
// Client-side JWT inspection. The client never verifies signatures (it does
// not hold the signing secret); it only reads the expiry claim to decide
// whether a persisted token is worth presenting to the server.

package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenExpiry returns the expiry time of a JWT without verifying its
// signature. Tokens without an exp claim report a zero time and nil error.
func TokenExpiry(tokenString string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, ErrInvalidToken
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, ErrInvalidToken
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// TokenExpired reports whether a persisted token is unusable: malformed or
// past its expiry. Tokens without an expiry are treated as usable.
func TokenExpired(tokenString string) bool {
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return true
	}
	if exp.IsZero() {
		return false
	}
	return time.Now().After(exp)
}
