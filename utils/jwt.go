package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/golang-jwt/jwt"
)

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// DecodeUnverified parses a JWT's claims WITHOUT checking its signature.
// Only the development auth path may use it.
func DecodeUnverified(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// ClaimString returns the first non-empty string claim among keys.
func ClaimString(claims map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := claims[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// ErrNoSubject is returned when a token carries no usable user id.
var ErrNoSubject = errors.New("token does not contain a uid, sub or user_id claim")
