package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of the platform's auth token.
//
// Decoding is advisory only: the signature is never verified client-side and
// nothing here may be used for authorization decisions. The server re-validates
// the token on every request.
type Claims struct {
	UserID   string
	Email    string
	IssuedAt time.Time
}

// Decode extracts the payload of raw without verifying its signature.
// It fails when the token is malformed or carries no user ID.
func Decode(raw string) (*Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("token payload has no user id")
	}

	c := &Claims{UserID: id}
	if email, ok := claims["email"].(string); ok {
		c.Email = email
	}
	if iat, ok := claims["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(iat), 0)
	}
	return c, nil
}
