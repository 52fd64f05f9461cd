package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/espectro-app/espectro/domain"
)

// Claims are the fields the gateway puts in its access tokens.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// User returns the user the token was issued to.
func (c Claims) User() domain.User {
	return domain.User{ID: c.Subject, Name: c.Name, Email: c.Email, Role: domain.Role(c.Role)}
}

// Expired reports whether the token carries an expiry before now.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time)
}

// ParseClaims decodes token claims without checking the signature. The
// gateway is the party that verifies; the client only reads who it is.
func ParseClaims(token string) (Claims, error) {
	var c Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Claims{}, fmt.Errorf("parsing token claims: %w", err)
	}
	return c, nil
}
