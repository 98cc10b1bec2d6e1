package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims carried by issued access tokens. UID duplicates
// the subject for consumers that expect a dedicated user claim.
type TokenClaims struct {
	jwt.RegisteredClaims
	UID string `json:"uid,omitempty"`
}

// UserID returns the authenticated user identifier, preferring UID and
// falling back to the registered subject.
func (c *TokenClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject
}

// Expires returns the expiration time, zero when absent.
func (c *TokenClaims) Expires() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Issued returns the issue time, zero when absent.
func (c *TokenClaims) Issued() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}
