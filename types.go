package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// UserStore is the persistence boundary the credential flows depend on.
// Implementations must enforce email uniqueness at the storage layer and
// report misses with a not-found error (see goliatone/go-errors.IsNotFound).
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
}

// StaticConfig is a literal Config for hosts that load settings themselves.
type StaticConfig struct {
	SigningKey      string
	TokenExpiration int // hours; defaults to 1
	Issuer          string
	Audience        []string
}

func (c StaticConfig) GetSigningKey() string { return c.SigningKey }

func (c StaticConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return 1
	}
	return c.TokenExpiration
}

func (c StaticConfig) GetIssuer() string { return c.Issuer }

func (c StaticConfig) GetAudience() []string { return c.Audience }

var _ Config = StaticConfig{}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
