package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// IdentityResolver turns a bearer token into the user it belongs to.
type IdentityResolver struct {
	store  UserStore
	tokens TokenService
	logger Logger
}

// NewIdentityResolver creates a resolver over the given store and token
// service. Pass the same token service the authenticator issues with.
func NewIdentityResolver(store UserStore, tokens TokenService) *IdentityResolver {
	return &IdentityResolver{
		store:  store,
		tokens: tokens,
		logger: defLogger{},
	}
}

// WithLogger replaces the default logger.
func (r *IdentityResolver) WithLogger(logger Logger) *IdentityResolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// ResolveIdentity validates the raw token and loads its subject. Every
// rejection, whether a bad token or a subject that no longer exists, comes
// back as ErrAuthorizationRequired so clients learn nothing about the cause.
func (r *IdentityResolver) ResolveIdentity(ctx context.Context, raw string) (*User, error) {
	if raw == "" {
		return nil, ErrAuthorizationRequired
	}

	claims, err := r.tokens.Validate(raw)
	if err != nil {
		r.logger.Debug("resolve: token rejected: %v", err)
		return nil, ErrAuthorizationRequired
	}

	id, err := uuid.Parse(claims.UserID())
	if err != nil {
		r.logger.Debug("resolve: subject is not a user id: %v", err)
		return nil, ErrAuthorizationRequired
	}

	user, err := r.store.GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrAuthorizationRequired
		}
		r.logger.Error("resolve: user lookup failed: %v", err)
		return nil, ErrServerError
	}

	return user.Sanitize(), nil
}
