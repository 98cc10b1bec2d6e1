package auth

import "context"

type contextKey string

const userContextKey contextKey = "auth:user"

// WithContext returns a context carrying the authenticated user.
func WithContext(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext retrieves the authenticated user, nil and false when absent.
func FromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}
