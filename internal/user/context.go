package user

import "context"

type contextKey struct{}

// NewContext returns ctx carrying the authenticated account.
func NewContext(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the authenticated account attached by the session
// middleware, if any.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextKey{}).(*User)
	return u, ok
}
