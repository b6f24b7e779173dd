package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"meetconnect/internal/model"
)

// Caller is the authenticated identity resolved for a request.
type Caller struct {
	Account   *model.Account
	TokenID   string
	ExpiresAt time.Time
}

// ID returns the caller's account id.
func (c Caller) ID() uuid.UUID {
	if c.Account == nil {
		return uuid.Nil
	}
	return c.Account.ID
}

type callerContextKey struct{}

// WithCaller returns a copy of ctx carrying caller.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// CallerFromContext returns the caller attached by the authentication
// middleware. ok is false for anonymous requests.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(callerContextKey{}).(Caller)
	if !ok || caller.Account == nil {
		return Caller{}, false
	}
	return caller, true
}
