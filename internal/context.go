package internal

import (
	"context"
	"time"
)

type ctxKey string

const contextIdentityKey ctxKey = "identity"

// Identity is the verified caller attached to a request context by the auth
// middleware. Handlers read it explicitly; nothing else carries "who is calling".
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool  { return i.Role == "admin" }
func (i Identity) IsDoctor() bool { return i.Role == "doctor" }

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(contextIdentityKey).(Identity)
	return id, ok
}

func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextIdentityKey, id)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
