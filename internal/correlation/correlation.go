// Package correlation carries the request correlation id through a context.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header that carries the id in and out of the service.
const Header = "X-Correlation-Id"

type ctxKey struct{}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the id stored in ctx, or "" if none.
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// NewID returns a fresh random id.
func NewID() string {
	return uuid.NewString()
}
