// Package userctx carries the authenticated user id through a request context.
// The auth middleware writes it and post handlers read it as the owner of
// every mutation.
package userctx

import (
	"context"
	"fmt"
)

type userIDKey struct{}

// WithUserID adds the verified user id to ctx.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the verified user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}

// MustUserIDFromContext returns an error when the request was not authenticated.
func MustUserIDFromContext(ctx context.Context) (int64, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return 0, fmt.Errorf("user id not found in context")
	}
	return id, nil
}
