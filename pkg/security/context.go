package security

import "context"

type userIDKey struct{}

// ContextWithUserID attaches the authenticated user's id to ctx.
func ContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the id stored by ContextWithUserID, or 0.
func UserIDFromContext(ctx context.Context) int {
	if ctx == nil {
		return 0
	}
	userID, _ := ctx.Value(userIDKey{}).(int)
	return userID
}
