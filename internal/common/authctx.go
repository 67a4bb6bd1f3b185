package common

import "context"

type ctxKey string

const (
	userIDKey     ctxKey = "auth/user-id"
	businessIDKey ctxKey = "auth/business-id"
	roleKey       ctxKey = "auth/role"
)

// WithUserID stores the authenticated user identifier on the provided context.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserID extracts the authenticated user identifier from the context if present.
func UserID(ctx context.Context) (string, bool) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// WithBusinessID stores the business the caller acts for.
func WithBusinessID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, businessIDKey, id)
}

// BusinessID returns the caller's business; ok is false when absent or non-positive.
func BusinessID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(businessIDKey).(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

func Role(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}
