package middleware

import "context"

type contextKey string

const (
	ctxUserID contextKey = "userId"
	ctxEmail  contextKey = "email"
	ctxRoles  contextKey = "roles"
)

// UserIDFromContext returns the authenticated user id, or 0 when the request
// carried no valid token.
func UserIDFromContext(ctx context.Context) int64 {
	if v, ok := ctx.Value(ctxUserID).(int64); ok {
		return v
	}
	return 0
}

// EmailFromContext returns the authenticated user's email.
func EmailFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxEmail).(string); ok {
		return v
	}
	return ""
}

// RolesFromContext returns the role names carried by the token.
func RolesFromContext(ctx context.Context) []string {
	if v, ok := ctx.Value(ctxRoles).([]string); ok {
		return v
	}
	return nil
}
