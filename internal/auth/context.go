package auth

import "context"

type contextKey string

const (
	contextKeyUsername contextKey = "auth.username"
	contextKeyRole     contextKey = "auth.role"
)

func withIdentity(ctx context.Context, username string, role Role) context.Context {
	ctx = context.WithValue(ctx, contextKeyUsername, username)
	ctx = context.WithValue(ctx, contextKeyRole, role)

	return ctx
}

// UsernameFromContext returns the signed-in username, or "" when the
// request was not authenticated.
func UsernameFromContext(ctx context.Context) string {
	if username, ok := ctx.Value(contextKeyUsername).(string); ok {
		return username
	}

	return ""
}

// RoleFromContext returns the signed-in user's role, or "" when the
// request was not authenticated.
func RoleFromContext(ctx context.Context) Role {
	if role, ok := ctx.Value(contextKeyRole).(Role); ok {
		return role
	}

	return ""
}
