package domain

import "context"

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID   string
	UserName string
	Roles    []string
}

type principalKey struct{}

// WithPrincipal stores the principal in the context.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the principal from the context.
func GetPrincipal(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}

// ContextPrincipalResolver resolves the current user from the request context.
type ContextPrincipalResolver struct{}

// CurrentUserID returns the user id of the principal in ctx, if any.
func (ContextPrincipalResolver) CurrentUserID(ctx context.Context) (string, bool) {
	principal, ok := GetPrincipal(ctx)
	if !ok || principal.UserID == "" {
		return "", false
	}
	return principal.UserID, true
}
