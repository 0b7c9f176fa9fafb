package pipeline

import (
	"context"
	"log/slog"
	"sync"
)

// Fallback identity values used in logs when the caller cannot be resolved.
const (
	AnonymousUserName = "Anonymous"
	UnknownUserID     = "Unknown"
)

// PrincipalResolver exposes the authenticated caller of the current request.
type PrincipalResolver interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// IdentityService answers identity questions about a user.
type IdentityService interface {
	GetUserName(ctx context.Context, userID string) (string, error)
	IsInRole(ctx context.Context, userID, role string) (bool, error)
	Authorize(ctx context.Context, userID, policy string) (bool, error)
}

// Caller is the best-effort identity of whoever sent the current request.
type Caller struct {
	UserID        string
	UserName      string
	Authenticated bool
}

type callerKey struct{}

type callerCache struct {
	once   sync.Once
	caller Caller
}

func withCallerCache(ctx context.Context) context.Context {
	if _, ok := ctx.Value(callerKey{}).(*callerCache); ok {
		return ctx
	}
	return context.WithValue(ctx, callerKey{}, &callerCache{})
}

// Caller resolves the current caller. Within a Send the lookup happens at most once and
// every behavior sees the same result.
func (p *Pipeline) Caller(ctx context.Context) Caller {
	cache, ok := ctx.Value(callerKey{}).(*callerCache)
	if !ok {
		return p.resolveCaller(ctx)
	}

	cache.once.Do(func() {
		cache.caller = p.resolveCaller(ctx)
	})
	return cache.caller
}

func (p *Pipeline) resolveCaller(ctx context.Context) Caller {
	userID, ok := p.principals.CurrentUserID(ctx)
	if !ok || userID == "" {
		return Caller{UserID: UnknownUserID, UserName: AnonymousUserName}
	}

	caller := Caller{UserID: userID, UserName: AnonymousUserName, Authenticated: true}

	userName, err := p.identity.GetUserName(ctx, userID)
	if err != nil {
		p.logger.DebugContext(ctx, "failed to resolve user name",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return caller
	}
	if userName != "" {
		caller.UserName = userName
	}

	return caller
}
