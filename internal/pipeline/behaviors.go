package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/allisson/onetimepassgen/internal/errors"
)

// PreProcessor runs before the handler. A returned error aborts the request.
type PreProcessor[Req any] func(ctx context.Context, req Req) error

// UnhandledErrorBehavior logs every failure of the inner chain once, tagged with the
// request name, and returns it unchanged. Panics are logged and re-raised.
func UnhandledErrorBehavior[Req, Res any](logger *slog.Logger, name string) Behavior[Req, Res] {
	return func(ctx context.Context, req Req, next HandlerFunc[Req, Res]) (res Res, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "unhandled panic in request",
					slog.String("request", name),
					slog.Any("panic", r),
				)
				panic(r)
			}
		}()

		res, err = next(ctx, req)
		if err != nil {
			level := slog.LevelError
			if apperrors.IsTaxonomy(err) || errors.Is(err, context.Canceled) {
				level = slog.LevelWarn
			}
			logger.LogAttrs(ctx, level, "request failed",
				slog.String("request", name),
				slog.Any("error", err),
			)
		}

		return res, err
	}
}

// AuthorizationBehavior enforces requirements. With no requirements the request passes
// through. Otherwise an authenticated principal is needed, it must hold at least one of
// the listed roles (when any are listed) and satisfy every listed policy.
func AuthorizationBehavior[Req, Res any](
	principals PrincipalResolver,
	identity IdentityService,
	requirements []Requirement,
) Behavior[Req, Res] {
	roles, policies := flattenRequirements(requirements)

	return func(ctx context.Context, req Req, next HandlerFunc[Req, Res]) (Res, error) {
		var zero Res

		if len(requirements) == 0 {
			return next(ctx, req)
		}

		userID, ok := principals.CurrentUserID(ctx)
		if !ok || userID == "" {
			return zero, apperrors.ErrUnauthorized
		}

		if len(roles) > 0 {
			authorized := false
			for _, role := range roles {
				inRole, err := identity.IsInRole(ctx, userID, role)
				if err != nil {
					return zero, err
				}
				if inRole {
					authorized = true
					break
				}
			}
			if !authorized {
				return zero, apperrors.Wrap(
					apperrors.ErrForbidden,
					fmt.Sprintf("requires one of roles [%s]", strings.Join(roles, ", ")),
				)
			}
		}

		for _, policy := range policies {
			allowed, err := identity.Authorize(ctx, userID, policy)
			if err != nil {
				return zero, err
			}
			if !allowed {
				return zero, apperrors.Wrap(apperrors.ErrForbidden, fmt.Sprintf("policy %q not satisfied", policy))
			}
		}

		return next(ctx, req)
	}
}

// ValidationBehavior runs all validators concurrently and waits for every one of them.
// Failures are merged per field, keeping validator order, into an *errors.ValidationError.
func ValidationBehavior[Req, Res any](validators ...Validator[Req]) Behavior[Req, Res] {
	return func(ctx context.Context, req Req, next HandlerFunc[Req, Res]) (Res, error) {
		var zero Res

		if len(validators) == 0 {
			return next(ctx, req)
		}

		results := make([][]ValidationFailure, len(validators))

		g, gctx := errgroup.WithContext(ctx)
		for i, validator := range validators {
			g.Go(func() error {
				failures, err := validator.Validate(gctx, req)
				if err != nil {
					return err
				}
				results[i] = failures
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return zero, err
		}

		fields := map[string][]string{}
		for _, failures := range results {
			for _, failure := range failures {
				fields[failure.Field] = append(fields[failure.Field], failure.Message)
			}
		}

		if len(fields) > 0 {
			return zero, apperrors.NewValidationError(fields)
		}

		return next(ctx, req)
	}
}

// PerformanceBehavior times the inner chain and warns when it takes at least threshold.
// It never fails the request.
func PerformanceBehavior[Req, Res any](
	logger *slog.Logger,
	name string,
	threshold time.Duration,
	caller func(ctx context.Context) Caller,
) Behavior[Req, Res] {
	return func(ctx context.Context, req Req, next HandlerFunc[Req, Res]) (Res, error) {
		start := time.Now()

		res, err := next(ctx, req)

		elapsed := time.Since(start)
		if elapsed >= threshold {
			c := caller(ctx)
			logger.WarnContext(ctx, "long running request",
				slog.String("request", name),
				slog.Int64("elapsed_ms", elapsed.Milliseconds()),
				slog.Float64("threshold_ms", float64(threshold)/float64(time.Millisecond)),
				slog.String("user_id", c.UserID),
				slog.String("user_name", c.UserName),
			)
		}

		return res, err
	}
}

// LoggingPreProcessor logs the request name and caller before the handler runs.
func LoggingPreProcessor[Req any](
	logger *slog.Logger,
	name string,
	caller func(ctx context.Context) Caller,
) PreProcessor[Req] {
	return func(ctx context.Context, req Req) error {
		c := caller(ctx)
		logger.InfoContext(ctx, "handling request",
			slog.String("request", name),
			slog.String("user_id", c.UserID),
			slog.String("user_name", c.UserName),
		)
		return nil
	}
}

// PreProcess adapts pre-processors into a behavior that runs them in order before next.
func PreProcess[Req, Res any](processors ...PreProcessor[Req]) Behavior[Req, Res] {
	return func(ctx context.Context, req Req, next HandlerFunc[Req, Res]) (Res, error) {
		for _, process := range processors {
			if err := process(ctx, req); err != nil {
				var zero Res
				return zero, err
			}
		}
		return next(ctx, req)
	}
}
