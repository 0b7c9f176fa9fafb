// Package pipeline dispatches commands and queries to their handlers through an ordered
// chain of cross-cutting behaviors.
//
// Every registered request type gets the same chain, outermost first:
//
//  1. unhandled error logging
//  2. authorization against the requirements declared at registration
//  3. concurrent validation
//  4. long-running request detection
//  5. request logging
//  6. the handler
//
// A failing stage stops the chain. Errors are returned unchanged so the HTTP layer can
// map them to status codes once.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// HandlerFunc executes a request and produces its response.
type HandlerFunc[Req, Res any] func(ctx context.Context, req Req) (Res, error)

// Behavior wraps the next step of the chain. It may short-circuit by returning an error
// without calling next.
type Behavior[Req, Res any] func(ctx context.Context, req Req, next HandlerFunc[Req, Res]) (Res, error)

// Descriptor declares how a request type is dispatched.
type Descriptor[Req any] struct {
	// Name identifies the request in logs. Defaults to the Go type name.
	Name string
	// Requirements must all hold before the handler runs. Empty means anonymous access.
	Requirements []Requirement
	// Validators run concurrently before the handler.
	Validators []Validator[Req]
}

// Chain composes behaviors around handler. The first behavior is the outermost.
// Every stage, the handler included, is skipped once ctx is done.
func Chain[Req, Res any](handler HandlerFunc[Req, Res], behaviors ...Behavior[Req, Res]) HandlerFunc[Req, Res] {
	next := checkContext(handler)
	for i := len(behaviors) - 1; i >= 0; i-- {
		behavior := behaviors[i]
		inner := next
		next = checkContext(func(ctx context.Context, req Req) (Res, error) {
			return behavior(ctx, req, inner)
		})
	}
	return next
}

func checkContext[Req, Res any](step HandlerFunc[Req, Res]) HandlerFunc[Req, Res] {
	return func(ctx context.Context, req Req) (Res, error) {
		if err := ctx.Err(); err != nil {
			var zero Res
			return zero, err
		}
		return step(ctx, req)
	}
}

type registration[Req, Res any] struct {
	name  string
	chain HandlerFunc[Req, Res]
}

// Pipeline is the request mediator. Handlers are registered once at startup and selected
// by request type on every Send.
type Pipeline struct {
	logger               *slog.Logger
	principals           PrincipalResolver
	identity             IdentityService
	longRunningThreshold time.Duration

	mu       sync.RWMutex
	handlers map[reflect.Type]any
}

// New creates a Pipeline. Requests taking at least longRunningThreshold are reported.
func New(
	logger *slog.Logger,
	principals PrincipalResolver,
	identity IdentityService,
	longRunningThreshold time.Duration,
) *Pipeline {
	return &Pipeline{
		logger:               logger,
		principals:           principals,
		identity:             identity,
		longRunningThreshold: longRunningThreshold,
		handlers:             make(map[reflect.Type]any),
	}
}

// Register composes the standard behavior chain around handler for request type Req.
// Registering the same request type twice is an error.
func Register[Req, Res any](p *Pipeline, desc Descriptor[Req], handler HandlerFunc[Req, Res]) error {
	key := reflect.TypeFor[Req]()

	name := desc.Name
	if name == "" {
		name = typeName(key)
	}

	chain := Chain(
		handler,
		UnhandledErrorBehavior[Req, Res](p.logger, name),
		AuthorizationBehavior[Req, Res](p.principals, p.identity, desc.Requirements),
		ValidationBehavior[Req, Res](desc.Validators...),
		PerformanceBehavior[Req, Res](p.logger, name, p.longRunningThreshold, p.Caller),
		PreProcess[Req, Res](LoggingPreProcessor[Req](p.logger, name, p.Caller)),
	)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.handlers[key]; exists {
		return fmt.Errorf("pipeline: handler already registered for %s", name)
	}
	p.handlers[key] = registration[Req, Res]{name: name, chain: chain}

	return nil
}

// Send dispatches req through the chain registered for its type.
func Send[Req, Res any](ctx context.Context, p *Pipeline, req Req) (Res, error) {
	var zero Res
	key := reflect.TypeFor[Req]()

	p.mu.RLock()
	entry, ok := p.handlers[key]
	p.mu.RUnlock()

	if !ok {
		return zero, fmt.Errorf("pipeline: no handler registered for %s", typeName(key))
	}

	reg, ok := entry.(registration[Req, Res])
	if !ok {
		return zero, fmt.Errorf(
			"pipeline: handler for %s does not return %s",
			typeName(key),
			typeName(reflect.TypeFor[Res]()),
		)
	}

	return reg.chain(withCallerCache(ctx), req)
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
