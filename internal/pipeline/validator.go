package pipeline

import (
	"context"
	"sort"

	"github.com/allisson/onetimepassgen/internal/validation"
)

// ValidationFailure is a single failed rule on a request field.
type ValidationFailure struct {
	Field   string
	Message string
}

// Validator checks a request. Rule failures are returned as ValidationFailure values;
// a non-nil error means the validator itself could not run.
type Validator[Req any] interface {
	Validate(ctx context.Context, req Req) ([]ValidationFailure, error)
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc[Req any] func(ctx context.Context, req Req) ([]ValidationFailure, error)

// Validate calls f.
func (f ValidatorFunc[Req]) Validate(ctx context.Context, req Req) ([]ValidationFailure, error) {
	return f(ctx, req)
}

// FailuresFromError converts the result of a jellydator validation into failures.
// Field errors become failures sorted by field name. Any other error is returned as is.
func FailuresFromError(err error) ([]ValidationFailure, error) {
	if err == nil {
		return nil, nil
	}

	fields := validation.FieldErrors(err)
	if fields == nil {
		return nil, err
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var failures []ValidationFailure
	for _, name := range names {
		for _, message := range fields[name] {
			failures = append(failures, ValidationFailure{Field: name, Message: message})
		}
	}

	return failures, nil
}
