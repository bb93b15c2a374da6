// Package chain runs ordered fallback strategies until one yields a usable result.
package chain

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoResult is returned when every step failed or returned an unacceptable value
var ErrNoResult = errors.New("no step produced a result")

// Step is one named strategy
type Step[I, T any] struct {
	Name string
	Run  func(ctx context.Context, in I) (T, error)
}

// FirstSuccess runs steps in order and returns the first result accepted by accept,
// along with the name of the step that produced it. A nil accept takes any
// error-free result. When nothing is accepted the returned error wraps ErrNoResult
// and every step error.
func FirstSuccess[I, T any](ctx context.Context, in I, accept func(T) bool, steps ...Step[I, T]) (T, string, error) {
	var zero T
	errs := []error{ErrNoResult}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if step.Run == nil {
			continue
		}

		out, err := step.Run(ctx, in)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", step.Name, err))
			continue
		}
		if accept != nil && !accept(out) {
			errs = append(errs, fmt.Errorf("%s: result rejected", step.Name))
			continue
		}
		return out, step.Name, nil
	}

	return zero, "", errors.Join(errs...)
}
