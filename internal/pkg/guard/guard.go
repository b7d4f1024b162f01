// Package guard bounds the wall-clock time of individual device calls.
package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"onbox-config-copy/internal/pkg/logging"
	"onbox-config-copy/internal/types"
)

// Guard runs each operation under its own deadline.
type Guard struct {
	timeout time.Duration
}

// New creates a guard that allows timeout per operation.
func New(timeout time.Duration) *Guard {
	return &Guard{timeout: timeout}
}

// Timeout returns the per-operation deadline.
func (g *Guard) Timeout() time.Duration {
	return g.timeout
}

// Run calls fn with a context that expires after the guard timeout. When the
// deadline is what stopped fn, the returned error wraps types.ErrTimeout.
func (g *Guard) Run(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	err := fn(callCtx)
	if err == nil {
		return nil
	}

	if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		logging.WithComponent("guard").
			WithField("operation", operation).
			WithField("timeout", g.timeout.String()).
			Error("Timed out waiting for " + operation)
		return fmt.Errorf("%s: %w after %s", operation, types.ErrTimeout, g.timeout)
	}

	return err
}
