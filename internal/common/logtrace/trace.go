package logtrace

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type operationKey struct{}
type runKey struct{}

// WithOperation returns a context carrying the operation name.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey{}, op)
}

// OperationFromContext extracts the operation name from the context.
// Returns an empty string if the context is nil or carries none.
func OperationFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	op, _ := ctx.Value(operationKey{}).(string)
	return op
}

// WithRun returns a context carrying a new time-ordered run ID, so the log
// lines of one invocation can be correlated.
func WithRun(ctx context.Context) context.Context {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return context.WithValue(ctx, runKey{}, id.String())
}

// RunFromContext extracts the run ID from the context.
func RunFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runKey{}).(string)
	return id
}

// Logger returns the global logger tagged with the run and operation in ctx.
func Logger(ctx context.Context) zerolog.Logger {
	l := log.Logger
	if id := RunFromContext(ctx); id != "" {
		l = l.With().Str("run", id).Logger()
	}
	if op := OperationFromContext(ctx); op != "" {
		l = l.With().Str("op", op).Logger()
	}
	return l
}
