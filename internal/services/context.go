package services

import "context"

type contextKey string

const (
	runIDKey       contextKey = "run_id"
	commandTypeKey contextKey = "command_type"
	requestIDKey   contextKey = "request_id"
)

// WithRunID annotates context with the run the command is enqueued against.
func WithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext returns the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCommandType annotates context with the robot command type (e.g. aspirate).
func WithCommandType(ctx context.Context, commandType string) context.Context {
	if commandType == "" {
		return ctx
	}
	return context.WithValue(ctx, commandTypeKey, commandType)
}

// CommandTypeFromContext returns the command type if present.
func CommandTypeFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(commandTypeKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
