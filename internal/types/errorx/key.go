package errorx

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is the type for keys stored in a context.Context by this package.
// Using a custom type instead of bare string prevents key collisions across packages.
type contextKey string

// Standard context keys for common identifiers used in request processing.
const (
	// RequestIDKey is the key for storing and retrieving request identifiers
	RequestIDKey contextKey = "requestID"

	// TraceIDKey is the key for storing and retrieving distributed tracing identifiers
	TraceIDKey contextKey = "traceID"

	// UserIDKey is the key for storing and retrieving user identifiers
	UserIDKey contextKey = "userID"

	// correlationIDKey holds the request-scoped correlation id
	correlationIDKey contextKey = "correlationID"
)

// contextKeys are the identifiers WithContext copies into an exception's context.
var contextKeys = []contextKey{
	RequestIDKey,
	TraceIDKey,
	UserIDKey,
}

// NewCorrelationID returns a random 8-4-4-4-12 hex correlation id.
func NewCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a copy of ctx carrying id as the current correlation id.
// Every goroutine sees only the id of the context it was handed.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFromContext returns the correlation id stored in ctx, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// Annotate enriches the exception in err's chain from ctx, like
// ErrorX.WithContext. Errors without an exception are returned unchanged.
func Annotate(ctx context.Context, err error) error {
	if ex, ok := AsException(err); ok {
		ex.base().WithContext(ctx)
	}
	return err
}
