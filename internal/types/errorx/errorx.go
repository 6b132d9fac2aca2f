package errorx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/jsonx"
)

// timestampLayout is ISO 8601 UTC with second precision.
const timestampLayout = "2006-01-02T15:04:05Z"

// Exception is the capability set shared by ErrorX and its typed variants.
// It is sealed: only types of this package implement it.
type Exception interface {
	error
	Code() ErrorCode
	Message() string
	Kind() Kind
	Context() map[string]string
	AddContext(key, value string)
	CorrelationID() string
	SetCorrelationID(id string)
	Timestamp() time.Time
	LogString() string
	JSONString() string
	FormatStack() string
	Unwrap() error

	base() *ErrorX
}

// attr is a subtype identifying attribute rendered by LogString.
type attr struct {
	key   string
	value string
}

// ErrorX is the base exception: a code, a message, an append-only context
// map, a correlation id and the creation time.
type ErrorX struct {
	Cause error    // Original underlying error
	Stack []string // Call stack trace for debugging

	code  ErrorCode
	msg   string
	kind  Kind
	attrs []attr
	ctx   *contextMap
	time  time.Time

	mu            sync.RWMutex
	correlationID string
}

var _ Exception = (*ErrorX)(nil)

// newErrorX builds an exception; skip is the number of frames between the
// public constructor's caller and this function.
func newErrorX(kind Kind, code ErrorCode, msg string, init map[string]string, skip int) *ErrorX {
	e := &ErrorX{
		code:          code,
		msg:           msg,
		kind:          kind,
		ctx:           newContextMap(init),
		time:          time.Now(),
		correlationID: NewCorrelationID(),
	}

	if st := currentStack(); st.enabled {
		e.Stack = captureStack(skip+1, st.filters)
	}

	metrics.exceptionsCreated.WithLabelValues(kind.String(), Category(code)).Inc()
	return e
}

// New creates a new exception with the specified code and message.
// Stack traces are captured if globally enabled.
//
// Example:
//
//	err := New(CodeJobNotFound, "job 42 not found")
func New(code ErrorCode, msg string) *ErrorX {
	return newErrorX(KindGeneric, code, msg, nil, 1)
}

// NewWithContext creates a new exception seeded with the given context entries.
func NewWithContext(code ErrorCode, msg string, ctx map[string]string) *ErrorX {
	return newErrorX(KindGeneric, code, msg, ctx, 1)
}

// NewWithCause creates a new exception with an underlying cause.
// This is a convenience method combining New and WithCause.
//
// Example:
//
//	err := NewWithCause(CodeDatabaseError, "insert failed", dbErr)
func NewWithCause(code ErrorCode, msg string, cause error) *ErrorX {
	return newErrorX(KindGeneric, code, msg, nil, 1).WithCause(cause)
}

// Wrap creates an exception wrapping an existing error.
// If err is nil, it behaves like New.
// If err already carries an exception, its context and correlation id are
// carried over while code and message are replaced.
func Wrap(err error, code ErrorCode, msg string) *ErrorX {
	if err == nil {
		return newErrorX(KindGeneric, code, msg, nil, 1)
	}

	var existing Exception
	if errors.As(err, &existing) {
		return existing.base().clone(code, msg, err)
	}

	return newErrorX(KindGeneric, code, msg, nil, 1).WithCause(err)
}

func (e *ErrorX) base() *ErrorX { return e }

// Code returns the error code.
func (e *ErrorX) Code() ErrorCode { return e.code }

// Message returns the message given at construction.
func (e *ErrorX) Message() string { return e.msg }

// Kind returns the exception variant.
func (e *ErrorX) Kind() Kind { return e.kind }

// Timestamp returns the creation time.
func (e *ErrorX) Timestamp() time.Time { return e.time }

// Context returns a copy of the context entries.
func (e *ErrorX) Context() map[string]string {
	return e.ctx.Snapshot()
}

// ContextValue returns a single context entry.
func (e *ErrorX) ContextValue(key string) (string, bool) {
	return e.ctx.Get(key)
}

// AddContext upserts a context entry. Keys and values are not inspected,
// callers must not put secrets here.
func (e *ErrorX) AddContext(key, value string) {
	e.ctx.Set(key, value)
}

// CorrelationID returns the correlation id.
func (e *ErrorX) CorrelationID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.correlationID
}

// SetCorrelationID overwrites the correlation id.
func (e *ErrorX) SetCorrelationID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.correlationID = id
}

// WithCause sets the underlying cause of this exception.
// If err is nil, the cause remains unchanged.
func (e *ErrorX) WithCause(err error) *ErrorX {
	if err != nil {
		e.Cause = err
	}
	return e
}

// WithContext enriches an exception with values extracted from ctx.
// Request, trace and user ids are copied into the context map, and a
// request-scoped correlation id replaces the generated one.
//
// If ctx is nil, the exception is returned unchanged.
//
// Example:
//
//	err := New(CodeInvalidInput, "invalid parameter").WithContext(ctx)
func (e *ErrorX) WithContext(ctx context.Context) *ErrorX {
	if ctx == nil {
		return e
	}

	// Extract common context values into the exception context
	for _, key := range contextKeys {
		if value, ok := ctx.Value(key).(string); ok && value != "" {
			e.ctx.Set(string(key), value)
		}
	}

	if id := CorrelationIDFromContext(ctx); id != "" {
		e.SetCorrelationID(id)
	}
	return e
}

// Unwrap supports error chain unwrapping for errors.Is/As compatibility.
func (e *ErrorX) Unwrap() error {
	return e.Cause
}

// Error implements the standard error interface.
// It returns a formatted string containing the error code, message and cause (if available).
func (e *ErrorX) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.code, e.msg)
}

// LogString renders the exception on a single line:
//
//	ValidationException[code=1000, message="bad", correlation_id="…", field="email", context={field="email"}]
//
// Subtype attributes appear only when non-empty, context only when non-empty.
func (e *ErrorX) LogString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[code=%d, message=%q, correlation_id=%q",
		e.kind, int(e.code), e.msg, e.CorrelationID())

	for _, a := range e.attrs {
		if a.value != "" {
			fmt.Fprintf(&b, ", %s=%q", a.key, a.value)
		}
	}

	snapshot := e.ctx.Snapshot()
	for _, k := range sortedKeys(snapshot) {
		fmt.Fprintf(&b, ", %s=%q", k, snapshot[k])
	}

	b.WriteString("]")
	return b.String()
}

type exceptionJSON struct {
	Type          string            `json:"type"`
	Code          int               `json:"code"`
	Message       string            `json:"message"`
	CorrelationID string            `json:"correlation_id"`
	Timestamp     string            `json:"timestamp"`
	Context       map[string]string `json:"context,omitempty"`
}

// JSONString serializes the exception. The type field reports the real
// variant name, e.g. "ValidationException".
func (e *ErrorX) JSONString() string {
	s, err := jsonx.MarshalToString(exceptionJSON{
		Type:          e.kind.String(),
		Code:          int(e.code),
		Message:       e.msg,
		CorrelationID: e.CorrelationID(),
		Timestamp:     FormatTimestamp(e.time),
		Context:       e.ctx.Snapshot(),
	})
	if err != nil {
		return fmt.Sprintf(`{"type":%q,"code":%d}`, e.kind.String(), int(e.code))
	}
	return s
}

// FormatStack returns formatted stack trace information.
func (e *ErrorX) FormatStack() string {
	if len(e.Stack) == 0 {
		return "Stack trace not enabled or unavailable"
	}

	var result strings.Builder
	for i, frame := range e.Stack {
		fmt.Fprintf(&result, "#%02d %s\n", i, frame)
	}
	return result.String()
}

// Detail returns complete error information including stack trace and context.
func (e *ErrorX) Detail() string {
	var result strings.Builder

	// Basic error information
	fmt.Fprintf(&result, "%s: [%d %s] %s\n", e.kind, e.code, e.code, e.msg)
	fmt.Fprintf(&result, "Correlation ID: %s\n", e.CorrelationID())
	fmt.Fprintf(&result, "Time: %s\n", e.time.Format(time.RFC3339))

	// Cause chain
	if e.Cause != nil {
		fmt.Fprintf(&result, "Cause: %v\n", e.Cause)
	}

	if snapshot := e.ctx.Snapshot(); len(snapshot) > 0 {
		result.WriteString("Context:\n")
		for _, k := range sortedKeys(snapshot) {
			fmt.Fprintf(&result, "  %s: %s\n", k, snapshot[k])
		}
	}

	// Stack trace
	if len(e.Stack) > 0 {
		result.WriteString("Stack trace:\n")
		for i, frame := range e.Stack {
			fmt.Fprintf(&result, "  #%02d %s\n", i, frame)
		}
	}

	return result.String()
}

// PrintErrorTree prints the complete error tree to the provided writer.
func PrintErrorTree(err error, w io.Writer) error {
	if err == nil {
		return nil
	}

	if w == nil {
		return errors.New("the output writer cannot be nil")
	}

	if _, err := fmt.Fprintln(w, "Error tree:"); err != nil {
		return fmt.Errorf("printing error tree header failed: %w", err)
	}

	p := &treePrinter{w: w, seen: make(map[*ErrorX]bool)}
	return p.print(err, "", 0)
}

// FormatTimestamp renders t as ISO 8601 UTC with second precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
