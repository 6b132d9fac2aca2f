// Package mapper turns errors into complete HTTP error responses: status,
// standard headers and the JSON error body, with correlation tracking.
package mapper

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/config"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/response"
	"github.com/zlovtnik/rclabsAPI-sub003/pkg/validate"
)

// Config is the mapping configuration.
type Config = config.MapperConf

// Handler builds the full response for an exception. Its result is
// returned verbatim: no status resolution and no standard headers.
// A nil result is treated as a handler failure.
type Handler func(ctx context.Context, ex errorx.Exception, operation string) *response.HTTPResponse

// Reporter receives every mapped exception, e.g. for asynchronous alerting.
type Reporter func(ex errorx.Exception)

type Option func(*Mapper)

func WithLogger(l Logger) Option {
	return func(m *Mapper) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithReporter(r Reporter) Option {
	return func(m *Mapper) {
		m.reporter = r
	}
}

// Mapper converts errors into HTTP responses. It is safe for concurrent use;
// handlers and configuration may be changed while requests are mapped.
type Mapper struct {
	mu           sync.RWMutex
	conf         config.MapperConf
	codeHandlers map[errorx.ErrorCode]Handler
	kindHandlers map[errorx.Kind]Handler

	logger   Logger
	reporter Reporter
}

func New(conf config.MapperConf, opts ...Option) *Mapper {
	m := &Mapper{
		conf:         conf,
		codeHandlers: make(map[errorx.ErrorCode]Handler),
		kindHandlers: make(map[errorx.Kind]Handler),
		logger:       NewLogxLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultConfig mirrors the defaults of config.MapperConf.
func DefaultConfig() config.MapperConf {
	return config.MapperConf{
		DefaultStatus: http.StatusInternalServerError,
		ServerHeader:  "etlgateway",
		CorsOrigin:    "*",
		KeepAlive:     true,
	}
}

// RegisterHandler installs or replaces the handler for code.
func (m *Mapper) RegisterHandler(code errorx.ErrorCode, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codeHandlers[code] = h
}

// RegisterKindHandler installs or replaces the handler for an exception kind.
// Kind handlers take precedence over code handlers.
func (m *Mapper) RegisterKindHandler(kind errorx.Kind, h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kindHandlers[kind] = h
}

// UpdateConfig replaces the whole configuration.
func (m *Mapper) UpdateConfig(conf config.MapperConf) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conf = conf
}

func (m *Mapper) Config() config.MapperConf {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conf
}

func (m *Mapper) handlerFor(ex errorx.Exception) (Handler, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h, ok := m.kindHandlers[ex.Kind()]; ok && h != nil {
		return h, true
	}
	if h, ok := m.codeHandlers[ex.Code()]; ok && h != nil {
		return h, true
	}
	return nil, false
}

// Map dispatches err to MapException when its chain holds an exception,
// to MapError otherwise, and to MapUnknown when err is nil.
func (m *Mapper) Map(ctx context.Context, err error, operation string) *response.HTTPResponse {
	if err == nil {
		return m.MapUnknown(ctx, operation)
	}
	if ex, ok := errorx.AsException(err); ok {
		return m.MapException(ctx, ex, operation)
	}
	return m.MapError(ctx, err, operation)
}

// MapException maps an exception: kind handler, then code handler, then the
// code's registered status with standard headers. It never panics.
func (m *Mapper) MapException(ctx context.Context, ex errorx.Exception, operation string) (resp *response.HTTPResponse) {
	if ex == nil {
		return m.MapUnknown(ctx, operation)
	}

	defer func() {
		if r := recover(); r != nil {
			resp = m.degrade(ctx, operation, fmt.Sprintf("mapping %s panicked: %v", operation, r))
		}
	}()

	if id := errorx.CorrelationIDFromContext(ctx); id != "" {
		ex.SetCorrelationID(id)
	}

	m.LogException(ctx, ex, operation)
	m.report(ex)

	if h, ok := m.handlerFor(ex); ok {
		resp = h(ctx, ex, operation)
		if resp == nil {
			return m.degrade(ctx, operation, fmt.Sprintf("handler for %s returned no response", ex.Code()))
		}
		observe(ex.Code().String(), resp.Status)
		return resp
	}

	conf := m.Config()
	status := statusFor(ex.Code(), conf)
	observe(ex.Code().String(), status)
	return build(status, formatFor(ex, conf), conf)
}

// MapError maps an error that carries no exception. The status is always
// the configured default; the error text is only exposed when internal
// details are enabled.
func (m *Mapper) MapError(ctx context.Context, err error, operation string) (resp *response.HTTPResponse) {
	if err == nil {
		return m.MapUnknown(ctx, operation)
	}

	defer func() {
		if r := recover(); r != nil {
			resp = m.degrade(ctx, operation, fmt.Sprintf("mapping %s panicked: %v", operation, r))
		}
	}()

	conf := m.Config()
	correlationID := correlationIDFor(ctx)
	m.log(ctx, correlationID, SeverityError, operation, "unclassified error: "+err.Error())
	m.report(errorx.NewWithCause(errorx.CodeInternalError, "unclassified error", err).WithContext(ctx))

	msg := internalErrorMsg
	if conf.IncludeInternalDetails {
		msg = err.Error()
	}

	status := defaultStatus(conf)
	observe(errorx.CodeInternalError.String(), status)
	return build(status, genericFormat(errorx.CodeInternalError, msg, correlationID), conf)
}

// MapUnknown maps a failure nothing is known about, e.g. a recovered panic.
func (m *Mapper) MapUnknown(ctx context.Context, operation string) (resp *response.HTTPResponse) {
	defer func() {
		if r := recover(); r != nil {
			resp = m.degrade(ctx, operation, fmt.Sprintf("mapping %s panicked: %v", operation, r))
		}
	}()

	conf := m.Config()
	correlationID := correlationIDFor(ctx)
	m.log(ctx, correlationID, SeverityError, operation, "unknown error")

	status := defaultStatus(conf)
	observe(errorx.CodeInternalError.String(), status)
	return build(status, genericFormat(errorx.CodeInternalError, unknownErrorMsg, correlationID), conf)
}

// FromValidationResult maps a failed validation to 400 with every
// violation in the errors array.
func (m *Mapper) FromValidationResult(ctx context.Context, result validate.Result, operation string) (resp *response.HTTPResponse) {
	defer func() {
		if r := recover(); r != nil {
			resp = m.degrade(ctx, operation, fmt.Sprintf("mapping %s panicked: %v", operation, r))
		}
	}()

	conf := m.Config()
	correlationID := correlationIDFor(ctx)

	code := errorx.CodeInvalidInput
	if len(result.Errors) > 0 {
		if c, ok := errorx.ParseCode(result.Errors[0].Code); ok {
			code = c
		}
	}

	f := genericFormat(code, validationErrorMsg, correlationID)
	f.Errors = result.Errors
	if operation != "" {
		f.Context[errorx.ContextOperation] = operation
	}

	m.log(ctx, correlationID, SeverityInfo, operation,
		fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))

	observe(code.String(), http.StatusBadRequest)
	return build(http.StatusBadRequest, f, conf)
}

// CreateErrorFormat builds the standard error body for ex under the
// current configuration.
func (m *Mapper) CreateErrorFormat(ex errorx.Exception) ErrorResponseFormat {
	return formatFor(ex, m.Config())
}

// LogException writes one log entry for ex. It does not affect responses.
func (m *Mapper) LogException(ctx context.Context, ex errorx.Exception, operation string) {
	m.log(ctx, ex.CorrelationID(), severityOf(ex), operation, ex.LogString())
}

func (m *Mapper) log(ctx context.Context, correlationID string, severity Severity, operation, message string) {
	defer func() {
		if r := recover(); r != nil {
			logx.WithContext(ctx).Errorw("error logger panicked", logx.Field("panic", fmt.Sprint(r)))
		}
	}()
	m.logger.Log(ctx, correlationID, severity, operation, message)
}

func (m *Mapper) report(ex errorx.Exception) {
	if m.reporter == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logx.Errorw("error reporter panicked", logx.Field("panic", fmt.Sprint(r)))
		}
	}()
	m.reporter(ex)
}

// degrade produces the generic response used when mapping itself fails.
// It only touches values that cannot fail to serialize.
func (m *Mapper) degrade(ctx context.Context, operation, reason string) *response.HTTPResponse {
	metrics.degraded.Inc()
	logx.WithContext(ctx).Errorw("error mapping degraded",
		logx.Field("operation", operation),
		logx.Field("reason", reason))

	conf := m.Config()
	status := defaultStatus(conf)
	return build(status, genericFormat(errorx.CodeInternalError, internalErrorMsg, correlationIDFor(ctx)), conf)
}

// GenerateCorrelationID returns a new random correlation id.
func GenerateCorrelationID() string {
	return errorx.NewCorrelationID()
}

// WithCorrelationID stores id as the request-scoped correlation id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return errorx.WithCorrelationID(ctx, id)
}

// CurrentCorrelationID returns the correlation id stored in ctx, or "".
func CurrentCorrelationID(ctx context.Context) string {
	return errorx.CorrelationIDFromContext(ctx)
}

func correlationIDFor(ctx context.Context) string {
	if id := errorx.CorrelationIDFromContext(ctx); id != "" {
		return id
	}
	return errorx.NewCorrelationID()
}

func defaultStatus(conf config.MapperConf) int {
	if conf.DefaultStatus < 400 || conf.DefaultStatus > 599 {
		return http.StatusInternalServerError
	}
	return conf.DefaultStatus
}

// statusFor resolves the registered status of code; codes registered as
// plain 500 follow the configured default instead.
func statusFor(code errorx.ErrorCode, conf config.MapperConf) int {
	status := errorx.DefaultHTTPStatus(code)
	if status == http.StatusInternalServerError {
		return defaultStatus(conf)
	}
	return status
}

func build(status int, f ErrorResponseFormat, conf config.MapperConf) *response.HTTPResponse {
	server := conf.ServerHeader
	if server == "" {
		server = DefaultConfig().ServerHeader
	}

	return response.NewBuilder().
		Status(status).
		Server(server).
		ContentType(response.ContentTypeJSON).
		CORS(conf.CorsOrigin).
		KeepAlive(conf.KeepAlive).
		CorrelationID(f.CorrelationID).
		Body([]byte(f.ToJSON())).
		Build()
}
