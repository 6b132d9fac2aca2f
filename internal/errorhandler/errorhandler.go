package errorhandler

import (
	"context"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/config"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

type ErrorPriority uint8

const (
	PriorityDebug ErrorPriority = iota
	PriorityInfo
	PriorityWarn     // default, ordinary business failures
	PriorityError    // needs attention, service keeps running
	PriorityCritical // may take part of the service down
	PriorityFatal    // service cannot work properly

	DefaultPriority = PriorityWarn
)

func (p ErrorPriority) String() string {
	switch p {
	case PriorityDebug:
		return "debug"
	case PriorityInfo:
		return "info"
	case PriorityWarn:
		return "warn"
	case PriorityError:
		return "error"
	case PriorityCritical:
		return "critical"
	case PriorityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

var (
	defaultErrorHandler *errorHandler
	once                sync.Once
)

// Init starts the process-wide reporter. Later calls are no-ops.
func Init(conf config.ErrorHandlerConf, consumers ...Consumer) {
	once.Do(func() {
		defaultErrorHandler = newErrorHandler(conf.BufferSize, conf.MaxWorkers, conf.ShutdownTimeout, consumers...)
	})
}

func SubmitWithPriority(err error, priority ErrorPriority) {
	if err == nil {
		return
	}
	if defaultErrorHandler != nil {
		defaultErrorHandler.submit(ConvertIntoException(err), priority)
	} else {
		logx.Error("Error handler not initialized")
	}
}

func Submit(err error) {
	if err == nil {
		return
	}

	ex := ConvertIntoException(err)
	SubmitWithPriority(ex, PriorityOf(ex.Code()))
}

// Report offers ex with its default priority and never waits: when the
// queue is full the report is dropped and counted. It matches mapper.Reporter,
// which runs on request goroutines.
func Report(ex errorx.Exception) {
	if ex == nil {
		return
	}
	if defaultErrorHandler != nil {
		defaultErrorHandler.offer(ex, PriorityOf(ex.Code()))
	} else {
		logx.Error("Error handler not initialized")
	}
}

func Shutdown() {
	if defaultErrorHandler != nil {
		defaultErrorHandler.shutdown()
	}
}

// PriorityOf returns the default priority for code.
func PriorityOf(code errorx.ErrorCode) ErrorPriority {
	switch code {
	case errorx.CodeMemoryError, errorx.CodeDiskFull, errorx.CodeThreadPoolExhausted:
		return PriorityCritical
	case errorx.CodeJobExecutionFailed, errorx.CodeProcessingFailed, errorx.CodeTransformationFailed:
		return PriorityError
	}

	switch errorx.Category(code) {
	case errorx.CategorySystem:
		return PriorityError
	case errorx.CategoryValidation, errorx.CategoryAuthentication:
		return PriorityInfo
	default:
		return PriorityWarn
	}
}

// Report is one queued exception with the priority it was submitted with.
type Report struct {
	Exception errorx.Exception
	Priority  ErrorPriority
}

// Consumer handles one report. Failures are logged and never stop other consumers.
type Consumer func(r Report) error

type errorHandler struct {
	// mu orders submissions against shutdown: once closed is set under the
	// write lock no submission adds to wg.
	mu          sync.RWMutex
	closed      bool
	reports     chan Report
	consumers   []Consumer
	workerCount int
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	timeout     time.Duration
}

func newErrorHandler(bufferSize int, maxWorkers int, timeout time.Duration, consumers ...Consumer) *errorHandler {
	ctx, cancel := context.WithCancel(context.Background())

	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if bufferSize < 0 {
		bufferSize = 0
	}

	handler := &errorHandler{
		reports:     make(chan Report, bufferSize),
		consumers:   consumers,
		workerCount: maxWorkers,
		ctx:         ctx,
		cancel:      cancel,
		timeout:     timeout,
	}

	handler.start()

	return handler
}

func (h *errorHandler) start() {
	for i := 0; i < h.workerCount; i++ {
		h.wg.Add(1)
		go h.processErrors()
	}
}

func (h *errorHandler) processErrors() {
	defer h.wg.Done()

	for {
		select {
		case <-h.ctx.Done():
			h.drain()
			return
		case r := <-h.reports:
			h.handle(r)
		}
	}
}

// drain handles whatever is still queued once shutdown starts.
func (h *errorHandler) drain() {
	for {
		select {
		case r := <-h.reports:
			h.handle(r)
		default:
			return
		}
	}
}

func (h *errorHandler) handle(r Report) {
	for _, consumer := range h.consumers {
		h.consume(consumer, r)
	}
}

func (h *errorHandler) consume(consumer Consumer, r Report) {
	defer func() {
		if p := recover(); p != nil {
			logx.Errorw("error consumer panicked",
				logx.Field("panic", p),
				logx.Field("correlation_id", r.Exception.CorrelationID()))
		}
	}()

	if err := consumer(r); err != nil {
		logx.Errorw("error consumer failed",
			logx.Field("err", err),
			logx.Field("correlation_id", r.Exception.CorrelationID()))
	}
}

// submit enqueues a report. On a full queue error priority and above wait
// for room, the rest is dropped.
func (h *errorHandler) submit(ex errorx.Exception, priority ErrorPriority) bool {
	return h.enqueue(ex, priority, priority >= PriorityError)
}

// offer enqueues a report without ever waiting for room.
func (h *errorHandler) offer(ex errorx.Exception, priority ErrorPriority) bool {
	return h.enqueue(ex, priority, false)
}

func (h *errorHandler) enqueue(ex errorx.Exception, priority ErrorPriority, wait bool) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed || h.ctx.Err() != nil {
		logx.Errorw("error handler closed, report dropped", logx.Field("error", ex.LogString()))
		droppedTotal.WithLabelValues(priority.String()).Inc()
		return false
	}

	r := Report{Exception: ex, Priority: priority}

	// high priority reports bypass the queue
	if priority >= PriorityCritical {
		h.wg.Add(1)
		go func() {
			defer h.wg.Done()
			h.handle(r)
		}()
		return true
	}

	select {
	case h.reports <- r:
		return true
	default:
	}

	if wait {
		select {
		case h.reports <- r:
			return true
		case <-h.ctx.Done():
		}
	}

	logx.Errorw("discard unhandled error", logx.Field("error", ex.LogString()))
	droppedTotal.WithLabelValues(priority.String()).Inc()
	return false
}

func (h *errorHandler) shutdown() {
	// cancel first so that submissions waiting for room release the read lock
	h.cancel()

	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logx.Info("errorHandler is successfully closed")
	case <-time.After(h.timeout):
		// workers already saw cancel and will exit, they are just not awaited
		logx.Error("errorHandler shutdown timeout, some error processing may not complete")
	}
}

// ConvertIntoException returns the exception in err's chain, or wraps err
// as an INTERNAL_ERROR.
func ConvertIntoException(err error) errorx.Exception {
	if ex, ok := errorx.AsException(err); ok {
		return ex
	}
	return errorx.NewWithCause(errorx.CodeInternalError, "unclassified error", err)
}
