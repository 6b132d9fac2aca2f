package errorhandler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlovtnik/rclabsAPI-sub003/internal/mapper"
	"github.com/zlovtnik/rclabsAPI-sub003/internal/types/errorx"
)

type nopLogger struct{}

func (nopLogger) Log(context.Context, string, mapper.Severity, string, string) {}

type collector struct {
	mu      sync.Mutex
	reports []Report
}

func (c *collector) consume(r Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, r)
	return nil
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reports)
}

func TestPriorityOf(t *testing.T) {
	tests := []struct {
		code errorx.ErrorCode
		want ErrorPriority
	}{
		{errorx.CodeMemoryError, PriorityCritical},
		{errorx.CodeDiskFull, PriorityCritical},
		{errorx.CodeDatabaseError, PriorityError},
		{errorx.CodeInternalError, PriorityError},
		{errorx.CodeJobExecutionFailed, PriorityError},
		{errorx.CodeJobNotFound, PriorityWarn},
		{errorx.CodeRateLimitExceeded, PriorityWarn},
		{errorx.CodeInvalidInput, PriorityInfo},
		{errorx.CodeTokenExpired, PriorityInfo},
		{errorx.ErrorCode(99999), PriorityWarn},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, PriorityOf(tt.code))
		})
	}
}

func TestHandlerDeliversToEveryConsumer(t *testing.T) {
	var a, b collector
	h := newErrorHandler(16, 2, time.Second, a.consume, b.consume)

	for i := 0; i < 10; i++ {
		assert.True(t, h.submit(errorx.New(errorx.CodeJobNotFound, "x"), PriorityWarn))
	}
	h.shutdown()

	assert.Equal(t, 10, a.len())
	assert.Equal(t, 10, b.len())
	assert.Equal(t, PriorityWarn, a.reports[0].Priority)
}

func TestCriticalBypassesQueue(t *testing.T) {
	var c collector
	// no buffer and a blocked worker: only the bypass can deliver
	block := make(chan struct{})
	h := newErrorHandler(0, 1, time.Second, func(r Report) error {
		if r.Priority < PriorityCritical {
			<-block
		}
		return c.consume(r)
	})

	assert.True(t, h.submit(errorx.New(errorx.CodeMemoryError, "oom"), PriorityCritical))
	assert.Eventually(t, func() bool { return c.len() == 1 }, time.Second, 10*time.Millisecond)

	close(block)
	h.shutdown()
}

func TestLowPriorityDroppedWhenFull(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{}, 1)
	h := newErrorHandler(1, 1, time.Second, func(Report) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
		return nil
	})

	require.True(t, h.submit(errorx.New(errorx.CodeInvalidInput, "1"), PriorityInfo))
	<-started
	require.True(t, h.submit(errorx.New(errorx.CodeInvalidInput, "2"), PriorityInfo))
	assert.False(t, h.submit(errorx.New(errorx.CodeInvalidInput, "3"), PriorityInfo))

	close(block)
	h.shutdown()
}

func TestSubmitAfterShutdownIsDropped(t *testing.T) {
	var c collector
	h := newErrorHandler(4, 1, time.Second, c.consume)
	h.shutdown()

	assert.False(t, h.submit(errorx.New(errorx.CodeDatabaseError, "x"), PriorityError))
	assert.Zero(t, c.len())
}

func TestFailingConsumerDoesNotStopOthers(t *testing.T) {
	var c collector
	var calls atomic.Int32
	h := newErrorHandler(4, 1, time.Second,
		func(Report) error { calls.Add(1); return errors.New("sink down") },
		func(Report) error { calls.Add(1); panic("sink exploded") },
		c.consume,
	)

	h.submit(errorx.New(errorx.CodeProcessingFailed, "x"), PriorityError)
	h.shutdown()

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 1, c.len())
}

func TestShutdownTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	h := newErrorHandler(1, 1, 20*time.Millisecond, func(Report) error {
		<-block
		return nil
	})
	h.submit(errorx.New(errorx.CodeInternalError, "x"), PriorityError)

	start := time.Now()
	h.shutdown()
	assert.Less(t, time.Since(start), time.Second)
}

func TestConvertIntoException(t *testing.T) {
	ex := errorx.New(errorx.CodeJobNotFound, "missing")
	assert.Same(t, ex, ConvertIntoException(ex))

	plain := errors.New("plain")
	converted := ConvertIntoException(plain)
	assert.Equal(t, errorx.CodeInternalError, converted.Code())
	assert.ErrorIs(t, converted, plain)
}

func TestMetricsConsumer(t *testing.T) {
	counter := reportsTotal.WithLabelValues(errorx.CategoryBusiness, "warn")
	before := testutil.ToFloat64(counter)

	require.NoError(t, MetricsConsumer(Report{Exception: errorx.New(errorx.CodeJobNotFound, "x"), Priority: PriorityWarn}))
	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	reg := prometheus.NewRegistry()
	assert.NotPanics(t, func() { RegisterMetrics(reg) })
}

func TestPriorityConsumerNeverPanics(t *testing.T) {
	for p := PriorityDebug; p <= PriorityFatal+1; p++ {
		r := Report{Exception: errorx.New(errorx.CodeInternalError, "x"), Priority: p}
		assert.NotPanics(t, func() { _ = PriorityConsumer(r) })
	}
}

func TestOfferNeverWaits(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{}, 1)
	h := newErrorHandler(1, 1, time.Second, func(Report) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
		return nil
	})
	defer h.shutdown()
	defer close(block)

	require.True(t, h.offer(errorx.New(errorx.CodeDatabaseError, "1"), PriorityError))
	<-started
	require.True(t, h.offer(errorx.New(errorx.CodeDatabaseError, "2"), PriorityError))

	dropped := droppedTotal.WithLabelValues(PriorityError.String())
	before := testutil.ToFloat64(dropped)

	start := time.Now()
	assert.False(t, h.offer(errorx.New(errorx.CodeDatabaseError, "3"), PriorityError))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(dropped))
}

func TestMappingDoesNotBlockOnFullQueue(t *testing.T) {
	block := make(chan struct{})
	h := newErrorHandler(1, 1, time.Second, func(Report) error {
		<-block
		return nil
	})

	prev := defaultErrorHandler
	defaultErrorHandler = h
	defer func() {
		close(block)
		h.shutdown()
		defaultErrorHandler = prev
	}()

	m := mapper.New(mapper.DefaultConfig(), mapper.WithLogger(nopLogger{}), mapper.WithReporter(Report))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			ex := errorx.NewSystemError(errorx.CodeDatabaseError, "Connection failed", "PostgreSQL", nil)
			resp := m.MapException(context.Background(), ex, "query")
			assert.Equal(t, http.StatusServiceUnavailable, resp.Status)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mapping stalled on the report queue")
	}
}

func TestSubmitDuringShutdown(t *testing.T) {
	var c collector
	h := newErrorHandler(4, 2, time.Second, c.consume)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.submit(errorx.New(errorx.CodeMemoryError, "oom"), PriorityCritical)
			h.submit(errorx.New(errorx.CodeDatabaseError, "down"), PriorityError)
		}()
	}

	assert.NotPanics(t, h.shutdown)
	wg.Wait()

	assert.False(t, h.submit(errorx.New(errorx.CodeMemoryError, "late"), PriorityCritical))
}
