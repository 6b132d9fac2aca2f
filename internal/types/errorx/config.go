package errorx

import "sync/atomic"

// stackSettings is swapped as a whole so readers never see a half update.
type stackSettings struct {
	enabled bool
	// frames whose function starts with one of these prefixes are dropped
	filters []string
}

var stack atomic.Pointer[stackSettings]

func init() {
	Initialize()
}

// Option tunes Initialize.
type Option func(*stackSettings)

// Initialize resets the package settings: stack capture on, no filters,
// then applies opts.
func Initialize(opts ...Option) {
	st := &stackSettings{enabled: true}
	for _, opt := range opts {
		opt(st)
	}
	stack.Store(st)
}

// WithStackTracing turns stack capture on or off for new exceptions.
func WithStackTracing(enabled bool) Option {
	return func(st *stackSettings) {
		st.enabled = enabled
	}
}

// WithStackFilters drops frames of the given package prefixes, e.g. "runtime.".
func WithStackFilters(packages ...string) Option {
	return func(st *stackSettings) {
		st.filters = append([]string(nil), packages...)
	}
}

// EnableStackTracing flips stack capture and keeps the current filters.
func EnableStackTracing(enabled bool) {
	next := *currentStack()
	next.enabled = enabled
	stack.Store(&next)
}

func currentStack() *stackSettings {
	if st := stack.Load(); st != nil {
		return st
	}
	return &stackSettings{}
}
