package errorx

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"
)

const (
	maxStackDepth = 32
	maxTreeDepth  = 100
)

// captureStack records up to maxStackDepth frames above its caller, skipping
// skip extra frames and any function matching a filter prefix.
func captureStack(skip int, filters []string) []string {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	out := make([]string, 0, n)
	for {
		f, more := frames.Next()
		if !filtered(f.Function, filters) {
			out = append(out, fmt.Sprintf("%s:%d %s", f.File, f.Line, f.Function))
		}
		if !more {
			return out
		}
	}
}

func filtered(function string, filters []string) bool {
	for _, prefix := range filters {
		if strings.HasPrefix(function, prefix) {
			return true
		}
	}
	return false
}

// treePrinter renders an error chain as an indented tree.
type treePrinter struct {
	w    io.Writer
	seen map[*ErrorX]bool
}

func (p *treePrinter) print(err error, indent string, depth int) error {
	if depth > maxTreeDepth {
		_, werr := fmt.Fprintf(p.w, "%s└── ... (max depth reached)\n", indent)
		return werr
	}

	var ex Exception
	if !errors.As(err, &ex) {
		_, werr := fmt.Fprintf(p.w, "%s└── %v\n", indent, err)
		return werr
	}

	e := ex.base()
	if p.seen[e] {
		_, werr := fmt.Fprintf(p.w, "%s└── (cycle)\n", indent)
		return werr
	}
	p.seen[e] = true

	if _, werr := fmt.Fprintf(p.w, "%s└── %s [%s] %s\n", indent, e.kind, e.code, e.msg); werr != nil {
		return werr
	}

	child := indent + "    "
	if snapshot := e.ctx.Snapshot(); len(snapshot) > 0 {
		if _, werr := fmt.Fprintf(p.w, "%s├── Context:\n", child); werr != nil {
			return werr
		}
		for _, k := range sortedKeys(snapshot) {
			if _, werr := fmt.Fprintf(p.w, "%s│   %s: %s\n", child, k, snapshot[k]); werr != nil {
				return werr
			}
		}
	}

	if e.Cause == nil {
		return nil
	}
	return p.print(e.Cause, child, depth+1)
}

// clone returns a generic exception with a new code and message that keeps
// e's context and correlation id and wraps cause.
func (e *ErrorX) clone(code ErrorCode, msg string, cause error) *ErrorX {
	c := &ErrorX{
		Cause:         cause,
		code:          code,
		msg:           msg,
		kind:          KindGeneric,
		ctx:           e.ctx.Copy(),
		time:          time.Now(),
		correlationID: e.CorrelationID(),
	}

	if st := currentStack(); st.enabled {
		c.Stack = captureStack(2, st.filters)
	}

	metrics.exceptionsCreated.WithLabelValues(KindGeneric.String(), Category(code)).Inc()
	return c
}
