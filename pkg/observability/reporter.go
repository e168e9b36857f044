// Package observability provides pluggable error reporting and a
// breadcrumb trail for diagnosing panics raised from inside
// EventedView.HandleEvent implementations. pkg/vdom itself never
// catches such panics — HandleEvent runs inside a scheduled task, so
// they propagate out of Root.Drain — but a host embedding the
// reconciler can wrap its Drain call with Recover to report the panic,
// with the breadcrumb trail, before it continues to propagate.
package observability

import (
	"fmt"
	"sync"
	"time"
)

// HandlerPanicError wraps a panic recovered from an EventedView's
// HandleEvent.
type HandlerPanicError struct {
	NativeType string
	Attr       string
	PanicValue any
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("panic handling event %q on native type %q: %v", e.Attr, e.NativeType, e.PanicValue)
}

// ErrorContext carries the context a reporter needs to make a panic or
// error actionable: which native component it happened on, what
// attribute was being handled, and the breadcrumb trail leading up to
// it.
type ErrorContext struct {
	NativeType  string
	Attr        string
	Timestamp   time.Time
	Tags        map[string]string
	Extra       map[string]any
	Breadcrumbs []Breadcrumb
	StackTrace  []byte
}

// Reporter is a pluggable error-tracking backend. A nil Reporter
// (the zero value of the package-level accessor) makes reporting a
// silent no-op.
type Reporter interface {
	ReportPanic(err *HandlerPanicError, ctx *ErrorContext)
	ReportError(err error, ctx *ErrorContext)
	Flush(timeout time.Duration) error
}

var (
	globalMu       sync.RWMutex
	globalReporter Reporter
)

// SetReporter installs the process-wide reporter. Pass nil to disable.
func SetReporter(r Reporter) {
	globalMu.Lock()
	globalReporter = r
	globalMu.Unlock()
}

// GetReporter returns the currently installed reporter, or nil.
func GetReporter() Reporter {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalReporter
}

// Recover is meant to sit in a deferred call around the host's
// Root.Drain call, where routed event handlers run; nativeType and
// attr are labels the host chooses for the report:
//
//	drain := func() bool {
//	    defer observability.Recover("root", "drain")
//	    return root.Drain()
//	}
//
// It reports the panic (if any) to the installed Reporter along with
// the current breadcrumb trail, then re-panics so the host's own
// top-level recovery (if any) still sees the failure.
func Recover(nativeType, attr string) {
	r := recover()
	if r == nil {
		return
	}
	if reporter := GetReporter(); reporter != nil {
		reporter.ReportPanic(&HandlerPanicError{
			NativeType: nativeType,
			Attr:       attr,
			PanicValue: r,
		}, &ErrorContext{
			NativeType:  nativeType,
			Attr:        attr,
			Timestamp:   time.Now(),
			Breadcrumbs: GetBreadcrumbs(),
		})
	}
	panic(r)
}
