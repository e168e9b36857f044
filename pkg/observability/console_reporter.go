package observability

import (
	"log"
	"sync"
	"time"
)

// ConsoleReporter logs panics and errors to the standard logger. Meant
// for development, where standing up a Sentry project is overkill.
type ConsoleReporter struct {
	verbose bool
	mu      sync.Mutex
}

// NewConsoleReporter returns a reporter that logs to the standard
// logger. When verbose, it also logs the captured stack trace.
func NewConsoleReporter(verbose bool) *ConsoleReporter {
	return &ConsoleReporter{verbose: verbose}
}

func (r *ConsoleReporter) ReportPanic(err *HandlerPanicError, ctx *ErrorContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.Printf("[vdomx] panic: %v (native_type=%s attr=%s)", err, ctx.NativeType, ctx.Attr)
	if r.verbose && len(ctx.StackTrace) > 0 {
		log.Printf("[vdomx] stack:\n%s", ctx.StackTrace)
	}
}

func (r *ConsoleReporter) ReportError(err error, ctx *ErrorContext) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.Printf("[vdomx] error: %v (native_type=%s attr=%s)", err, ctx.NativeType, ctx.Attr)
}

func (r *ConsoleReporter) Flush(timeout time.Duration) error { return nil }

var _ Reporter = (*ConsoleReporter)(nil)
