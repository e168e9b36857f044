package observability

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryOption configures the Sentry client used by NewSentryReporter.
type SentryOption func(*sentry.ClientOptions)

// WithEnvironment tags every event with the given environment.
func WithEnvironment(env string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Environment = env }
}

// WithRelease tags every event with the given release identifier.
func WithRelease(release string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Release = release }
}

// SentryReporter reports panics and errors to Sentry.
type SentryReporter struct {
	hub *sentry.Hub
}

// NewSentryReporter initializes the Sentry SDK with dsn and returns a
// Reporter backed by it. An empty dsn disables sending events, which
// is useful in tests.
func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return nil, fmt.Errorf("observability: init sentry: %w", err)
	}
	return &SentryReporter{hub: sentry.CurrentHub()}, nil
}

func (r *SentryReporter) ReportPanic(err *HandlerPanicError, ctx *ErrorContext) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		applyScope(scope, ctx)
		scope.SetExtra("panic_value", err.PanicValue)
		r.hub.CaptureException(fmt.Errorf("vdomx: %w", err))
	})
}

func (r *SentryReporter) ReportError(err error, ctx *ErrorContext) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		applyScope(scope, ctx)
		r.hub.CaptureException(err)
	})
}

func (r *SentryReporter) Flush(timeout time.Duration) error {
	sentry.Flush(timeout)
	return nil
}

func applyScope(scope *sentry.Scope, ctx *ErrorContext) {
	scope.SetTag("native_type", ctx.NativeType)
	if ctx.Attr != "" {
		scope.SetTag("attr", ctx.Attr)
	}
	for k, v := range ctx.Tags {
		scope.SetTag(k, v)
	}
	for k, v := range ctx.Extra {
		scope.SetExtra(k, v)
	}
	for _, bc := range ctx.Breadcrumbs {
		scope.AddBreadcrumb(&sentry.Breadcrumb{
			Category:  bc.Category,
			Message:   bc.Message,
			Timestamp: bc.Timestamp,
			Data:      bc.Data,
		}, MaxBreadcrumbs)
	}
}

var _ Reporter = (*SentryReporter)(nil)
