// Package vdomx is the reconciler core's top-level convenience
// surface: a thin re-export over pkg/vdom's mount/reconcile API, plus
// option constructors that wire pkg/monitoring, pkg/observability and
// pkg/devtools into a mounted Root without pkg/vdom itself depending on
// any of them.
//
// # Quick Start
//
//	reg := prometheus.NewRegistry()
//	metrics := monitoring.NewMetrics(reg)
//	sched := scheduler.New()
//
//	sentryOpt, err := vdomx.WithSentryDSN(os.Getenv("SENTRY_DSN"))
//	if err != nil {
//	    return err
//	}
//	root, err := vdomx.Mount(app, container, handle, renderer, sched,
//	    vdomx.WithMetrics(metrics, sched),
//	    sentryOpt,
//	)
package vdomx

import (
	"github.com/arborview/vdomx/pkg/devtools"
	"github.com/arborview/vdomx/pkg/monitoring"
	"github.com/arborview/vdomx/pkg/observability"
	"github.com/arborview/vdomx/pkg/vdom"
)

// =============================================================================
// Core Types - Re-exported for convenient access
// =============================================================================

// View is a handle to one component instance. See pkg/vdom.View.
type View = vdom.View

// EventedView is a View that can receive a routed native event. See
// pkg/vdom.EventedView.
type EventedView = vdom.EventedView

// NativeType describes the platform type of a native component. See
// pkg/vdom.NativeType.
type NativeType = vdom.NativeType

// NativeHandle is an opaque, renderer-owned reference to a live native
// object.
type NativeHandle = vdom.NativeHandle

// Renderer is the narrow platform interface the reconciler drives.
// See pkg/vdom.Renderer.
type Renderer = vdom.Renderer

// Generation is a monotonically increasing counter stamping the
// render pass a value was last produced or consumed in.
type Generation = vdom.Generation

// Tracked pairs a value with the generation it was last assigned at.
type Tracked[T any] = vdom.Tracked[T]

// Location is the (line, column) of the source call-site that
// produced a View.
type Location = vdom.Location

// Identity uniquely distinguishes a component instance amongst its
// siblings.
type Identity = vdom.Identity

// Children is the "multi-children" render output variant produced by
// native components.
type Children = vdom.Children

// Root is the handle returned by Mount.
type Root = vdom.Root

// MountOption configures a Root at Mount time.
type MountOption = vdom.MountOption

// Unit is the View that renders nothing.
var Unit = vdom.Unit

// IsUnit reports whether v is the Unit view.
var IsUnit = vdom.IsUnit

// IdentityOf builds the Identity of a View.
var IdentityOf = vdom.IdentityOf

// =============================================================================
// Core Functions
// =============================================================================

// Mount creates a new UI tree rooted at nativeParent and renders child
// as its child. See pkg/vdom.Mount.
func Mount(child, nativeParent View, handle NativeHandle, renderer Renderer, sched vdom.Scheduler, opts ...MountOption) (*Root, error) {
	return vdom.Mount(child, nativeParent, handle, renderer, sched, opts...)
}

// WithChildrenOffset configures how many pre-existing native siblings
// sit before the mount point.
var WithChildrenOffset = vdom.WithChildrenOffset

// =============================================================================
// Options - Observability
// =============================================================================

// pendingCounter mirrors monitoring.pendingCounter locally so this
// package doesn't need monitoring to export it.
type pendingCounter interface{ Pending() int }

// WithMetrics wires a pkg/monitoring collector into the reconciler's
// turn boundaries, so CreateComponent/UpdateComponent/SwapChildren/
// ReplaceChild/TruncateChildren calls and turn durations surface as
// Prometheus metrics. sched is polled for queue depth after each turn.
func WithMetrics(m *monitoring.Metrics, sched pendingCounter) MountOption {
	return m.Hooks(sched)
}

// WithBreadcrumbs attaches an observability.TurnRecorder bounded to
// capacity turns, recording (turn index, dirty count, renderer-call
// count) for postmortem debugging after a crash; the core reports a
// dirty count of 0 on every turn. The recorder itself is returned so
// the caller can inspect Turns() later.
func WithBreadcrumbs(capacity int) (MountOption, *observability.TurnRecorder) {
	rec := observability.NewTurnRecorder(capacity)
	return rec.Hooks(), rec
}

// WithSentryDSN installs a Sentry-backed observability.Reporter as the
// process-wide error reporter, so panics recovered at a host's native
// dispatch boundary (via observability.Recover) are reported to
// Sentry. Initialization happens immediately (sentry.Init can fail on
// a malformed DSN); the returned option itself is a structural no-op,
// since Sentry reporting activates through Recover at the dispatch
// boundary rather than through a turn hook.
func WithSentryDSN(dsn string, opts ...observability.SentryOption) (MountOption, error) {
	reporter, err := observability.NewSentryReporter(dsn, opts...)
	if err != nil {
		return vdom.WithTurnHooks(nil, nil, nil), err
	}
	observability.SetReporter(reporter)
	return vdom.WithTurnHooks(nil, nil, nil), nil
}

// WithDevTools attaches a devtools.Recorder that snapshots the tree
// and records call counts after every turn.
func WithDevTools(rec *devtools.Recorder) MountOption {
	return rec.Hooks()
}
