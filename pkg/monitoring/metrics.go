// Package monitoring exposes the reconciler's turn-by-turn activity as
// Prometheus metrics: how many renderer calls of each kind a mounted
// tree has emitted, how long a turn takes, and how deep the scheduler
// queue runs. None of this is read by pkg/vdom itself — it is wired in
// purely through the turn-hook closures vdom.WithTurnHooks accepts, so
// the core stays free of any metrics dependency.
package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arborview/vdomx/pkg/vdom"
)

// Metrics holds the collectors for one mounted tree.
type Metrics struct {
	createComponent  prometheus.Counter
	updateComponent  prometheus.Counter
	swapChildren     prometheus.Counter
	replaceChild     prometheus.Counter
	truncateChildren prometheus.Counter
	subtreeRender    prometheus.Histogram
	queueDepth       prometheus.Gauge

	mu        sync.Mutex
	turnStart time.Time
}

// NewMetrics creates and registers the collectors against reg. Pass
// prometheus.NewRegistry() to isolate metrics per mounted tree (tests,
// or a host mounting several trees in one process), or
// prometheus.DefaultRegisterer for a single process-wide view.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		createComponent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vdom_create_component_total",
			Help: "Total CreateComponent calls emitted to the renderer.",
		}),
		updateComponent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vdom_update_component_total",
			Help: "Total UpdateComponent calls emitted to the renderer.",
		}),
		swapChildren: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vdom_swap_children_total",
			Help: "Total SwapChildren calls emitted to the renderer.",
		}),
		replaceChild: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vdom_replace_child_total",
			Help: "Total ReplaceChild calls emitted to the renderer.",
		}),
		truncateChildren: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vdom_truncate_children_total",
			Help: "Total TruncateChildren calls emitted to the renderer.",
		}),
		subtreeRender: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vdom_subtree_render_seconds",
			Help:    "Wall-clock duration of one drained turn, lock held throughout.",
			Buckets: prometheus.DefBuckets,
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vdom_scheduler_queue_depth",
			Help: "Number of tasks pending in the scheduler queue, sampled after each turn.",
		}),
	}
	reg.MustRegister(m.createComponent, m.updateComponent, m.swapChildren,
		m.replaceChild, m.truncateChildren, m.subtreeRender, m.queueDepth)
	return m
}

// pendingCounter is the subset of scheduler.Scheduler Metrics needs to
// sample queue depth after a turn. *scheduler.FIFO satisfies it.
type pendingCounter interface {
	Pending() int
}

// Hooks returns the vdom.MountOption wiring m into a Root's turn
// boundaries and renderer calls. sched, if non-nil, is polled for
// queue depth after every turn.
//
//	reg := prometheus.NewRegistry()
//	m := monitoring.NewMetrics(reg)
//	root, err := vdom.Mount(child, parent, handle, renderer, sched, m.Hooks(sched))
func (m *Metrics) Hooks(sched pendingCounter) vdom.MountOption {
	after := func(int) { m.afterTurn(sched) }
	return vdom.WithTurnHooks(m.beforeTurn, after, m.onCall)
}

func (m *Metrics) beforeTurn() {
	m.mu.Lock()
	m.turnStart = time.Now()
	m.mu.Unlock()
}

func (m *Metrics) afterTurn(sched pendingCounter) {
	m.mu.Lock()
	started := m.turnStart
	m.mu.Unlock()

	if !started.IsZero() {
		m.subtreeRender.Observe(time.Since(started).Seconds())
	}
	if sched != nil {
		m.queueDepth.Set(float64(sched.Pending()))
	}
}

func (m *Metrics) onCall(op string) {
	switch op {
	case "CreateComponent":
		m.createComponent.Inc()
	case "UpdateComponent":
		m.updateComponent.Inc()
	case "SwapChildren":
		m.swapChildren.Inc()
	case "ReplaceChild":
		m.replaceChild.Inc()
	case "TruncateChildren":
		m.truncateChildren.Inc()
	}
}
