package observability

import (
	"context"
	"time"
)

// MetricsListener adapts a MetricsProvider to the Listener interface so
// it can be registered with Engine.AddListener alongside
// LatencyAggregator/Profile. It times each pass itself from
// OnPassStart to OnPassEnd; per-node durations come from the single
// duration OnNodeStabilized reports, and OnNodeError records a zero
// duration alongside the error count.
type MetricsListener struct {
	mp         *MetricsProvider
	ctx        context.Context
	pass       time.Time
	passFailed bool
}

// NewMetricsListener returns a Listener that forwards pass and node
// events to mp. ctx is used for every metric recording call; pass a
// long-lived context such as context.Background.
func NewMetricsListener(mp *MetricsProvider, ctx context.Context) *MetricsListener {
	return &MetricsListener{mp: mp, ctx: ctx}
}

func (l *MetricsListener) OnPassStart(epoch uint64) {
	l.pass = time.Now()
	l.passFailed = false
}

func (l *MetricsListener) OnNodeStabilized(epoch uint64, topoIndex int, name string, changed bool, durationNs int64) {
	l.mp.RecordNode(l.ctx, name, time.Duration(durationNs), nil)
}

func (l *MetricsListener) OnNodeError(epoch uint64, topoIndex int, name string, err error) {
	l.passFailed = true
	l.mp.RecordNode(l.ctx, name, 0, err)
}

func (l *MetricsListener) OnPassEnd(epoch uint64, nodesStabilized int) {
	l.mp.RecordPass(l.ctx, epoch, time.Since(l.pass), nodesStabilized)
	l.mp.SetHealthy(!l.passFailed)
}
