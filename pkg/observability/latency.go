package observability

import "time"

// LatencyAggregator maintains count/sum/min/max pass duration across
// many passes. It does no per-node work; per-node timing lives in
// Profile. LatencyAggregator implements Listener directly so it can be
// registered with Engine.AddListener on its own, without Profile's
// per-node bookkeeping.
type LatencyAggregator struct {
	count     int64
	sumNs     int64
	minNs     int64
	maxNs     int64
	passStart time.Time
}

// NewLatencyAggregator returns an empty LatencyAggregator.
func NewLatencyAggregator() *LatencyAggregator {
	return &LatencyAggregator{}
}

// Record folds one pass's duration into the aggregate.
func (a *LatencyAggregator) Record(durationNs int64) {
	if a.count == 0 || durationNs < a.minNs {
		a.minNs = durationNs
	}
	if durationNs > a.maxNs {
		a.maxNs = durationNs
	}
	a.sumNs += durationNs
	a.count++
}

// Count returns the number of passes recorded.
func (a *LatencyAggregator) Count() int64 { return a.count }

// Min returns the fastest recorded pass duration in nanoseconds.
func (a *LatencyAggregator) Min() int64 { return a.minNs }

// Max returns the slowest recorded pass duration in nanoseconds.
func (a *LatencyAggregator) Max() int64 { return a.maxNs }

// Avg returns the mean pass duration in nanoseconds, or 0 if no pass
// has been recorded.
func (a *LatencyAggregator) Avg() float64 {
	if a.count == 0 {
		return 0
	}
	return float64(a.sumNs) / float64(a.count)
}

func (a *LatencyAggregator) OnPassStart(epoch uint64) { a.passStart = time.Now() }

func (a *LatencyAggregator) OnNodeStabilized(epoch uint64, topoIndex int, name string, changed bool, durationNs int64) {
}

func (a *LatencyAggregator) OnNodeError(epoch uint64, topoIndex int, name string, err error) {}

func (a *LatencyAggregator) OnPassEnd(epoch uint64, nodesStabilized int) {
	a.Record(time.Since(a.passStart).Nanoseconds())
}
