package ingest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lumenquant/reactor/pkg/config"
	"github.com/lumenquant/reactor/pkg/engine"
	"github.com/lumenquant/reactor/pkg/logging"
)

// Bridge owns the ring buffer and the consumer loop that applies
// published events to an Engine and drives its stabilization passes.
// The consumer is the same goroutine that calls Engine.Stabilize, per
// the engine's single-threaded invocation model.
type Bridge struct {
	ring *ring
	eng  *engine.Engine
	wait waiter
	cfg  config.Config

	dropped atomic.Uint64

	onStabilize engine.PostStabilizeFunc
	logger      *logging.Logger
}

// New builds a Bridge over eng using cfg's ring capacity and wait
// strategy. cfg should already have passed Validate.
func New(eng *engine.Engine, cfg config.Config) (*Bridge, error) {
	r, err := newRing(cfg.RingCapacity)
	if err != nil {
		return nil, err
	}
	return &Bridge{
		ring:   r,
		eng:    eng,
		wait:   newWaiter(cfg.WaitStrategy),
		cfg:    cfg,
		logger: logging.New(logging.DefaultConfig()).WithEngineID(eng.ID()),
	}, nil
}

// SetPostStabilizeFunc registers the callback invoked on the consumer
// goroutine after every pass the bridge runs, typically to refresh a
// snapshot substrate. Not safe to call once Run has started.
func (b *Bridge) SetPostStabilizeFunc(fn engine.PostStabilizeFunc) {
	b.onStabilize = fn
}

// Publish enqueues ev for the consumer. It is the producer's only
// entry point and returns false if the ring has no free slot; the
// producer decides whether to retry or drop.
func (b *Bridge) Publish(ev UpdateEvent) bool {
	return b.ring.push(ev)
}

// DroppedEvents returns the number of events dropped because their
// target index did not name a source, or because the engine rejected
// the write (wrong node kind, bad vector index, or non-finite value).
func (b *Bridge) DroppedEvents() uint64 {
	return b.dropped.Load()
}

// Run drives the consumer loop until ctx is canceled. When
// cfg.BatchCoalescing is true it coalesces a drained batch into a
// single stabilization pass triggered by ForceFlush or an empty ring;
// when false every event gets its own pass regardless of ring state,
// trading throughput for the lowest possible per-event latency. Run
// never exits on a failed pass — the engine surfaces that failure
// through its own health flag, and Run keeps accepting events so the
// ring does not block a producer indefinitely.
func (b *Bridge) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev, ok := b.ring.pop()
		if !ok {
			b.wait.idle()
			continue
		}

		b.applyEvent(ev)

		if !b.cfg.BatchCoalescing || ev.ForceFlush || b.ring.empty() {
			b.runPass()
		}
	}
}

func (b *Bridge) applyEvent(ev UpdateEvent) {
	idx := int(ev.TargetIndex)
	topo := b.eng.Topology()
	if idx < 0 || idx >= topo.NodeCount() || !topo.IsSource(idx) {
		b.dropped.Add(1)
		return
	}

	var err error
	if ev.IsScalar() {
		err = b.eng.UpdateScalar(idx, ev.DoubleValue)
	} else {
		err = b.eng.UpdateVectorAt(idx, int(ev.VectorIndex), ev.DoubleValue)
	}
	if err != nil {
		b.dropped.Add(1)
	}
}

func (b *Bridge) runPass() {
	n, err := b.eng.Stabilize()
	if err != nil {
		b.logger.WithEpoch(b.eng.Epoch()).WithError(err).Error("stabilization pass failed")
		return
	}
	if b.onStabilize != nil {
		b.onStabilize(b.eng.Epoch(), n)
	}
}

// Shutdown drains any events still queued, running at most one final
// pass, and returns once the ring is empty or deadline elapses first.
func (b *Bridge) Shutdown(deadline time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), deadline)
	defer cancel()

	appliedAny := false
	for !b.ring.empty() {
		select {
		case <-ctx.Done():
			b.logger.Warn("shutdown drain deadline exceeded with events still queued")
			if appliedAny {
				b.runPass()
			}
			return
		default:
		}
		ev, ok := b.ring.pop()
		if !ok {
			break
		}
		b.applyEvent(ev)
		appliedAny = true
	}
	if appliedAny {
		b.runPass()
	}
}
