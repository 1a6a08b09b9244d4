package ingest

import (
	"runtime"
	"time"

	"github.com/lumenquant/reactor/pkg/config"
)

// waiter backs off the consumer between empty polls of the ring
// according to the configured strategy. Spin never yields the
// processor (lowest latency, highest CPU use); yield calls
// runtime.Gosched between polls; block sleeps briefly, approximating
// a park/unpark primitive without the complexity of a condition
// variable shared with the producer.
type waiter struct {
	strategy config.WaitStrategy
}

func newWaiter(strategy config.WaitStrategy) waiter {
	return waiter{strategy: strategy}
}

func (w waiter) idle() {
	switch w.strategy {
	case config.WaitSpin:
		return
	case config.WaitYield:
		runtime.Gosched()
	case config.WaitBlock:
		time.Sleep(100 * time.Microsecond)
	}
}
