package errorreporter

import (
	"sync"
	"time"

	"github.com/lumenquant/reactor/pkg/logging"
)

// Reporter throttles repeated error logging for a single recurring
// failure source (typically one operator). It is safe for concurrent
// use, though the engine's single-threaded invocation model means
// contention is not expected in practice.
type Reporter struct {
	mu       sync.Mutex
	interval time.Duration
	lastLog  time.Time
	logger   *logging.Logger
}

// New returns a Reporter that logs at most once per interval through
// logger. A zero interval logs every call.
func New(interval time.Duration, logger *logging.Logger) *Reporter {
	return &Reporter{
		interval: interval,
		logger:   logger,
	}
}

// Report logs message and err if at least interval has elapsed since
// the previous successful log. It returns whether it actually logged.
func (r *Reporter) Report(message string, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if !r.lastLog.IsZero() && now.Sub(r.lastLog) < r.interval {
		return false
	}
	r.lastLog = now
	r.logger.WithError(err).Warn(message)
	return true
}

// IsOpen reports whether the reporter is still within its cooldown
// window (i.e. a call to Report right now would be suppressed).
// Callers use this as a circuit breaker to skip expensive work that
// would only produce another throttled log line.
func (r *Reporter) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastLog.IsZero() {
		return false
	}
	return time.Since(r.lastLog) < r.interval
}
