package observability

import (
	"context"
	"fmt"

	"github.com/lumenquant/reactor/pkg/config"
)

// Build constructs the Listener named by cfg.Kind ("latency", "profile",
// or "metrics"). "profile" is sized from nodeNames; "metrics" requires
// a MetricsProvider and a context to record against. An unknown kind
// is an error rather than a silent no-op listener, since a
// misconfigured observer silently doing nothing is exactly the
// footgun Composite.Add's doc comment exists to avoid.
func Build(cfg config.ListenerConfig, nodeNames []string, mp *MetricsProvider, ctx context.Context) (Listener, error) {
	switch cfg.Kind {
	case "latency":
		return NewLatencyAggregator(), nil
	case "profile":
		return NewProfile(nodeNames), nil
	case "metrics":
		if mp == nil {
			return nil, fmt.Errorf("observability: listener kind %q requires a MetricsProvider", cfg.Kind)
		}
		return NewMetricsListener(mp, ctx), nil
	default:
		return nil, fmt.Errorf("observability: unknown listener kind %q", cfg.Kind)
	}
}
