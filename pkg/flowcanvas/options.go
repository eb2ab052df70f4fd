package flowcanvas

import (
	"log/slog"
	"time"

	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/event"
	"github.com/randalmurphal/flowcanvas/pkg/flowcanvas/observability"
)

// storeConfig holds Store dependencies.
type storeConfig struct {
	logger       *slog.Logger
	metrics      observability.MetricsRecorder
	bus          event.Bus
	clock        func() time.Time
	historyLimit int
}

func defaultStoreConfig() storeConfig {
	return storeConfig{
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		clock:   time.Now,
	}
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

// WithLogger sets the logger for command tracing.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) StoreOption {
	return func(c *storeConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}
//
// Example:
//
//	store := flowcanvas.NewStore(
//	    flowcanvas.WithMetrics(observability.NewMetricsRecorder()),
//	)
func WithMetrics(m observability.MetricsRecorder) StoreOption {
	return func(c *storeConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithEventBus publishes a change event after every applied command.
// Events are published after the store lock is released, so handlers may
// read the store.
func WithEventBus(bus event.Bus) StoreOption {
	return func(c *storeConfig) {
		c.bus = bus
	}
}

// WithClock sets the time source used for UpdatedAt.
// Default: time.Now
func WithClock(now func() time.Time) StoreOption {
	return func(c *storeConfig) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithHistoryLimit caps the number of stored snapshots. When a checkpoint
// would exceed n, the oldest snapshot is dropped.
// Default: 0 (unlimited)
func WithHistoryLimit(n int) StoreOption {
	return func(c *storeConfig) {
		if n > 0 {
			c.historyLimit = n
		}
	}
}
