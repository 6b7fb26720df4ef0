package hexpatch

import (
	"log/slog"

	"github.com/hupe1980/hexpatch/neighborhood"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	neighborhood     neighborhood.Neighborhood
	parallelism      int
	verifyChecksum   bool
}

// Option configures dataset constructor behavior.
//
// Today options primarily exist to avoid exploding the API surface
// (e.g. logger-specific constructor variants).
type Option func(*options)

// WithBuildParallelism configures the number of goroutines used for the
// validity scan during dataset construction.
//
// Each cell's neighborhood check is independent, so the scan parallelizes
// cleanly. Values <= 1 keep the scan single-threaded (default). A good
// starting point for large datasets is runtime.NumCPU().
//
// The scan result is identical for every value: candidate order follows
// the data table regardless of how the work was split.
func WithBuildParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithNeighborhood configures the neighborhood backend used for disk
// queries during the validity scan and patch materialization.
//
// The dataset asks the backend for unchecked disks and performs its own
// membership check against the data table, so implementations only need
// to enumerate cells at ring distances. Default: the built-in
// neighborhood.Grid.
func WithNeighborhood(n neighborhood.Neighborhood) Option {
	return func(o *options) {
		o.neighborhood = n
	}
}

// WithVerifyChecksum configures snapshot checksum verification on open.
// Verification reads the whole snapshot body, so lazily served remote
// snapshots lose their laziness for the duration of the check.
//
// Only OpenSnapshot consults this option.
func WithVerifyChecksum(verify bool) Option {
	return func(o *options) {
		o.verifyChecksum = verify
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &hexpatch.BasicMetricsCollector{}
//	ds, _ := hexpatch.New(table, 2, hexpatch.WithMetricsCollector(metrics))
//	// ... use ds ...
//	stats := metrics.GetStats()
//	fmt.Printf("Patches: %d, Avg latency: %dns\n", stats.PatchCount, stats.PatchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := hexpatch.NewJSONLogger(slog.LevelInfo)
//	ds, _ := hexpatch.New(table, 2, hexpatch.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
