package hexpatch

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    buildCounter   prometheus.Counter
//	    patchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordBuild(cells, valid int, duration time.Duration, err error) {
//	    p.buildCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordBuild is called after each dataset build.
	// cells is the number of cells scanned, valid is the number kept,
	// duration is the total time taken, err is nil if successful.
	RecordBuild(cells, valid int, duration time.Duration, err error)

	// RecordPatch is called after each patch materialization.
	// duration is the time taken, err is nil if successful.
	RecordPatch(duration time.Duration, err error)

	// RecordExport is called after each snapshot export.
	// count is the number of patches written, duration is the total time taken.
	RecordExport(count int, duration time.Duration, err error)

	// RecordOpen is called after each snapshot open.
	RecordOpen(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordPatch(time.Duration, error)           {}
func (NoopMetricsCollector) RecordExport(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordOpen(time.Duration, error)            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	BuildCells      atomic.Int64
	BuildValid      atomic.Int64
	PatchCount      atomic.Int64
	PatchErrors     atomic.Int64
	PatchTotalNanos atomic.Int64
	ExportCount     atomic.Int64
	ExportErrors    atomic.Int64
	ExportPatches   atomic.Int64
	OpenCount       atomic.Int64
	OpenErrors      atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(cells, valid int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	b.BuildCells.Add(int64(cells))
	b.BuildValid.Add(int64(valid))
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordPatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPatch(duration time.Duration, err error) {
	b.PatchCount.Add(1)
	b.PatchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PatchErrors.Add(1)
	}
}

// RecordExport implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExport(count int, duration time.Duration, err error) {
	b.ExportCount.Add(1)
	b.ExportPatches.Add(int64(count))
	if err != nil {
		b.ExportErrors.Add(1)
	}
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(duration time.Duration, err error) {
	b.OpenCount.Add(1)
	if err != nil {
		b.OpenErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:    b.BuildCount.Load(),
		BuildErrors:   b.BuildErrors.Load(),
		BuildAvgNanos: b.getAvgBuildNanos(),
		BuildCells:    b.BuildCells.Load(),
		BuildValid:    b.BuildValid.Load(),
		PatchCount:    b.PatchCount.Load(),
		PatchErrors:   b.PatchErrors.Load(),
		PatchAvgNanos: b.getAvgPatchNanos(),
		ExportCount:   b.ExportCount.Load(),
		ExportErrors:  b.ExportErrors.Load(),
		ExportPatches: b.ExportPatches.Load(),
		OpenCount:     b.OpenCount.Load(),
		OpenErrors:    b.OpenErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgBuildNanos() int64 {
	count := b.BuildCount.Load()
	if count == 0 {
		return 0
	}
	return b.BuildTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgPatchNanos() int64 {
	count := b.PatchCount.Load()
	if count == 0 {
		return 0
	}
	return b.PatchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount    int64
	BuildErrors   int64
	BuildAvgNanos int64
	BuildCells    int64
	BuildValid    int64
	PatchCount    int64
	PatchErrors   int64
	PatchAvgNanos int64
	ExportCount   int64
	ExportErrors  int64
	ExportPatches int64
	OpenCount     int64
	OpenErrors    int64
}
