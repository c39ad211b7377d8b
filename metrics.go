package qsched

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordFormulation is called after each QUBO formulation.
	// duration is the build time, err is nil if successful.
	RecordFormulation(duration time.Duration, err error)

	// RecordSolve is called after each solve run with the backend that
	// produced the result.
	RecordSolve(backend string, duration time.Duration, err error)

	// RecordHardwareFallback is called when a hardware failure degraded
	// a solve to the classical solver.
	RecordHardwareFallback()

	// RecordArchive is called after each run-record archival submission.
	RecordArchive(err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFormulation(time.Duration, error)   {}
func (NoopMetricsCollector) RecordSolve(string, time.Duration, error) {}
func (NoopMetricsCollector) RecordHardwareFallback()                  {}
func (NoopMetricsCollector) RecordArchive(error)                      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FormulationCount      atomic.Int64
	FormulationErrors     atomic.Int64
	FormulationTotalNanos atomic.Int64
	SolveCount            atomic.Int64
	SolveErrors           atomic.Int64
	SolveTotalNanos       atomic.Int64
	HardwareFallbacks     atomic.Int64
	ArchiveCount          atomic.Int64
	ArchiveErrors         atomic.Int64
}

// RecordFormulation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFormulation(duration time.Duration, err error) {
	b.FormulationCount.Add(1)
	b.FormulationTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FormulationErrors.Add(1)
	}
}

// RecordSolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSolve(_ string, duration time.Duration, err error) {
	b.SolveCount.Add(1)
	b.SolveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SolveErrors.Add(1)
	}
}

// RecordHardwareFallback implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHardwareFallback() {
	b.HardwareFallbacks.Add(1)
}

// RecordArchive implements MetricsCollector.
func (b *BasicMetricsCollector) RecordArchive(err error) {
	b.ArchiveCount.Add(1)
	if err != nil {
		b.ArchiveErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FormulationCount:  b.FormulationCount.Load(),
		FormulationErrors: b.FormulationErrors.Load(),
		SolveCount:        b.SolveCount.Load(),
		SolveErrors:       b.SolveErrors.Load(),
		SolveAvgNanos:     b.getAvgSolveNanos(),
		HardwareFallbacks: b.HardwareFallbacks.Load(),
		ArchiveCount:      b.ArchiveCount.Load(),
		ArchiveErrors:     b.ArchiveErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSolveNanos() int64 {
	count := b.SolveCount.Load()
	if count == 0 {
		return 0
	}
	return b.SolveTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FormulationCount  int64
	FormulationErrors int64
	SolveCount        int64
	SolveErrors       int64
	SolveAvgNanos     int64
	HardwareFallbacks int64
	ArchiveCount      int64
	ArchiveErrors     int64
}
