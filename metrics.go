package localsearch

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordFind is called after each search. found is the number of
	// results returned, duration the total time taken, err nil on success.
	RecordFind(found int, duration time.Duration, err error)

	// RecordUpdate is called after AddOrUpdate/UpdateDocuments. count is
	// the number of documents given.
	RecordUpdate(count int, duration time.Duration, err error)

	// RecordDelete is called after each delete. removed is the number of
	// keys actually removed.
	RecordDelete(removed int, duration time.Duration, err error)

	// RecordClear is called after each ClearIndex.
	RecordClear(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFind(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordUpdate(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordDelete(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordClear(time.Duration, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FindCount       atomic.Int64
	FindErrors      atomic.Int64
	FindTotalNanos  atomic.Int64
	ResultsReturned atomic.Int64

	UpdateCount      atomic.Int64
	UpdateErrors     atomic.Int64
	DocumentsWritten atomic.Int64

	DeleteCount      atomic.Int64
	DocumentsDeleted atomic.Int64

	ClearCount atomic.Int64
}

func (m *BasicMetricsCollector) RecordFind(found int, duration time.Duration, err error) {
	m.FindCount.Add(1)
	m.FindTotalNanos.Add(int64(duration))
	if err != nil {
		m.FindErrors.Add(1)
		return
	}
	m.ResultsReturned.Add(int64(found))
}

func (m *BasicMetricsCollector) RecordUpdate(count int, _ time.Duration, err error) {
	m.UpdateCount.Add(1)
	if err != nil {
		m.UpdateErrors.Add(1)
		return
	}
	m.DocumentsWritten.Add(int64(count))
}

func (m *BasicMetricsCollector) RecordDelete(removed int, _ time.Duration, err error) {
	m.DeleteCount.Add(1)
	if err == nil {
		m.DocumentsDeleted.Add(int64(removed))
	}
}

func (m *BasicMetricsCollector) RecordClear(time.Duration, error) {
	m.ClearCount.Add(1)
}
