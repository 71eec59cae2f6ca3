package localsearch

import (
	"context"
	"time"

	"github.com/hupe1980/localsearch/index"
	"github.com/hupe1980/localsearch/model"
)

// instrumentedIndex decorates an index with logging and metrics. It adds no
// locking: the single-writer contract of the wrapped index still applies.
type instrumentedIndex struct {
	idx     index.Index
	logger  *Logger
	metrics MetricsCollector
}

var _ index.Index = (*instrumentedIndex)(nil)
var _ index.Dumper = (*instrumentedIndex)(nil)

// instrument wraps idx unless neither a logger nor metrics were supplied.
func instrument(idx index.Index, logger *Logger, metrics MetricsCollector) index.Index {
	if logger == nil && metrics == nil {
		return idx
	}
	if logger == nil {
		logger = NoopLogger()
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	return &instrumentedIndex{idx: idx, logger: logger, metrics: metrics}
}

func (w *instrumentedIndex) GetSize() uint64 {
	return w.idx.GetSize()
}

func (w *instrumentedIndex) AddOrUpdate(docs []model.Document) error {
	start := time.Now()
	err := w.idx.AddOrUpdate(docs)

	w.metrics.RecordUpdate(len(docs), time.Since(start), err)
	w.logger.LogUpdate(context.Background(), len(docs), 0, err)

	return err
}

func (w *instrumentedIndex) UpdateDocuments(docs []model.Document) (uint32, error) {
	start := time.Now()
	removed, err := w.idx.UpdateDocuments(docs)

	w.metrics.RecordUpdate(len(docs), time.Since(start), err)
	w.logger.LogUpdate(context.Background(), len(docs), removed, err)

	return removed, err
}

func (w *instrumentedIndex) Delete(keys []string) (uint32, error) {
	start := time.Now()
	removed, err := w.idx.Delete(keys)

	w.metrics.RecordDelete(int(removed), time.Since(start), err)
	w.logger.LogDelete(context.Background(), len(keys), removed, err)

	return removed, err
}

func (w *instrumentedIndex) Find(query string, maxResults uint32) ([]model.Result, error) {
	start := time.Now()
	results, err := w.idx.Find(query, maxResults)

	w.metrics.RecordFind(len(results), time.Since(start), err)
	w.logger.LogFind(context.Background(), maxResults, len(results), err)

	return results, err
}

func (w *instrumentedIndex) ClearIndex() error {
	start := time.Now()
	err := w.idx.ClearIndex()

	w.metrics.RecordClear(time.Since(start), err)
	w.logger.LogClear(context.Background(), err)

	return err
}

// Dump forwards to the wrapped index so instrumented indexes stay
// snapshottable.
func (w *instrumentedIndex) Dump() []model.Document {
	if d, ok := w.idx.(index.Dumper); ok {
		return d.Dump()
	}
	return nil
}
