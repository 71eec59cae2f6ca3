package localsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/localsearch/index"
	"github.com/hupe1980/localsearch/model"
)

func sampleDocs() []model.Document {
	return []model.Document{
		{Key: "doc1", Contents: []model.Content{{ID: "title", Text: "apple pie"}}},
		{Key: "doc2", Contents: []model.Content{{ID: "title", Text: "banana split"}}},
	}
}

func TestLinearBuilder(t *testing.T) {
	idx := Linear().
		Threshold(0.5).
		StopWords("the").
		Build()

	require.NoError(t, idx.AddOrUpdate(sampleDocs()))
	assert.Equal(t, uint64(2), idx.GetSize())

	results, err := idx.Find("the apple", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc1", results[0].Key)
}

func TestLinearBuilder_Immutable(t *testing.T) {
	base := Linear()
	strict := base.Threshold(0.99)

	// The derived builder must not leak configuration back into the base.
	loose := base.Build()
	require.NoError(t, loose.AddOrUpdate(sampleDocs()))

	results, err := loose.Find("aple", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, results)

	idx := strict.Build()
	require.NoError(t, idx.AddOrUpdate(sampleDocs()))

	results, err = idx.Find("aple", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInvertedBuilder(t *testing.T) {
	idx := Inverted().Build()

	require.NoError(t, idx.AddOrUpdate(sampleDocs()))

	results, err := idx.Find("banana", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc2", results[0].Key)
}

func TestNewIndex(t *testing.T) {
	for _, backend := range []index.Backend{index.BackendLinear, index.BackendInverted} {
		t.Run(backend.String(), func(t *testing.T) {
			idx := NewIndex(backend)
			require.NoError(t, idx.AddOrUpdate(sampleDocs()))

			results, err := idx.Find("apple", 10)
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, "doc1", results[0].Key)
		})
	}
}

func TestInstrumentedIndex_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}

	idx := Linear().
		Logger(NoopLogger()).
		Metrics(metrics).
		Build()

	require.NoError(t, idx.AddOrUpdate(sampleDocs()))

	_, err := idx.Find("apple", 10)
	require.NoError(t, err)

	removed, err := idx.Delete([]string{"doc2"})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), removed)

	require.NoError(t, idx.ClearIndex())

	assert.Equal(t, int64(1), metrics.UpdateCount.Load())
	assert.Equal(t, int64(2), metrics.DocumentsWritten.Load())
	assert.Equal(t, int64(1), metrics.FindCount.Load())
	assert.Equal(t, int64(1), metrics.ResultsReturned.Load())
	assert.Equal(t, int64(1), metrics.DeleteCount.Load())
	assert.Equal(t, int64(1), metrics.DocumentsDeleted.Load())
	assert.Equal(t, int64(1), metrics.ClearCount.Load())
}

func TestInstrumentedIndex_KeepsDumper(t *testing.T) {
	idx := Linear().Metrics(&BasicMetricsCollector{}).Build()
	require.NoError(t, idx.AddOrUpdate(sampleDocs()))

	dumper, ok := idx.(index.Dumper)
	require.True(t, ok)
	assert.Len(t, dumper.Dump(), 2)
}
