package inverted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/localsearch/index"
	"github.com/hupe1980/localsearch/model"
)

func doc(key, text string) model.Document {
	return model.Document{
		Key:      key,
		Contents: []model.Content{{ID: "text", Text: text}},
	}
}

func keys(results []model.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Key)
	}
	return out
}

func TestInvertedIndex_Basic(t *testing.T) {
	idx := New()

	require.NoError(t, idx.AddOrUpdate([]model.Document{
		doc("doc1", "the quick brown fox"),
		doc("doc2", "jumped over the lazy dog"),
		doc("doc3", "quick brown dogs"),
		doc("doc4", "fox and dog"),
	}))
	assert.Equal(t, uint64(4), idx.GetSize())

	results, err := idx.Find("fox", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"doc1", "doc4"}, keys(results))

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestInvertedIndex_RareTermScoresHigher(t *testing.T) {
	idx := New()

	require.NoError(t, idx.AddOrUpdate([]model.Document{
		doc("doc1", "alpha unique"),
		doc("doc2", "alpha common"),
		doc("doc3", "alpha common"),
		doc("doc4", "alpha common"),
	}))

	rare, err := idx.Find("unique", 10)
	require.NoError(t, err)
	require.Len(t, rare, 1)

	common, err := idx.Find("common", 10)
	require.NoError(t, err)
	require.Len(t, common, 3)

	// "unique" appears in one of four documents, "common" in three; IDF
	// must rank the rare hit above any common one.
	assert.Greater(t, rare[0].Score, common[0].Score)
}

func TestInvertedIndex_FuzzyTermMatch(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddOrUpdate([]model.Document{
		doc("doc1", "bluetooth settings"),
	}))

	// Misspelled query still reaches the posting list via the fuzzy
	// dictionary scan.
	results, err := idx.Find("bluetooht", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc1", results[0].Key)

	// A fuzzy hit is scored below the exact same query.
	exact, err := idx.Find("bluetooth", 10)
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Greater(t, exact[0].Score, results[0].Score)
}

func TestInvertedIndex_DeleteRemovesPostings(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddOrUpdate([]model.Document{
		doc("doc1", "apple pie"),
		doc("doc2", "apple tart"),
	}))

	removed, err := idx.Delete([]string{"doc1", "missing"})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), removed)
	assert.Equal(t, uint64(1), idx.GetSize())

	results, err := idx.Find("apple", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc2"}, keys(results))

	results, err = idx.Find("pie", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInvertedIndex_UpdateReplacesWholesale(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddOrUpdate([]model.Document{doc("doc1", "apple pie")}))
	require.NoError(t, idx.AddOrUpdate([]model.Document{doc("doc1", "banana split")}))

	assert.Equal(t, uint64(1), idx.GetSize())

	results, err := idx.Find("apple", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = idx.Find("banana", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc1"}, keys(results))
}

func TestInvertedIndex_UpdateDocuments(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddOrUpdate([]model.Document{
		doc("doc1", "apple pie"),
		doc("doc2", "banana split"),
	}))

	removed, err := idx.UpdateDocuments([]model.Document{
		{Key: "doc1"},
		doc("doc3", "cherry cake"),
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), removed)
	assert.Equal(t, uint64(2), idx.GetSize())

	results, err := idx.Find("cherry", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc3"}, keys(results))
}

func TestInvertedIndex_EmptyKeyRejected(t *testing.T) {
	idx := New()

	err := idx.AddOrUpdate([]model.Document{doc("", "text")})
	assert.ErrorIs(t, err, index.ErrEmptyKey)
	assert.Zero(t, idx.GetSize())
}

func TestInvertedIndex_FindEdgeCases(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddOrUpdate([]model.Document{doc("doc1", "apple pie")}))

	results, err := idx.Find("apple", 0)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = idx.Find("", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	all := New(func(o *Options) {
		o.EmptyQueryMatchesAll = true
	})
	require.NoError(t, all.AddOrUpdate([]model.Document{
		doc("b", "apple"),
		doc("a", "banana"),
	}))

	results, err = all.Find("", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys(results))
}

func TestInvertedIndex_ClearIndex(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddOrUpdate([]model.Document{doc("doc1", "apple pie")}))

	require.NoError(t, idx.ClearIndex())
	assert.Zero(t, idx.GetSize())

	results, err := idx.Find("apple", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	require.NoError(t, idx.AddOrUpdate([]model.Document{doc("doc1", "apple pie")}))
	results, err = idx.Find("apple", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestInvertedIndex_AgreesWithLinearOnExactMatches(t *testing.T) {
	// Both backends must agree on the *set* of matching documents for
	// exact single-term queries; only ranking formulas differ.
	idx := New()
	require.NoError(t, idx.AddOrUpdate([]model.Document{
		doc("doc1", "apple pie"),
		doc("doc2", "banana split"),
		doc("doc3", "apple tart"),
	}))

	results, err := idx.Find("apple", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"doc1", "doc3"}, keys(results))

	results, err = idx.Find("xyz123", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInvertedIndex_Positions(t *testing.T) {
	idx := New()
	require.NoError(t, idx.AddOrUpdate([]model.Document{doc("doc1", "apple pie apple")}))

	results, err := idx.Find("apple", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.Len(t, results[0].Positions, 2)
	assert.Equal(t, uint32(0), results[0].Positions[0].Start)
	assert.Equal(t, uint32(10), results[0].Positions[1].Start)
}

func TestInvertedIndex_Dump(t *testing.T) {
	idx := New()
	docs := []model.Document{doc("doc1", "apple pie"), doc("doc2", "banana split")}
	require.NoError(t, idx.AddOrUpdate(docs))

	dump := idx.Dump()
	require.Len(t, dump, 2)

	byKey := map[string]model.Document{}
	for _, d := range dump {
		byKey[d.Key] = d
	}
	assert.Equal(t, docs[0].Contents, byKey["doc1"].Contents)
	assert.Equal(t, docs[1].Contents, byKey["doc2"].Contents)
}
