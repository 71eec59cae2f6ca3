// Package localsearch provides an embeddable, in-memory search index over
// short text tags.
//
// A document is a string key plus an ordered list of contents (tag id + raw
// text). Content text is tokenized once at write time; queries are matched
// fuzzily (prefix and transposition tolerant) and ranked by relevance.
//
// Two backends are available behind the same interface: a linear-scan map
// (no build step, full scan per query, right for small corpora) and a
// TF-IDF inverted index.
//
// Example:
//
//	idx := localsearch.Linear().
//	    Threshold(0.5).
//	    Build()
//
//	_ = idx.AddOrUpdate([]model.Document{
//	    {Key: "doc1", Contents: []model.Content{{ID: "title", Text: "apple pie"}}},
//	})
//
//	results, _ := idx.Find("apple", 10)
//
// Indexes are single-writer: callers serialize mutations and queries, e.g.
// by confining an index to one goroutine. The Service registry adds its own
// locking around registration only, not around index operations.
package localsearch
