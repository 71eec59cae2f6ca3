// Package index provides the interface and shared types for local search
// indexes.
package index

import (
	"errors"

	"github.com/hupe1980/localsearch/model"
)

// ErrEmptyKey is returned when a document with an empty key is given to a
// mutation. Key uniqueness is the index's core invariant, so this is a
// caller contract violation rather than a recoverable condition.
var ErrEmptyKey = errors.New("document key must not be empty")

// Backend identifies an index implementation.
type Backend int

// Supported backends.
const (
	// BackendLinear scans every document per query. No build step, constant
	// mutation cost, query cost linear in total tags. The right choice for
	// small corpora (tens to low thousands of documents).
	BackendLinear Backend = iota

	// BackendInverted maintains term posting lists with TF-IDF scores.
	// Higher mutation cost, sublinear query cost for selective terms.
	BackendInverted
)

// String returns a string representation of the Backend.
func (b Backend) String() string {
	switch b {
	case BackendLinear:
		return "Linear"
	case BackendInverted:
		return "Inverted"
	default:
		return "Unknown"
	}
}

// Index is a searchable collection of documents. Implementations are
// synchronous and designed for single-writer access: the owner serializes
// mutations and queries (e.g. on one goroutine); no internal locking is
// guaranteed.
type Index interface {
	// GetSize returns the number of distinct document keys in the index.
	GetSize() uint64

	// AddOrUpdate inserts the given documents, replacing any existing
	// document with the same key wholesale. Content text is tokenized here,
	// not at query time. A document with no contents stays indexed but can
	// never match.
	AddOrUpdate(docs []model.Document) error

	// UpdateDocuments applies metadata changes: like AddOrUpdate, except a
	// document with no contents is removed from the index. Returns the
	// number of documents removed this way.
	UpdateDocuments(docs []model.Document) (uint32, error)

	// Delete removes the given keys. Missing keys are ignored. Returns the
	// number of keys actually removed.
	Delete(keys []string) (uint32, error)

	// Find returns up to maxResults documents matching the query, sorted by
	// descending relevance. maxResults of zero legally yields no results.
	Find(query string, maxResults uint32) ([]model.Result, error)

	// ClearIndex removes all documents.
	ClearIndex() error
}

// Dumper is implemented by indexes that can export their current documents,
// e.g. for snapshotting. The returned slice is a deep-enough copy that the
// caller may retain it.
type Dumper interface {
	Dump() []model.Document
}
