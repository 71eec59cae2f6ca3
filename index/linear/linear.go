// Package linear provides a linear-scan index: documents are kept in a map
// of pre-tokenized tag entries and every query walks all of them. There is
// no build step and no secondary structure, which keeps mutations trivial
// and correctness easy to see; query cost is O(total tags × match cost).
package linear

import (
	"github.com/hupe1980/localsearch/fuzzy"
	"github.com/hupe1980/localsearch/index"
	"github.com/hupe1980/localsearch/model"
	"github.com/hupe1980/localsearch/tokenize"
)

// Compile-time checks to ensure LinearMap satisfies required interfaces.
var _ index.Index = (*LinearMap)(nil)
var _ index.Dumper = (*LinearMap)(nil)

// Options contains configuration options for the linear index.
type Options struct {
	// Threshold is the minimum relevance for a tag to count as a match.
	Threshold float64

	// EmptyQueryMatchesAll makes an empty query return every document with
	// relevance 1. Default is to return nothing: browse-style consumers
	// flip this, type-ahead consumers keep it off.
	EmptyQueryMatchesAll bool

	// StopWords are dropped during tokenization of both contents and
	// queries.
	StopWords []string
}

// DefaultOptions contains the default configuration options for the linear
// index.
var DefaultOptions = Options{
	Threshold: fuzzy.DefaultThreshold,
}

// entry is a tag with its tokenization cached at write time. The raw
// content is retained so the index can be dumped for snapshots.
type entry struct {
	content model.Content
	tokens  []model.Token
	terms   []string
}

type record struct {
	key     string
	entries []entry
}

// LinearMap is the linear-scan index implementation.
type LinearMap struct {
	opts Options
	tok  *tokenize.Tokenizer

	docs map[string]*record
}

// New creates a new, empty LinearMap.
func New(optFns ...func(o *Options)) *LinearMap {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	return &LinearMap{
		opts: opts,
		tok: tokenize.New(func(o *tokenize.Options) {
			o.StopWords = opts.StopWords
		}),
		docs: make(map[string]*record),
	}
}

// GetSize returns the number of distinct document keys in the index.
func (l *LinearMap) GetSize() uint64 {
	return uint64(len(l.docs))
}

// AddOrUpdate inserts or wholesale-replaces the given documents.
func (l *LinearMap) AddOrUpdate(docs []model.Document) error {
	// Validate the whole batch up front so a bad key cannot leave it
	// half-applied.
	for _, doc := range docs {
		if doc.Key == "" {
			return index.ErrEmptyKey
		}
	}

	for _, doc := range docs {
		l.docs[doc.Key] = l.build(doc)
	}

	return nil
}

// UpdateDocuments replaces the given documents; a document with no contents
// is removed instead. Returns the number of removals.
func (l *LinearMap) UpdateDocuments(docs []model.Document) (uint32, error) {
	for _, doc := range docs {
		if doc.Key == "" {
			return 0, index.ErrEmptyKey
		}
	}

	var removed uint32
	for _, doc := range docs {
		if len(doc.Contents) == 0 {
			if _, ok := l.docs[doc.Key]; ok {
				delete(l.docs, doc.Key)
				removed++
			}
			continue
		}
		l.docs[doc.Key] = l.build(doc)
	}

	return removed, nil
}

// Delete removes the given keys, ignoring ones that are absent.
func (l *LinearMap) Delete(keys []string) (uint32, error) {
	var removed uint32
	for _, key := range keys {
		if _, ok := l.docs[key]; ok {
			delete(l.docs, key)
			removed++
		}
	}

	return removed, nil
}

// Find scans every tag of every document. A document matches if any of its
// tags matches; its score is the best weighted tag relevance.
func (l *LinearMap) Find(query string, maxResults uint32) ([]model.Result, error) {
	if maxResults == 0 {
		return []model.Result{}, nil
	}

	terms := l.tok.Terms(query)
	if len(terms) == 0 {
		if !l.opts.EmptyQueryMatchesAll {
			return []model.Result{}, nil
		}
		return l.matchAll(maxResults), nil
	}

	results := make([]model.Result, 0, len(l.docs))
	for key, rec := range l.docs {
		var (
			bestScore float64
			bestEntry = -1
		)

		for i, e := range rec.entries {
			ok, score := fuzzy.Match(terms, e.terms, l.opts.Threshold)
			if !ok {
				continue
			}

			if score *= e.content.EffectiveWeight(); score > bestScore {
				bestScore = score
				bestEntry = i
			}
		}

		if bestEntry < 0 {
			continue
		}

		results = append(results, model.Result{
			Key:       key,
			Score:     bestScore,
			Positions: l.hitPositions(terms, rec.entries[bestEntry]),
		})
	}

	return index.SortAndTruncate(results, maxResults), nil
}

// ClearIndex removes all documents.
func (l *LinearMap) ClearIndex() error {
	l.docs = make(map[string]*record)
	return nil
}

// Dump exports the current documents for snapshotting.
func (l *LinearMap) Dump() []model.Document {
	docs := make([]model.Document, 0, len(l.docs))
	for key, rec := range l.docs {
		doc := model.Document{Key: key, Contents: make([]model.Content, 0, len(rec.entries))}
		for _, e := range rec.entries {
			doc.Contents = append(doc.Contents, e.content)
		}
		docs = append(docs, doc)
	}

	return docs
}

func (l *LinearMap) build(doc model.Document) *record {
	rec := &record{key: doc.Key, entries: make([]entry, 0, len(doc.Contents))}

	for _, c := range doc.Contents {
		tokens := l.tok.Tokenize(c)

		terms := make([]string, 0, len(tokens))
		for _, t := range tokens {
			terms = append(terms, t.Text)
		}

		rec.entries = append(rec.entries, entry{content: c, tokens: tokens, terms: terms})
	}

	return rec
}

func (l *LinearMap) matchAll(maxResults uint32) []model.Result {
	results := make([]model.Result, 0, len(l.docs))
	for key := range l.docs {
		results = append(results, model.Result{Key: key, Score: 1})
	}

	return index.SortAndTruncate(results, maxResults)
}

// hitPositions returns the positions of every token in the best entry that
// individually clears the threshold against some query term.
func (l *LinearMap) hitPositions(terms []string, e entry) []model.Position {
	var positions []model.Position

	for _, tok := range e.tokens {
		for _, q := range terms {
			if fuzzy.Similarity(q, tok.Text) >= l.opts.Threshold {
				positions = append(positions, tok.Positions...)
				break
			}
		}
	}

	return positions
}
