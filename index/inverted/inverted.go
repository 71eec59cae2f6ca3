// Package inverted provides a TF-IDF inverted index. Terms map to posting
// lists whose document sets are roaring bitmaps over interned document ids.
// TF-IDF scores are cached per term and rebuilt lazily: mutations only mark
// terms dirty, the next Find pays for the rebuild.
package inverted

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/localsearch/fuzzy"
	"github.com/hupe1980/localsearch/index"
	"github.com/hupe1980/localsearch/model"
	"github.com/hupe1980/localsearch/tokenize"
)

// Compile-time checks to ensure InvertedIndex satisfies required interfaces.
var _ index.Index = (*InvertedIndex)(nil)
var _ index.Dumper = (*InvertedIndex)(nil)

// Options contains configuration options for the inverted index.
type Options struct {
	// Threshold is the minimum term similarity for a query term to match a
	// dictionary term.
	Threshold float64

	// EmptyQueryMatchesAll makes an empty query return every document with
	// relevance 1.
	EmptyQueryMatchesAll bool

	// StopWords are dropped during tokenization of both contents and
	// queries.
	StopWords []string
}

// DefaultOptions contains the default configuration options for the
// inverted index.
var DefaultOptions = Options{
	Threshold: fuzzy.DefaultThreshold,
}

// posting holds everything the index knows about one term.
type posting struct {
	docs      *roaring.Bitmap
	tf        map[uint32]float64
	positions map[uint32][]model.Position
}

func newPosting() *posting {
	return &posting{
		docs:      roaring.New(),
		tf:        make(map[uint32]float64),
		positions: make(map[uint32][]model.Position),
	}
}

type tfidfEntry struct {
	doc   uint32
	score float64
}

// InvertedIndex is the inverted index implementation.
type InvertedIndex struct {
	opts Options
	tok  *tokenize.Tokenizer

	// Document keys are interned to dense uint32 ids so posting sets can be
	// roaring bitmaps. Ids are stable for the lifetime of a key and are not
	// reused after deletion.
	nextID uint32
	idOf   map[string]uint32
	keyOf  map[uint32]string

	docLength map[uint32]float64
	docTerms  map[uint32][]string
	contents  map[uint32][]model.Content

	dict map[string]*posting

	dirty         map[string]struct{}
	cache         map[string][]tfidfEntry
	builtDocCount int
}

// New creates a new, empty InvertedIndex.
func New(optFns ...func(o *Options)) *InvertedIndex {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	idx := &InvertedIndex{
		opts: opts,
		tok: tokenize.New(func(o *tokenize.Options) {
			o.StopWords = opts.StopWords
		}),
	}
	idx.reset()

	return idx
}

func (idx *InvertedIndex) reset() {
	idx.idOf = make(map[string]uint32)
	idx.keyOf = make(map[uint32]string)
	idx.docLength = make(map[uint32]float64)
	idx.docTerms = make(map[uint32][]string)
	idx.contents = make(map[uint32][]model.Content)
	idx.dict = make(map[string]*posting)
	idx.dirty = make(map[string]struct{})
	idx.cache = make(map[string][]tfidfEntry)
	idx.builtDocCount = 0
}

// GetSize returns the number of distinct document keys in the index.
func (idx *InvertedIndex) GetSize() uint64 {
	return uint64(len(idx.idOf))
}

// AddOrUpdate inserts or wholesale-replaces the given documents.
func (idx *InvertedIndex) AddOrUpdate(docs []model.Document) error {
	for _, doc := range docs {
		if doc.Key == "" {
			return index.ErrEmptyKey
		}
	}

	for _, doc := range docs {
		idx.add(doc)
	}

	return nil
}

// UpdateDocuments replaces the given documents; a document with no contents
// is removed instead. Returns the number of removals.
func (idx *InvertedIndex) UpdateDocuments(docs []model.Document) (uint32, error) {
	for _, doc := range docs {
		if doc.Key == "" {
			return 0, index.ErrEmptyKey
		}
	}

	var removed uint32
	for _, doc := range docs {
		if len(doc.Contents) == 0 {
			if id, ok := idx.idOf[doc.Key]; ok {
				idx.remove(id)
				removed++
			}
			continue
		}
		idx.add(doc)
	}

	return removed, nil
}

// Delete removes the given keys, ignoring ones that are absent.
func (idx *InvertedIndex) Delete(keys []string) (uint32, error) {
	var removed uint32
	for _, key := range keys {
		if id, ok := idx.idOf[key]; ok {
			idx.remove(id)
			removed++
		}
	}

	return removed, nil
}

// Find matches query terms against the dictionary (exactly or fuzzily) and
// accumulates TF-IDF scores over the matched posting lists.
func (idx *InvertedIndex) Find(query string, maxResults uint32) ([]model.Result, error) {
	if maxResults == 0 {
		return []model.Result{}, nil
	}

	terms := idx.tok.Terms(query)
	if len(terms) == 0 {
		if !idx.opts.EmptyQueryMatchesAll {
			return []model.Result{}, nil
		}
		return idx.matchAll(maxResults), nil
	}

	idx.refreshCache()

	scores := make(map[uint32]float64)
	positions := make(map[uint32][]model.Position)

	for _, q := range terms {
		for term, sim := range idx.matchTerms(q) {
			p := idx.dict[term]
			for _, e := range idx.cache[term] {
				scores[e.doc] += e.score * sim
				positions[e.doc] = append(positions[e.doc], p.positions[e.doc]...)
			}
		}
	}

	results := make([]model.Result, 0, len(scores))
	for doc, score := range scores {
		results = append(results, model.Result{
			Key:       idx.keyOf[doc],
			Score:     score,
			Positions: positions[doc],
		})
	}

	return index.SortAndTruncate(results, maxResults), nil
}

// ClearIndex removes all documents.
func (idx *InvertedIndex) ClearIndex() error {
	idx.reset()
	return nil
}

// Dump exports the current documents for snapshotting.
func (idx *InvertedIndex) Dump() []model.Document {
	docs := make([]model.Document, 0, len(idx.idOf))
	for key, id := range idx.idOf {
		docs = append(docs, model.Document{Key: key, Contents: idx.contents[id]})
	}

	return docs
}

func (idx *InvertedIndex) add(doc model.Document) {
	id, ok := idx.idOf[doc.Key]
	if ok {
		idx.remove(id)
	} else {
		id = idx.nextID
		idx.nextID++
	}

	idx.idOf[doc.Key] = id
	idx.keyOf[id] = doc.Key
	idx.contents[id] = append([]model.Content(nil), doc.Contents...)

	var (
		length float64
		terms  []string
	)

	for _, c := range doc.Contents {
		weight := c.EffectiveWeight()

		for _, tok := range idx.tok.Tokenize(c) {
			p, ok := idx.dict[tok.Text]
			if !ok {
				p = newPosting()
				idx.dict[tok.Text] = p
			}

			if !p.docs.Contains(id) {
				p.docs.Add(id)
				terms = append(terms, tok.Text)
			}

			occ := float64(len(tok.Positions)) * weight
			p.tf[id] += occ
			p.positions[id] = append(p.positions[id], tok.Positions...)
			length += occ

			idx.dirty[tok.Text] = struct{}{}
		}
	}

	idx.docLength[id] = length
	idx.docTerms[id] = terms
}

func (idx *InvertedIndex) remove(id uint32) {
	for _, term := range idx.docTerms[id] {
		p, ok := idx.dict[term]
		if !ok {
			continue
		}

		p.docs.Remove(id)
		delete(p.tf, id)
		delete(p.positions, id)

		if p.docs.IsEmpty() {
			delete(idx.dict, term)
			delete(idx.cache, term)
			delete(idx.dirty, term)
		} else {
			idx.dirty[term] = struct{}{}
		}
	}

	key := idx.keyOf[id]
	delete(idx.idOf, key)
	delete(idx.keyOf, id)
	delete(idx.docLength, id)
	delete(idx.docTerms, id)
	delete(idx.contents, id)
}

// refreshCache rebuilds TF-IDF entries for dirty terms. A change in the
// total document count shifts the IDF of every term, so that invalidates
// the whole cache, exactly like a full index rebuild in eager designs.
func (idx *InvertedIndex) refreshCache() {
	if len(idx.idOf) != idx.builtDocCount {
		for term := range idx.dict {
			idx.dirty[term] = struct{}{}
		}
		idx.builtDocCount = len(idx.idOf)
	}

	if len(idx.dirty) == 0 {
		return
	}

	n := float64(len(idx.idOf))
	for term := range idx.dirty {
		p := idx.dict[term]

		df := float64(p.docs.GetCardinality())
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))

		entries := make([]tfidfEntry, 0, p.docs.GetCardinality())

		it := p.docs.Iterator()
		for it.HasNext() {
			doc := it.Next()

			length := idx.docLength[doc]
			if length == 0 {
				continue
			}

			entries = append(entries, tfidfEntry{
				doc:   doc,
				score: (p.tf[doc] / length) * idf,
			})
		}

		idx.cache[term] = entries
	}

	idx.dirty = make(map[string]struct{})
}

// matchTerms returns the dictionary terms matching a query term along with
// their similarity. An exact hit scores 1; otherwise the whole dictionary
// is scanned for fuzzy matches above the threshold.
func (idx *InvertedIndex) matchTerms(q string) map[string]float64 {
	matched := make(map[string]float64)

	if _, ok := idx.dict[q]; ok {
		matched[q] = 1
		return matched
	}

	threshold := idx.opts.Threshold
	if threshold <= 0 {
		threshold = fuzzy.DefaultThreshold
	}

	for term := range idx.dict {
		if sim := fuzzy.Similarity(q, term); sim >= threshold {
			matched[term] = sim
		}
	}

	return matched
}

func (idx *InvertedIndex) matchAll(maxResults uint32) []model.Result {
	results := make([]model.Result, 0, len(idx.idOf))
	for key := range idx.idOf {
		results = append(results, model.Result{Key: key, Score: 1})
	}

	return index.SortAndTruncate(results, maxResults)
}
