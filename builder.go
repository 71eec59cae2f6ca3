package localsearch

import (
	"github.com/hupe1980/localsearch/fuzzy"
	"github.com/hupe1980/localsearch/index"
	"github.com/hupe1980/localsearch/index/inverted"
	"github.com/hupe1980/localsearch/index/linear"
)

// =============================================================================
// Linear Builder (Immutable)
// =============================================================================

// Linear creates a builder for a linear-scan index. Every query walks all
// indexed tags; no build step, constant mutation cost. The right choice for
// small corpora.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration.
//
// Example:
//
//	idx := localsearch.Linear().
//	    Threshold(0.5).
//	    StopWords("the", "a").
//	    Build()
func Linear() LinearBuilder {
	return LinearBuilder{
		threshold: fuzzy.DefaultThreshold,
	}
}

// LinearBuilder is an immutable fluent builder for linear-scan indexes.
type LinearBuilder struct {
	threshold float64
	emptyAll  bool
	stopWords []string
	logger    *Logger
	metrics   MetricsCollector
}

// Threshold sets the minimum relevance for a tag to count as a match.
// Default: fuzzy.DefaultThreshold.
func (b LinearBuilder) Threshold(t float64) LinearBuilder {
	b.threshold = t
	return b
}

// EmptyQueryMatchesAll makes an empty query return every document instead
// of none.
func (b LinearBuilder) EmptyQueryMatchesAll() LinearBuilder {
	b.emptyAll = true
	return b
}

// StopWords sets terms dropped during tokenization.
func (b LinearBuilder) StopWords(words ...string) LinearBuilder {
	b.stopWords = append([]string(nil), words...)
	return b
}

// Logger attaches a logger; operations are logged at debug level.
func (b LinearBuilder) Logger(l *Logger) LinearBuilder {
	b.logger = l
	return b
}

// Metrics attaches a metrics collector.
func (b LinearBuilder) Metrics(m MetricsCollector) LinearBuilder {
	b.metrics = m
	return b
}

// Build creates the index.
func (b LinearBuilder) Build() index.Index {
	idx := linear.New(func(o *linear.Options) {
		o.Threshold = b.threshold
		o.EmptyQueryMatchesAll = b.emptyAll
		o.StopWords = b.stopWords
	})

	return instrument(idx, b.logger, b.metrics)
}

// =============================================================================
// Inverted Builder (Immutable)
// =============================================================================

// Inverted creates a builder for a TF-IDF inverted index. Mutations update
// posting lists and queries touch only matching terms' postings.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration.
func Inverted() InvertedBuilder {
	return InvertedBuilder{
		threshold: fuzzy.DefaultThreshold,
	}
}

// InvertedBuilder is an immutable fluent builder for inverted indexes.
type InvertedBuilder struct {
	threshold float64
	emptyAll  bool
	stopWords []string
	logger    *Logger
	metrics   MetricsCollector
}

// Threshold sets the minimum term similarity for a query term to match a
// dictionary term. Default: fuzzy.DefaultThreshold.
func (b InvertedBuilder) Threshold(t float64) InvertedBuilder {
	b.threshold = t
	return b
}

// EmptyQueryMatchesAll makes an empty query return every document instead
// of none.
func (b InvertedBuilder) EmptyQueryMatchesAll() InvertedBuilder {
	b.emptyAll = true
	return b
}

// StopWords sets terms dropped during tokenization.
func (b InvertedBuilder) StopWords(words ...string) InvertedBuilder {
	b.stopWords = append([]string(nil), words...)
	return b
}

// Logger attaches a logger; operations are logged at debug level.
func (b InvertedBuilder) Logger(l *Logger) InvertedBuilder {
	b.logger = l
	return b
}

// Metrics attaches a metrics collector.
func (b InvertedBuilder) Metrics(m MetricsCollector) InvertedBuilder {
	b.metrics = m
	return b
}

// Build creates the index.
func (b InvertedBuilder) Build() index.Index {
	idx := inverted.New(func(o *inverted.Options) {
		o.Threshold = b.threshold
		o.EmptyQueryMatchesAll = b.emptyAll
		o.StopWords = b.stopWords
	})

	return instrument(idx, b.logger, b.metrics)
}

// NewIndex creates an index for the given backend with default options.
// Use the builders for anything configurable.
func NewIndex(backend index.Backend) index.Index {
	switch backend {
	case index.BackendInverted:
		return Inverted().Build()
	default:
		return Linear().Build()
	}
}
