// Package tokenize converts raw content text into normalized token
// sequences for matching. Tokenization happens once at write time; query
// time only re-tokenizes the query itself.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/hupe1980/localsearch/model"
)

// Options contains configuration options for the tokenizer.
type Options struct {
	// StopWords are terms dropped during tokenization. Empty by default;
	// callers that index prose usually want a locale-specific list.
	StopWords []string
}

// DefaultOptions contains the default configuration options for the tokenizer.
var DefaultOptions = Options{}

// Tokenizer splits normalized text into terms with byte positions.
type Tokenizer struct {
	stop map[string]struct{}
}

// New creates a new Tokenizer.
func New(optFns ...func(o *Options)) *Tokenizer {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	t := &Tokenizer{}
	if len(opts.StopWords) > 0 {
		t.stop = make(map[string]struct{}, len(opts.StopWords))
		for _, w := range opts.StopWords {
			t.stop[strings.ToLower(w)] = struct{}{}
		}
	}

	return t
}

// Normalize lowercases text and collapses runs of non-letter/non-digit runes
// into single spaces.
func Normalize(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	space := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			space = false
			sb.WriteRune(r)
		} else {
			space = true
		}
	}

	return sb.String()
}

// Tokenize splits a content's text into tokens. Occurrences of the same term
// are merged into one token with multiple positions. Position offsets refer
// to the original (unnormalized) text.
func (t *Tokenizer) Tokenize(content model.Content) []model.Token {
	var (
		order  []string
		byTerm = make(map[string]*model.Token)
	)

	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		term := strings.ToLower(content.Text[start:end])
		pos := model.Position{
			ContentID: content.ID,
			Start:     uint32(start),
			Length:    uint32(end - start),
		}
		start = -1

		if t.stop != nil {
			if _, drop := t.stop[term]; drop {
				return
			}
		}

		tok, ok := byTerm[term]
		if !ok {
			tok = &model.Token{Text: term}
			byTerm[term] = tok
			order = append(order, term)
		}
		tok.Positions = append(tok.Positions, pos)
	}

	for i, r := range content.Text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(content.Text))

	tokens := make([]model.Token, 0, len(order))
	for _, term := range order {
		tokens = append(tokens, *byTerm[term])
	}

	return tokens
}

// Terms tokenizes free-form query text into its distinct normalized terms,
// in first-occurrence order.
func (t *Tokenizer) Terms(text string) []string {
	tokens := t.Tokenize(model.Content{Text: text})

	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		terms = append(terms, tok.Text)
	}

	return terms
}
