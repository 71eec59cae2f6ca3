package model

import "fmt"

// Content is one searchable piece of text attached to a document. The ID
// correlates a match back to caller-side metadata (e.g. a display label) and
// carries no meaning inside the index.
type Content struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	// Weight scales the relevance of matches against this content.
	// Zero means "unset" and is treated as 1.0.
	Weight float64 `json:"weight,omitempty"`
}

// EffectiveWeight returns the weight to apply during ranking.
func (c Content) EffectiveWeight() float64 {
	if c.Weight == 0 {
		return 1.0
	}
	return c.Weight
}

// Document is the unit of indexing: a unique key plus an ordered list of
// contents. A document with no contents is valid and never matches.
type Document struct {
	Key      string    `json:"key"`
	Contents []Content `json:"contents"`
}

// Position locates a token occurrence inside a content's raw text.
// Start and Length are byte offsets into Content.Text.
type Position struct {
	ContentID string `json:"content_id"`
	Start     uint32 `json:"start"`
	Length    uint32 `json:"length"`
}

// String returns a string representation of the Position.
func (p Position) String() string {
	return fmt.Sprintf("Pos(%s:%d+%d)", p.ContentID, p.Start, p.Length)
}

// Token is one normalized term together with every position it occupies in
// the content it was derived from.
type Token struct {
	Text      string     `json:"text"`
	Positions []Position `json:"positions"`
}

// Result is a single ranked search hit.
type Result struct {
	// Key is the key of the matching document.
	Key string `json:"key"`
	// Score is the relevance of the match. Higher is more relevant.
	Score float64 `json:"score"`
	// Positions are the hit ranges that produced the score, if the backend
	// tracks them. May be empty.
	Positions []Position `json:"positions,omitempty"`
}
