// Package fuzzy implements the term similarity function used for ranking.
// It tolerates prefix matches and adjacent transpositions instead of
// requiring exact equality, and produces a relevance score in [0, 1].
package fuzzy

// DefaultThreshold is the relevance below which a candidate is not
// considered a match.
const DefaultThreshold = 0.3

// Similarity compares two normalized single terms and returns a score in
// [0, 1]. Scoring, from strongest to weakest:
//
//   - exact equality scores 1.
//   - a prefix relationship scores by the covered fraction of the longer
//     term, damped so that a full match always outranks a prefix.
//   - otherwise the score decays with the optimal string alignment distance
//     (edit distance counting adjacent transpositions as one operation).
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	var prefixScore float64
	if n := commonPrefix(ra, rb); n == len(ra) || n == len(rb) {
		longer := len(ra)
		if len(rb) > longer {
			longer = len(rb)
		}
		prefixScore = 0.9 * float64(n) / float64(longer)
	}

	editScore := 1 - float64(osaDistance(ra, rb))/float64(maxInt(len(ra), len(rb)))
	if editScore < 0 {
		editScore = 0
	}

	if prefixScore > editScore {
		return prefixScore
	}
	return editScore
}

// Relevance compares a tokenized query against a tokenized candidate text.
// Each query term is matched to its best candidate term; the relevance is
// the mean of those best scores, so every query term has to pull its
// weight. An empty query or candidate yields 0.
func Relevance(query, text []string) float64 {
	if len(query) == 0 || len(text) == 0 {
		return 0
	}

	var sum float64
	for _, q := range query {
		best := 0.0
		for _, t := range text {
			if s := Similarity(q, t); s > best {
				best = s
				if best == 1 {
					break
				}
			}
		}
		sum += best
	}

	return sum / float64(len(query))
}

// Match reports whether the query matches the candidate text at the given
// threshold, along with the relevance score. A threshold <= 0 falls back to
// DefaultThreshold.
func Match(query, text []string, threshold float64) (bool, float64) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	score := Relevance(query, text)

	return score >= threshold, score
}

func commonPrefix(a, b []rune) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// osaDistance computes the optimal string alignment distance: edit distance
// where swapping two adjacent runes counts as a single operation.
func osaDistance(a, b []rune) int {
	la, lb := len(a), len(b)

	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)

	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			d := minInt(cur[j-1]+1, prev[j]+1)
			d = minInt(d, prev[j-1]+cost)

			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				d = minInt(d, prev2[j-2]+1)
			}

			cur[j] = d
		}
		prev2, prev, cur = prev, cur, prev2
	}

	return prev[lb]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
