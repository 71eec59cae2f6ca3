package index

import (
	"sort"

	"github.com/hupe1980/localsearch/model"
)

// SortAndTruncate orders results by descending score and caps them at
// maxResults. Ties are broken by ascending document key so that rankings do
// not depend on map iteration order.
func SortAndTruncate(results []model.Result, maxResults uint32) []model.Result {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Key < results[j].Key
	})

	if uint64(len(results)) > uint64(maxResults) {
		results = results[:maxResults]
	}

	return results
}
