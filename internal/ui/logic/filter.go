package logic

import (
	"github.com/sahilm/fuzzy"
)

// FilterPaths fuzzy-matches query against paths. It returns the indexes of
// the matching paths in their original order, and the matched byte offsets
// per index. An empty query matches everything.
func FilterPaths(query string, paths []string) ([]int, map[int][]int) {
	matched := make(map[int][]int)
	if query == "" {
		kept := make([]int, len(paths))
		for i := range paths {
			kept[i] = i
		}
		return kept, matched
	}

	for _, match := range fuzzy.Find(query, paths) {
		matched[match.Index] = match.MatchedIndexes
	}

	var kept []int
	for i := range paths {
		if _, ok := matched[i]; ok {
			kept = append(kept, i)
		}
	}
	return kept, matched
}
