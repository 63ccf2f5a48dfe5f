package reduce

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const maxSuggestions = 3

// suggest picks operator names close to an unrecognized word: names that
// contain it as a subsequence, or that are a small edit away from it.
func suggest(word string, names []string) []string {
	type candidate struct {
		name string
		dist int
		i    int
	}
	var cands []candidate
	seen := make(map[string]bool)

	for _, rank := range fuzzy.RankFindFold(word, names) {
		seen[rank.Target] = true
		cands = append(cands, candidate{rank.Target, rank.Distance, rank.OriginalIndex})
	}
	maxEdits := 1 + len(word)/4
	for i, name := range names {
		if seen[name] {
			continue
		}
		if dist := fuzzy.LevenshteinDistance(word, name); dist <= maxEdits {
			cands = append(cands, candidate{name, dist, i})
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].i < cands[j].i
	})
	if len(cands) > maxSuggestions {
		cands = cands[:maxSuggestions]
	}
	var out []string
	for _, cand := range cands {
		out = append(out, cand.name)
	}
	return out
}
