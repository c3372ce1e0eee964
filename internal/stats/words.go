package stats

import (
	"sort"
	"strings"

	"github.com/hyperjump/shirabe/internal/models"
)

// stopwords are common English words excluded from the title word cloud.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "in": {}, "is": {}, "it": {},
	"its": {}, "of": {}, "on": {}, "or": {}, "that": {}, "the": {}, "to": {},
	"was": {}, "were": {}, "which": {}, "with": {},
}

// WordFrequencies tokenizes the lowercased concatenation of all non-empty
// titles and returns up to maxWords tokens by frequency, descending (ties
// alphabetical). Tokens shorter than minLength, stopwords, and bare
// punctuation are dropped. An empty result is the degenerate case the
// word-cloud panel has to survive.
func WordFrequencies(ds *models.Dataset, minLength, maxWords int) []models.WordFrequency {
	counts := make(map[string]int)
	for _, p := range ds.Papers {
		if p.Title == "" {
			continue
		}
		for _, tok := range strings.Fields(strings.ToLower(p.Title)) {
			tok = strings.Trim(tok, `.,;:!?"'()[]{}`)
			if len(tok) < minLength {
				continue
			}
			if _, skip := stopwords[tok]; skip {
				continue
			}
			counts[tok]++
		}
	}
	out := make([]models.WordFrequency, 0, len(counts))
	for w, n := range counts {
		out = append(out, models.WordFrequency{Word: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if maxWords > 0 && len(out) > maxWords {
		out = out[:maxWords]
	}
	return out
}
