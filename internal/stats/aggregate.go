package stats

import (
	"sort"

	"github.com/hyperjump/shirabe/internal/models"
)

// YearCounts returns the paper count per publication year, ascending by year.
func YearCounts(ds *models.Dataset) []models.YearCount {
	counts := make(map[int]int)
	for _, p := range ds.Papers {
		counts[p.PublicationYear]++
	}
	out := make([]models.YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, models.YearCount{Year: y, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// TopJournals returns up to limit journals by paper count, descending.
// Ties break alphabetically so the chart is stable across renders.
func TopJournals(ds *models.Dataset, limit int) []models.JournalCount {
	counts := make(map[string]int)
	for _, p := range ds.Papers {
		if p.Journal != "" {
			counts[p.Journal]++
		}
	}
	out := make([]models.JournalCount, 0, len(counts))
	for j, n := range counts {
		out = append(out, models.JournalCount{Journal: j, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Journal < out[j].Journal
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
