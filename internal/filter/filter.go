// Package filter derives filter options from a dataset and applies user
// selections to produce filtered views.
package filter

import (
	"sort"

	"github.com/hyperjump/shirabe/internal/models"
)

// Bounds returns the integer min/max of publication_year over the dataset.
// An empty dataset yields zero bounds (the Store guarantees at least the
// demo rows, so this is a guard, not a normal case).
func Bounds(ds *models.Dataset) models.YearBounds {
	if ds.Len() == 0 {
		return models.YearBounds{}
	}
	b := models.YearBounds{Min: ds.Papers[0].PublicationYear, Max: ds.Papers[0].PublicationYear}
	for _, p := range ds.Papers[1:] {
		if p.PublicationYear < b.Min {
			b.Min = p.PublicationYear
		}
		if p.PublicationYear > b.Max {
			b.Max = p.PublicationYear
		}
	}
	return b
}

// Journals returns the journal dropdown options: the AllJournals sentinel
// followed by the sorted distinct non-empty journal names.
func Journals(ds *models.Dataset) []string {
	seen := make(map[string]struct{})
	for _, p := range ds.Papers {
		if p.Journal != "" {
			seen[p.Journal] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for j := range seen {
		names = append(names, j)
	}
	sort.Strings(names)
	return append([]string{models.AllJournals}, names...)
}

// Clamp normalizes a user filter against the dataset bounds: unset years
// become the full range, both years are clamped into [Min, Max], and an
// empty journal selection means the sentinel. A from year past the maximum
// therefore becomes the maximum rather than an inverted empty range.
func Clamp(f models.Filter, b models.YearBounds) models.Filter {
	if f.FromYear == 0 {
		f.FromYear = b.Min
	}
	if f.ToYear == 0 {
		f.ToYear = b.Max
	}
	f.FromYear = clampYear(f.FromYear, b)
	f.ToYear = clampYear(f.ToYear, b)
	if f.Journal == "" {
		f.Journal = models.AllJournals
	}
	return f
}

func clampYear(y int, b models.YearBounds) int {
	if y < b.Min {
		return b.Min
	}
	if y > b.Max {
		return b.Max
	}
	return y
}

// Apply returns a fresh dataset holding the subset of papers matching f.
// The input is never mutated; applying the same filter twice is a no-op on
// the result.
func Apply(ds *models.Dataset, f models.Filter) *models.Dataset {
	out := &models.Dataset{Columns: ds.Columns}
	for i := range ds.Papers {
		if f.Matches(&ds.Papers[i]) {
			out.Papers = append(out.Papers, ds.Papers[i])
		}
	}
	return out
}
