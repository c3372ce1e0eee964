// Package stats computes the dashboard's summary metrics and chart
// aggregations from a filtered dataset.
package stats

import (
	"fmt"

	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/pkg/utils"
)

// Summarize computes the four scalar metrics for a (possibly filtered)
// dataset. The mean fields are nil for an empty dataset.
func Summarize(ds *models.Dataset) models.Summary {
	s := models.Summary{TotalPapers: ds.Len()}

	journals := make(map[string]struct{})
	titleWords := make([]int, 0, ds.Len())
	abstractWords := make([]int, 0, ds.Len())
	for _, p := range ds.Papers {
		if p.Journal != "" {
			journals[p.Journal] = struct{}{}
		}
		titleWords = append(titleWords, p.TitleWordCount)
		abstractWords = append(abstractWords, p.AbstractWordCount)
	}
	s.UniqueJournals = len(journals)
	if m, ok := utils.Mean(titleWords); ok {
		s.AvgTitleWords = &m
	}
	if m, ok := utils.Mean(abstractWords); ok {
		s.AvgAbstractWords = &m
	}
	return s
}

// FormatMean renders a mean metric to one decimal place, or "N/A" when it is
// undefined (empty subset).
func FormatMean(m *float64) string {
	if m == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *m)
}
