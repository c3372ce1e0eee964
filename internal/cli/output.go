// Package cli provides CLI output utilities for Shirabe.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/internal/stats"
)

// OutputFormat is the format for summary output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// SummaryReport is what the summary subcommand prints: the applied filter,
// the dataset bounds, the metrics, and where the data came from.
type SummaryReport struct {
	Filter  models.Filter     `json:"filter"`
	Bounds  models.YearBounds `json:"bounds"`
	Summary models.Summary    `json:"summary"`
	Source  models.Source     `json:"source"`
	Path    string            `json:"path,omitempty"`
}

// WriteSummary writes the report to w in the given format.
func WriteSummary(w io.Writer, report *SummaryReport, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	default:
		writeSummaryText(w, report)
		return nil
	}
}

func writeSummaryText(w io.Writer, report *SummaryReport) {
	fmt.Fprintf(w, "papers:              %d\n", report.Summary.TotalPapers)
	fmt.Fprintf(w, "unique_journals:     %d\n", report.Summary.UniqueJournals)
	fmt.Fprintf(w, "avg_title_words:     %s\n", stats.FormatMean(report.Summary.AvgTitleWords))
	fmt.Fprintf(w, "avg_abstract_words:  %s\n", stats.FormatMean(report.Summary.AvgAbstractWords))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "years:               %d - %d (dataset %d - %d)\n",
		report.Filter.FromYear, report.Filter.ToYear, report.Bounds.Min, report.Bounds.Max)
	fmt.Fprintf(w, "journal:             %s\n", report.Filter.Journal)
	if report.Source == models.SourceFallback {
		fmt.Fprintf(w, "source:              demo data (real data file not loaded)\n")
	} else if report.Path != "" {
		fmt.Fprintf(w, "source:              %s\n", report.Path)
	}
}
