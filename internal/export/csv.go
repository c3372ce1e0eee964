// Package export writes filtered subsets as downloadable CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hyperjump/shirabe/internal/models"
)

// Filename is the download name of the exported CSV.
const Filename = "filtered_cord19_data.csv"

// ContentType is the MIME type the export is served with.
const ContentType = "text/csv"

// displayOrder is the fixed column subset (and order) used for the preview
// table and the export. Columns absent from the source file are skipped.
var displayOrder = []string{
	models.ColumnTitle,
	models.ColumnAuthors,
	models.ColumnJournal,
	models.ColumnPublicationYear,
}

// Columns returns the display columns intersected with what the dataset
// actually carries, preserving the fixed order.
func Columns(ds *models.Dataset) []string {
	out := make([]string, 0, len(displayOrder))
	for _, c := range displayOrder {
		if ds.HasColumn(c) {
			out = append(out, c)
		}
	}
	return out
}

// Write writes the full dataset (every row, not a preview) restricted to the
// display columns as CSV with a header row and no index column. Output is
// deterministic: the same dataset always produces the same bytes.
func Write(w io.Writer, ds *models.Dataset) error {
	cols := Columns(ds)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(cols))
	for i := range ds.Papers {
		for j, c := range cols {
			row[j] = cellValue(&ds.Papers[i], c)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func cellValue(p *models.Paper, column string) string {
	switch column {
	case models.ColumnTitle:
		return p.Title
	case models.ColumnAuthors:
		return p.Authors
	case models.ColumnJournal:
		return p.Journal
	case models.ColumnPublicationYear:
		return strconv.Itoa(p.PublicationYear)
	default:
		return ""
	}
}
