// Package dataset locates, parses, and caches the cleaned research-paper
// metadata file, falling back to an embedded demo dataset when loading fails.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/pkg/utils"
)

// publishTimeLayouts are tried in order when parsing publish_time. A row
// whose date matches none of them gets the configured default year instead
// of failing the whole load.
var publishTimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
	"2006",
}

// Loader discovers and parses the dataset file.
type Loader struct {
	cfg config.DataConfig
}

// NewLoader creates a loader for the given data settings.
func NewLoader(cfg config.DataConfig) *Loader {
	return &Loader{cfg: cfg}
}

// Discover returns the first existing candidate path, trying each configured
// search directory in priority order joined with the configured filename.
func (l *Loader) Discover() (string, error) {
	for _, dir := range l.cfg.SearchPaths {
		candidate := filepath.Join(dir, l.cfg.Filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			if abs, err := filepath.Abs(candidate); err == nil {
				return abs, nil
			}
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// Load discovers and parses the data file. It returns the dataset, the path
// it was read from, and the notices produced along the way. On failure the
// dataset is nil and the error is one of the typed failures in errors.go
// (or a wrapped parse error); notices still describe what happened.
func (l *Loader) Load() (*models.Dataset, string, []models.Notice, error) {
	var notices []models.Notice

	path, err := l.Discover()
	if err != nil {
		notices = append(notices, models.Notice{
			Level:   models.NoticeError,
			Message: fmt.Sprintf("Data file not found. Please make sure %q exists.", l.cfg.Filename),
		})
		return nil, "", notices, err
	}
	notices = append(notices, models.Notice{
		Level:   models.NoticeInfo,
		Message: fmt.Sprintf("Loading data from: %s", path),
	})

	header, rows, err := readTable(path)
	if err != nil {
		notices = append(notices, models.Notice{
			Level:   models.NoticeError,
			Message: fmt.Sprintf("Error loading data: %v", err),
		})
		return nil, "", notices, err
	}
	if len(rows) == 0 {
		notices = append(notices, models.Notice{
			Level:   models.NoticeError,
			Message: "The data file is empty.",
		})
		return nil, "", notices, ErrEmpty
	}

	ds, err := l.build(header, rows)
	if err != nil {
		notices = append(notices, models.Notice{
			Level:   models.NoticeError,
			Message: err.Error(),
		})
		return nil, "", notices, err
	}
	return ds, path, notices, nil
}

// readTable parses the file at path into a header row and data rows.
// CSV is the usual format; .xlsx files are accepted as well.
func readTable(path string) ([]string, [][]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readCSV(path)
}

// requiredColumns must all be present in the header for a load to succeed.
var requiredColumns = []string{models.ColumnTitle, models.ColumnJournal, models.ColumnAbstract}

// build turns raw rows into a Dataset, deriving publication_year and the
// word-count columns when the file does not carry them.
func (l *Loader) build(header []string, rows [][]string) (*models.Dataset, error) {
	idx := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		if _, seen := idx[name]; !seen {
			idx[name] = i
			columns = append(columns, name)
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &MissingColumnError{Column: col}
		}
	}

	cell := func(row []string, col string) (string, bool) {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	papers := make([]models.Paper, 0, len(rows))
	for _, row := range rows {
		var p models.Paper
		p.Title, _ = cell(row, models.ColumnTitle)
		p.Authors, _ = cell(row, models.ColumnAuthors)
		p.Journal, _ = cell(row, models.ColumnJournal)
		p.PublishTime, _ = cell(row, models.ColumnPublishTime)
		p.Abstract, _ = cell(row, models.ColumnAbstract)
		p.PublicationYear = l.publicationYear(row, cell)
		p.TitleWordCount = wordCountColumn(row, cell, models.ColumnTitleWordCount, p.Title)
		p.AbstractWordCount = wordCountColumn(row, cell, models.ColumnAbstractWordCount, p.Abstract)
		papers = append(papers, p)
	}

	// The derived columns are part of every dataset regardless of the file.
	for _, derived := range []string{models.ColumnPublicationYear, models.ColumnTitleWordCount, models.ColumnAbstractWordCount} {
		if _, ok := idx[derived]; !ok {
			columns = append(columns, derived)
		}
	}
	return &models.Dataset{Papers: papers, Columns: columns}, nil
}

// publicationYear resolves the year for one row: an explicit
// publication_year column wins, then a parseable publish_time, then the
// configured default.
func (l *Loader) publicationYear(row []string, cell func([]string, string) (string, bool)) int {
	if v, ok := cell(row, models.ColumnPublicationYear); ok && v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			return y
		}
	}
	if v, ok := cell(row, models.ColumnPublishTime); ok && v != "" {
		for _, layout := range publishTimeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t.Year()
			}
		}
	}
	return l.cfg.DefaultYear
}

// wordCountColumn uses the file's precomputed count when present and
// parseable, otherwise computes the whitespace-token count of text.
func wordCountColumn(row []string, cell func([]string, string) (string, bool), col, text string) int {
	if v, ok := cell(row, col); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return utils.WordCount(text)
}
