// Package models defines core data structures for papers, filters, and summaries.
package models

// Column names recognized in a source file. Title, journal, and abstract are
// required; the rest are optional but used when present.
const (
	ColumnTitle             = "title"
	ColumnAuthors           = "authors"
	ColumnJournal           = "journal"
	ColumnPublishTime       = "publish_time"
	ColumnPublicationYear   = "publication_year"
	ColumnAbstract          = "abstract"
	ColumnTitleWordCount    = "title_word_count"
	ColumnAbstractWordCount = "abstract_word_count"
)

// Paper represents one research-paper metadata record. Empty strings stand in
// for missing values; word counts are always populated by the loader.
type Paper struct {
	Title             string `json:"title"`
	Authors           string `json:"authors,omitempty"`
	Journal           string `json:"journal"`
	PublishTime       string `json:"publish_time,omitempty"`
	PublicationYear   int    `json:"publication_year"`
	Abstract          string `json:"abstract"`
	TitleWordCount    int    `json:"title_word_count"`
	AbstractWordCount int    `json:"abstract_word_count"`
}

// Dataset is an ordered collection of papers plus the set of columns that were
// present in the source file, so consumers can intersect display columns with
// what is actually available.
type Dataset struct {
	Papers  []Paper  `json:"papers"`
	Columns []string `json:"columns"`
}

// Len returns the number of papers.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Papers)
}

// HasColumn reports whether the source file carried the named column.
func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}
