package models

// AllJournals is the sentinel journal selection meaning "no journal filter".
const AllJournals = "All Journals"

// Filter is a user-selected view over a dataset: an inclusive publication-year
// interval and a journal selection (AllJournals or one exact name). It is
// re-derived from user input on every render and never persisted.
type Filter struct {
	FromYear int    `json:"from_year"`
	ToYear   int    `json:"to_year"`
	Journal  string `json:"journal"`
}

// Matches reports whether p falls inside the filter.
func (f Filter) Matches(p *Paper) bool {
	if p.PublicationYear < f.FromYear || p.PublicationYear > f.ToYear {
		return false
	}
	if f.Journal != "" && f.Journal != AllJournals && p.Journal != f.Journal {
		return false
	}
	return true
}

// YearBounds holds the integer min/max of publication_year over a dataset.
type YearBounds struct {
	Min int `json:"min_year"`
	Max int `json:"max_year"`
}
