package models

// Summary holds the four scalar metrics of the dashboard. The mean fields are
// nil when the filtered subset is empty (rendered as "N/A", serialized as
// null) so that a zero-row view never produces NaN in JSON.
type Summary struct {
	TotalPapers      int      `json:"total_papers"`
	UniqueJournals   int      `json:"unique_journals"`
	AvgTitleWords    *float64 `json:"avg_title_words"`
	AvgAbstractWords *float64 `json:"avg_abstract_words"`
}

// YearCount is one bar of the publications-by-year chart.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// JournalCount is one bar of the top-journals chart.
type JournalCount struct {
	Journal string `json:"journal"`
	Count   int    `json:"count"`
}

// WordFrequency is one entry of the title word cloud.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}
