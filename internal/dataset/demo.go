package dataset

import "github.com/hyperjump/shirabe/internal/models"

// DemoSize is the number of records in the demo dataset.
const DemoSize = 3

// Demo returns the fixed sample dataset shown when the real data file cannot
// be loaded. All required and derived columns are populated; it never fails.
func Demo() *models.Dataset {
	return &models.Dataset{
		Papers: []models.Paper{
			{
				Title:             "COVID-19 Vaccine Efficacy Study",
				Authors:           "Smith et al.",
				Journal:           "Medical Journal",
				PublicationYear:   2020,
				Abstract:          "Study of vaccine effectiveness",
				TitleWordCount:    4,
				AbstractWordCount: 3,
			},
			{
				Title:             "Pandemic Response Analysis",
				Authors:           "Johnson et al.",
				Journal:           "Health Review",
				PublicationYear:   2021,
				Abstract:          "Analysis of pandemic response",
				TitleWordCount:    3,
				AbstractWordCount: 4,
			},
			{
				Title:             "Virus Transmission Patterns",
				Authors:           "Williams et al.",
				Journal:           "Science Today",
				PublicationYear:   2022,
				Abstract:          "Patterns of virus transmission",
				TitleWordCount:    3,
				AbstractWordCount: 4,
			},
		},
		Columns: []string{
			models.ColumnTitle,
			models.ColumnAuthors,
			models.ColumnJournal,
			models.ColumnPublicationYear,
			models.ColumnAbstract,
			models.ColumnTitleWordCount,
			models.ColumnAbstractWordCount,
		},
	}
}
