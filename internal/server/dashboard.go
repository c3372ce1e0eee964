package server

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hyperjump/shirabe/internal/export"
	"github.com/hyperjump/shirabe/internal/filter"
	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/internal/stats"
	"github.com/hyperjump/shirabe/pkg/utils"
	"go.uber.org/zap"
)

// previewTitleMax caps title length in the preview table.
const previewTitleMax = 120

// dashboardData is the template payload for the dashboard shell. The charts
// themselves live on /charts (embedded via iframe); this page carries the
// metric cards, controls, notices, and the preview table.
type dashboardData struct {
	Notices         []models.Notice
	IsDemo          bool
	TotalPapers     int
	UniqueJournals  int
	AvgTitle        string
	AvgAbstract     string
	FromYear        int
	ToYear          int
	Years           []int
	Journals        []string
	SelectedJournal string
	Columns         []string
	Rows            [][]string
	TotalFiltered   int
	ChartsURL       string
	ExportURL       string
	CloudWarning    string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	res, f, sub, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	sum := stats.Summarize(sub)

	data := dashboardData{
		Notices:         res.Notices,
		IsDemo:          res.IsFallback(),
		TotalPapers:     sum.TotalPapers,
		UniqueJournals:  sum.UniqueJournals,
		AvgTitle:        stats.FormatMean(sum.AvgTitleWords),
		AvgAbstract:     stats.FormatMean(sum.AvgAbstractWords),
		FromYear:        f.FromYear,
		ToYear:          f.ToYear,
		Journals:        filter.Journals(res.Dataset),
		SelectedJournal: f.Journal,
		Columns:         export.Columns(sub),
		TotalFiltered:   sub.Len(),
	}
	// Only years actually present: one stray publication_year value must
	// not balloon the dropdown into millions of options.
	for _, yc := range stats.YearCounts(res.Dataset) {
		data.Years = append(data.Years, yc.Year)
	}

	limit := s.config.Charts.PreviewRows
	if limit > sub.Len() {
		limit = sub.Len()
	}
	for i := 0; i < limit; i++ {
		data.Rows = append(data.Rows, previewRow(&sub.Papers[i], data.Columns))
	}

	if len(stats.WordFrequencies(sub, s.config.Charts.MinWordLength, s.config.Charts.MaxCloudWords)) == 0 {
		data.CloudWarning = "Could not generate word cloud: no words available for current filters"
	}

	q := url.Values{}
	q.Set("from", strconv.Itoa(f.FromYear))
	q.Set("to", strconv.Itoa(f.ToYear))
	q.Set("journal", f.Journal)
	data.ChartsURL = "/charts?" + q.Encode()
	data.ExportURL = "/api/v1/export?" + q.Encode()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		s.logger.Error("dashboard render failed", zap.Error(err))
	}
}

func previewRow(p *models.Paper, columns []string) []string {
	row := make([]string, len(columns))
	for i, c := range columns {
		switch c {
		case models.ColumnTitle:
			row[i] = utils.Truncate(p.Title, previewTitleMax)
		case models.ColumnAuthors:
			row[i] = p.Authors
		case models.ColumnJournal:
			row[i] = p.Journal
		case models.ColumnPublicationYear:
			row[i] = strconv.Itoa(p.PublicationYear)
		}
	}
	return row
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>CORD-19 Data Explorer</title>
<style>
  body {font-family: sans-serif; margin: 2rem; color: #222;}
  h1 {color: #1f77b4; margin-bottom: 0;}
  .subtitle {color: #ff7f0e; font-weight: bold;}
  .metrics {display: flex; gap: 1rem; margin: 1rem 0;}
  .metric-card {background: #f0f2f6; padding: 10px 20px; border-radius: 10px; text-align: center;}
  .metric-card .value {font-size: 1.6rem; font-weight: bold;}
  .notice-info {color: #1f77b4;}
  .notice-warn {color: #b8860b;}
  .notice-error {background: #ffebee; padding: 10px; border-radius: 10px; border-left: 5px solid #f44336;}
  .controls {margin: 1rem 0; padding: 10px; background: #f7f7f7; border-radius: 10px;}
  table {border-collapse: collapse; margin-top: 1rem;}
  th, td {border: 1px solid #ddd; padding: 6px 10px; text-align: left;}
  iframe {border: none; width: 100%; height: 1400px;}
</style>
</head>
<body>
<h1>&#128202; CORD-19 COVID-19 Research Explorer</h1>
<p class="subtitle">Explore metadata from COVID-19 research papers (2019-2023)</p>

{{range .Notices}}<p class="notice-{{.Level}}">{{.Message}}</p>
{{end}}

<form class="controls" method="GET" action="/">
  <label>From
    <select name="from">
      {{$from := .FromYear}}{{range .Years}}<option value="{{.}}"{{if eq . $from}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <label>To
    <select name="to">
      {{$to := .ToYear}}{{range .Years}}<option value="{{.}}"{{if eq . $to}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <label>Journal
    <select name="journal">
      {{$sel := .SelectedJournal}}{{range .Journals}}<option value="{{.}}"{{if eq . $sel}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
  <button type="submit">Apply Filters</button>
</form>

<div class="metrics">
  <div class="metric-card"><div>Total Papers</div><div class="value">{{.TotalPapers}}</div></div>
  <div class="metric-card"><div>Unique Journals</div><div class="value">{{.UniqueJournals}}</div></div>
  <div class="metric-card"><div>Avg Title Words</div><div class="value">{{.AvgTitle}}</div></div>
  <div class="metric-card"><div>Avg Abstract Words</div><div class="value">{{.AvgAbstract}}</div></div>
</div>

{{if .CloudWarning}}<p class="notice-warn">{{.CloudWarning}}</p>{{end}}
<iframe src="{{.ChartsURL}}"></iframe>

<h2>Data Preview</h2>
<p>{{.TotalFiltered}} papers match the current filters.
<a href="{{.ExportURL}}">&#128229; Download Filtered Data as CSV</a></p>
<table>
  <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
  {{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
  {{end}}
</table>

{{if .IsDemo}}
<hr>
<h3>&#128203; How to Use Your Real Data</h3>
<ol>
  <li>Run the data cleaning script to process your CORD-19 metadata</li>
  <li>Save the cleaned data as <code>cleaned_cord19_data.csv</code></li>
  <li>Place the file on your Desktop or in the folder where this server runs</li>
  <li>Restart the server (or POST /api/v1/reload) to load your real data</li>
</ol>
{{end}}
</body>
</html>
`))
