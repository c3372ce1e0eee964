// Package charts builds the dashboard's chart panels with go-echarts.
package charts

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/internal/stats"
)

// ErrNoWords means the word cloud had no usable tokens (e.g. an empty or
// degenerate filtered subset). The panel degrades to a warning.
var ErrNoWords = errors.New("no words available for word cloud")

// Builder turns aggregations into rendered charts.
type Builder struct {
	cfg config.ChartsConfig
}

// NewBuilder creates a chart builder with the given presentation settings.
func NewBuilder(cfg config.ChartsConfig) *Builder {
	return &Builder{cfg: cfg}
}

// YearBar is the publications-per-year bar chart, x-axis ascending by year.
func (b *Builder) YearBar(counts []models.YearCount) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Number of Publications by Year"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "400px"}),
	)
	years := make([]string, 0, len(counts))
	data := make([]opts.BarData, 0, len(counts))
	for _, c := range counts {
		years = append(years, fmt.Sprintf("%d", c.Year))
		data = append(data, opts.BarData{Value: c.Count})
	}
	bar.SetXAxis(years).AddSeries("papers", data)
	return bar
}

// TopJournalsBar is the horizontal top-journals bar chart, largest first.
func (b *Builder) TopJournalsBar(counts []models.JournalCount) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Top Journals by Publication Count"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "400px"}),
	)
	// Reversed y-axis ordering: echarts draws category axes bottom-up, so
	// feed the smallest first to put the largest on top.
	names := make([]string, 0, len(counts))
	data := make([]opts.BarData, 0, len(counts))
	for i := len(counts) - 1; i >= 0; i-- {
		names = append(names, counts[i].Journal)
		data = append(data, opts.BarData{Value: counts[i].Count})
	}
	bar.SetXAxis(names).AddSeries("papers", data)
	bar.XYReversal()
	return bar
}

// TitleCloud is the word cloud over title word frequencies. Returns
// ErrNoWords when there is nothing to draw.
func (b *Builder) TitleCloud(freqs []models.WordFrequency) (*charts.WordCloud, error) {
	if len(freqs) == 0 {
		return nil, ErrNoWords
	}
	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Common Words in Paper Titles"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "400px"}),
	)
	data := make([]opts.WordCloudData, 0, len(freqs))
	for _, f := range freqs {
		data = append(data, opts.WordCloudData{Name: f.Word, Value: f.Count})
	}
	wc.AddSeries("titles", data,
		// go-echarts v2.4.x exports this option under the misspelled name.
		charts.WithWorldCloudChartOpts(opts.WordCloudChart{
			SizeRange: []float32{14, 60},
		}),
	)
	return wc, nil
}

// RenderPage renders all chart panels for the filtered dataset into w as a
// standalone HTML page. A failing panel (today only the word cloud) is
// skipped and reported in the returned warnings; it never aborts the page.
func (b *Builder) RenderPage(w io.Writer, ds *models.Dataset) ([]string, error) {
	var warnings []string

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		b.YearBar(stats.YearCounts(ds)),
		b.TopJournalsBar(stats.TopJournals(ds, b.cfg.TopJournals)),
	)
	cloud, err := b.TitleCloud(stats.WordFrequencies(ds, b.cfg.MinWordLength, b.cfg.MaxCloudWords))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("Could not generate word cloud: %v", err))
	} else {
		page.AddCharts(cloud)
	}

	if err := page.Render(w); err != nil {
		return warnings, fmt.Errorf("render charts: %w", err)
	}
	return warnings, nil
}
