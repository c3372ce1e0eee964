// Package integration exercises the full load -> filter -> stats -> export
// pipeline over a real file on disk.
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/dataset"
	"github.com/hyperjump/shirabe/internal/export"
	"github.com/hyperjump/shirabe/internal/filter"
	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/internal/stats"
)

const sampleCSV = `title,authors,journal,publish_time,abstract
COVID-19 Vaccine Efficacy Study,Smith et al.,Medical Journal,2020-06-01,Study of vaccine effectiveness
Pandemic Response Analysis,Johnson et al.,Health Review,2021-02-10,Analysis of pandemic response
Virus Transmission Patterns,Williams et al.,Science Today,2022-09-30,Patterns of virus transmission
Long COVID Outcomes,,Medical Journal,bad-date,Outcomes of long covid patients
`

func TestIntegration_Pipeline(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "papers.csv"), []byte(sampleCSV), 0600); err != nil {
		t.Fatal(err)
	}
	cfg := config.DataConfig{
		Filename:    "papers.csv",
		SearchPaths: []string{dir},
		DefaultYear: 2020,
	}

	store := dataset.NewStore(dataset.NewLoader(cfg))
	res := store.Get()
	if res.IsFallback() {
		t.Fatalf("expected real load, got fallback: %s", res.Reason)
	}
	if res.Dataset.Len() != 4 {
		t.Fatalf("rows: got %d", res.Dataset.Len())
	}

	bounds := filter.Bounds(res.Dataset)
	if bounds.Min != 2020 || bounds.Max != 2022 {
		t.Errorf("bounds: %+v", bounds)
	}

	// The bad-date row defaults its year and lands inside the 2020 bucket.
	f := filter.Clamp(models.Filter{Journal: "Medical Journal"}, bounds)
	sub := filter.Apply(res.Dataset, f)
	if sub.Len() != 2 {
		t.Fatalf("filtered rows: got %d", sub.Len())
	}

	sum := stats.Summarize(sub)
	if sum.TotalPapers != 2 || sum.UniqueJournals != 1 {
		t.Errorf("summary: %+v", sum)
	}

	years := stats.YearCounts(sub)
	if len(years) != 1 || years[0].Year != 2020 || years[0].Count != 2 {
		t.Errorf("year counts: %+v", years)
	}

	var a, b bytes.Buffer
	if err := export.Write(&a, sub); err != nil {
		t.Fatal(err)
	}
	if err := export.Write(&b, sub); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("export is not reproducible")
	}
}

func TestIntegration_FallbackThenReload(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DataConfig{
		Filename:    "papers.csv",
		SearchPaths: []string{dir},
		DefaultYear: 2020,
	}
	store := dataset.NewStore(dataset.NewLoader(cfg))

	res := store.Get()
	if !res.IsFallback() {
		t.Fatal("expected fallback with no file present")
	}
	if res.Dataset.Len() != dataset.DemoSize {
		t.Errorf("demo rows: got %d", res.Dataset.Len())
	}

	if err := os.WriteFile(filepath.Join(dir, "papers.csv"), []byte(sampleCSV), 0600); err != nil {
		t.Fatal(err)
	}
	res = store.Reload()
	if res.IsFallback() {
		t.Fatalf("reload should pick up the new file: %s", res.Reason)
	}
	if res.Dataset.Len() != 4 {
		t.Errorf("rows after reload: got %d", res.Dataset.Len())
	}
}
