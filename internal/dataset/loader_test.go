package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/models"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func testDataConfig(dirs ...string) config.DataConfig {
	return config.DataConfig{
		Filename:    "papers.csv",
		SearchPaths: dirs,
		DefaultYear: 2020,
	}
}

func TestDiscover_prefersFirstCandidate(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, first, "papers.csv", "title,journal,abstract\na,b,c\n")
	writeFile(t, second, "papers.csv", "title,journal,abstract\nx,y,z\n")

	l := NewLoader(testDataConfig(first, second))
	path, err := l.Discover()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != first {
		t.Errorf("got %s, want a file under %s", path, first)
	}
}

func TestDiscover_skipsMissingDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "papers.csv", "title,journal,abstract\na,b,c\n")

	l := NewLoader(testDataConfig(filepath.Join(dir, "nope"), dir))
	path, err := l.Discover()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("got %s", path)
	}
}

func TestLoad_notFound(t *testing.T) {
	l := NewLoader(testDataConfig(t.TempDir()))
	_, _, notices, err := l.Load()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if len(notices) == 0 || notices[0].Level != models.NoticeError {
		t.Errorf("expected an error notice, got %v", notices)
	}
}

func TestLoad_emptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "papers.csv", "title,journal,abstract\n")
	l := NewLoader(testDataConfig(dir))
	_, _, _, err := l.Load()
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("got %v, want ErrEmpty", err)
	}
}

func TestLoad_missingRequiredColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "papers.csv", "title,abstract\na,c\n")
	l := NewLoader(testDataConfig(dir))
	_, _, _, err := l.Load()
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, want MissingColumnError", err)
	}
	if missing.Column != models.ColumnJournal {
		t.Errorf("column: got %q", missing.Column)
	}
}

func TestLoad_derivesYearFromPublishTime(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "papers.csv",
		"title,journal,abstract,publish_time\n"+
			"a,j,x,2021-03-15\n"+
			"b,j,y,2019\n"+
			"c,j,z,not-a-date\n"+
			"d,j,w,\n")
	l := NewLoader(testDataConfig(dir))
	ds, _, _, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := []int{2021, 2019, 2020, 2020}
	for i, y := range want {
		if ds.Papers[i].PublicationYear != y {
			t.Errorf("row %d year: got %d, want %d", i, ds.Papers[i].PublicationYear, y)
		}
	}
}

func TestLoad_publicationYearColumnWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "papers.csv",
		"title,journal,abstract,publish_time,publication_year\na,j,x,2021-03-15,1999\n")
	l := NewLoader(testDataConfig(dir))
	ds, _, _, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if ds.Papers[0].PublicationYear != 1999 {
		t.Errorf("got %d, want 1999", ds.Papers[0].PublicationYear)
	}
}

func TestLoad_computesWordCounts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "papers.csv",
		"title,journal,abstract\n"+
			"COVID-19 Vaccine Efficacy Study,j,Study of vaccine effectiveness\n"+
			",j,\n")
	l := NewLoader(testDataConfig(dir))
	ds, _, _, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got := ds.Papers[0].TitleWordCount; got != 4 {
		t.Errorf("title words: got %d, want 4", got)
	}
	if got := ds.Papers[0].AbstractWordCount; got != 4 {
		t.Errorf("abstract words: got %d, want 4", got)
	}
	// A missing title/abstract stringifies to "nan" and counts as one word.
	if got := ds.Papers[1].TitleWordCount; got != 1 {
		t.Errorf("missing title words: got %d, want 1", got)
	}
	if got := ds.Papers[1].AbstractWordCount; got != 1 {
		t.Errorf("missing abstract words: got %d, want 1", got)
	}
}

func TestLoad_keepsExistingWordCountColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "papers.csv",
		"title,journal,abstract,title_word_count,abstract_word_count\n"+
			"one two three,j,x,99,88\n"+
			"one two three,j,x,bogus,\n")
	l := NewLoader(testDataConfig(dir))
	ds, _, _, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if ds.Papers[0].TitleWordCount != 99 || ds.Papers[0].AbstractWordCount != 88 {
		t.Errorf("file counts not used: %+v", ds.Papers[0])
	}
	// Unparseable cells fall back to computing from the text.
	if ds.Papers[1].TitleWordCount != 3 {
		t.Errorf("recomputed title words: got %d, want 3", ds.Papers[1].TitleWordCount)
	}
	if ds.Papers[1].AbstractWordCount != 1 {
		t.Errorf("recomputed abstract words: got %d, want 1", ds.Papers[1].AbstractWordCount)
	}
}

func TestLoad_raggedRowsTolerated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "papers.csv",
		"title,journal,abstract,authors\n"+
			"a,j,x\n")
	l := NewLoader(testDataConfig(dir))
	ds, _, _, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if ds.Papers[0].Authors != "" {
		t.Errorf("short row authors: got %q", ds.Papers[0].Authors)
	}
}

func TestLoad_columnsRecorded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "papers.csv", "title,journal,abstract\na,j,x\n")
	l := NewLoader(testDataConfig(dir))
	ds, _, _, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if ds.HasColumn(models.ColumnAuthors) {
		t.Error("authors should be absent")
	}
	// Derived columns are always present.
	for _, c := range []string{models.ColumnPublicationYear, models.ColumnTitleWordCount, models.ColumnAbstractWordCount} {
		if !ds.HasColumn(c) {
			t.Errorf("derived column %q missing", c)
		}
	}
}

func TestLoad_xlsx(t *testing.T) {
	dir := t.TempDir()
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"title", "journal", "abstract", "publication_year"},
		{"Pandemic Response Analysis", "Health Review", "Analysis of pandemic response", 2021},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(dir, "papers.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	cfg := testDataConfig(dir)
	cfg.Filename = "papers.xlsx"
	ds, loadedPath, _, err := NewLoader(cfg).Load()
	if err != nil {
		t.Fatal(err)
	}
	if loadedPath != path {
		t.Errorf("path: got %s", loadedPath)
	}
	if ds.Len() != 1 || ds.Papers[0].PublicationYear != 2021 {
		t.Errorf("unexpected dataset: %+v", ds.Papers)
	}
	if ds.Papers[0].TitleWordCount != 3 {
		t.Errorf("title words: got %d, want 3", ds.Papers[0].TitleWordCount)
	}
}
