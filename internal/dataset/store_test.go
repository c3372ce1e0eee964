package dataset

import (
	"testing"

	"github.com/hyperjump/shirabe/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_fallbackOnMissingFile(t *testing.T) {
	store := NewStore(NewLoader(testDataConfig(t.TempDir())))
	res := store.Get()
	require.NotNil(t, res)
	assert.True(t, res.IsFallback())
	assert.Equal(t, models.SourceFallback, res.Source)
	assert.NotEmpty(t, res.Reason)
	assert.NotEmpty(t, res.SnapshotID)
	assert.Equal(t, DemoSize, res.Dataset.Len())

	warned := false
	for _, n := range res.Notices {
		if n.Level == models.NoticeWarn {
			warned = true
		}
	}
	assert.True(t, warned, "fallback should carry a warning notice")
}

func TestStore_memoizes(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(NewLoader(testDataConfig(dir)))
	first := store.Get()

	// A file appearing after the first load is invisible until invalidation.
	writeFile(t, dir, "papers.csv", "title,journal,abstract\na,j,x\n")
	second := store.Get()
	assert.Equal(t, first.SnapshotID, second.SnapshotID)
	assert.True(t, second.IsFallback())

	store.Invalidate()
	third := store.Get()
	assert.NotEqual(t, first.SnapshotID, third.SnapshotID)
	assert.Equal(t, models.SourceLoaded, third.Source)
	assert.Equal(t, 1, third.Dataset.Len())
}

func TestStore_reloadMintsNewSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "papers.csv", "title,journal,abstract\na,j,x\n")
	store := NewStore(NewLoader(testDataConfig(dir)))
	first := store.Get()
	second := store.Reload()
	assert.NotEqual(t, first.SnapshotID, second.SnapshotID)
	assert.Equal(t, models.SourceLoaded, second.Source)
}

func TestDemo(t *testing.T) {
	ds := Demo()
	require.Equal(t, DemoSize, ds.Len())

	titleCounts := []int{4, 3, 3}
	abstractCounts := []int{3, 4, 4}
	years := []int{2020, 2021, 2022}
	for i, p := range ds.Papers {
		assert.Equal(t, titleCounts[i], p.TitleWordCount, "row %d title words", i)
		assert.Equal(t, abstractCounts[i], p.AbstractWordCount, "row %d abstract words", i)
		assert.Equal(t, years[i], p.PublicationYear, "row %d year", i)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Journal)
		assert.NotEmpty(t, p.Abstract)
	}
	for _, c := range requiredColumns {
		assert.True(t, ds.HasColumn(c), "column %q", c)
	}
}
