package models

// Source tags how a dataset was obtained. Demo mode is carried explicitly
// here rather than re-derived from the row count downstream.
type Source string

const (
	// SourceLoaded means the dataset came from a real data file.
	SourceLoaded Source = "loaded"
	// SourceFallback means loading failed and the embedded demo data is in use.
	SourceFallback Source = "fallback"
)

// NoticeLevel classifies a loader notice for the presentation layer.
type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeWarn  NoticeLevel = "warn"
	NoticeError NoticeLevel = "error"
)

// Notice is a user-visible message emitted while loading (which path was
// tried, why loading failed, that demo mode is active, etc).
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// LoadResult is the outcome of one load attempt: either a real dataset or the
// demo fallback, plus everything the presentation layer needs to explain it.
type LoadResult struct {
	Dataset *Dataset `json:"dataset"`
	Source  Source   `json:"source"`
	// Reason is the failure description when Source is SourceFallback.
	Reason string `json:"reason,omitempty"`
	// Path is the file the dataset was read from when Source is SourceLoaded.
	Path string `json:"path,omitempty"`
	// SnapshotID identifies this load; a new ID is minted on every (re)load.
	SnapshotID string   `json:"snapshot_id"`
	Notices    []Notice `json:"notices,omitempty"`
}

// IsFallback reports whether the demo dataset is in use.
func (r *LoadResult) IsFallback() bool {
	return r != nil && r.Source == SourceFallback
}
