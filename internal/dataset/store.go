package dataset

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hyperjump/shirabe/internal/models"
	"go.uber.org/zap"
)

// Store is the memoized dataset accessor. The first Get loads the file (or
// falls back to demo data); every later Get returns the same cached result
// until Invalidate or Reload. Demo mode is an explicit tag on the result,
// never inferred from row counts.
type Store struct {
	loader *Loader
	mu     sync.Mutex
	cached *models.LoadResult
	logger *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets a logger for load/reload events.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store over the given loader.
func NewStore(loader *Loader, opts ...StoreOption) *Store {
	s := &Store{loader: loader}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached load result, loading on first use. Never returns
// nil: every failure path produces a fallback result carrying demo data.
func (s *Store) Get() *models.LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil {
		s.cached = s.load()
	}
	return s.cached
}

// Invalidate drops the cached result so the next Get reloads.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Reload drops the cache and loads immediately, returning the fresh result.
func (s *Store) Reload() *models.LoadResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = s.load()
	return s.cached
}

func (s *Store) load() *models.LoadResult {
	ds, path, notices, err := s.loader.Load()
	id := uuid.NewString()
	if err == nil {
		if s.logger != nil {
			s.logger.Info("dataset loaded",
				zap.String("path", path),
				zap.Int("rows", ds.Len()),
				zap.String("snapshot_id", id),
			)
		}
		return &models.LoadResult{
			Dataset:    ds,
			Source:     models.SourceLoaded,
			Path:       path,
			SnapshotID: id,
			Notices:    notices,
		}
	}

	if s.logger != nil {
		s.logger.Warn("dataset load failed, using demo data", zap.Error(err))
	}
	notices = append(notices,
		models.Notice{
			Level:   models.NoticeWarn,
			Message: "Using demonstration data. To use your real data, run the cleaning script and place its output where this tool can find it.",
		},
		models.Notice{
			Level:   models.NoticeInfo,
			Message: "Demonstration mode activated with sample data",
		},
	)
	return &models.LoadResult{
		Dataset:    Demo(),
		Source:     models.SourceFallback,
		Reason:     err.Error(),
		SnapshotID: id,
		Notices:    notices,
	}
}
