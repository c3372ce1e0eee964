package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hyperjump/shirabe/internal/export"
	"github.com/hyperjump/shirabe/internal/filter"
	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/internal/stats"
	"go.uber.org/zap"
)

// filterFromQuery parses from/to/journal query params against the dataset
// bounds. Missing years default to the full range; out-of-range years are
// clamped; a non-integer year is a client error.
func filterFromQuery(r *http.Request, bounds models.YearBounds) (models.Filter, error) {
	var f models.Filter
	q := r.URL.Query()
	for _, p := range []struct {
		key  string
		dest *int
	}{
		{"from", &f.FromYear},
		{"to", &f.ToYear},
	} {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return f, fmt.Errorf("invalid %s year %q", p.key, raw)
		}
		*p.dest = v
	}
	f.Journal = q.Get("journal")
	return filter.Clamp(f, bounds), nil
}

// filteredView resolves the cached dataset and applies the request's filter.
// The bool result is false when the request was bad (response already sent).
func (s *Server) filteredView(w http.ResponseWriter, r *http.Request) (*models.LoadResult, models.Filter, *models.Dataset, bool) {
	res := s.store.Get()
	bounds := filter.Bounds(res.Dataset)
	f, err := filterFromQuery(r, bounds)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return nil, f, nil, false
	}
	return res, f, filter.Apply(res.Dataset, f), true
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	_, f, sub, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"filter":  f,
		"summary": stats.Summarize(sub),
	})
}

func (s *Server) handlePapers(w http.ResponseWriter, r *http.Request) {
	_, f, sub, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	cols := export.Columns(sub)
	limit := s.config.Charts.PreviewRows
	if limit > sub.Len() {
		limit = sub.Len()
	}
	rows := make([]models.Paper, limit)
	copy(rows, sub.Papers[:limit])
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"filter":  f,
		"columns": cols,
		"total":   sub.Len(),
		"papers":  rows,
	})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	_, f, sub, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"filter": f,
		"years":  stats.YearCounts(sub),
	})
}

func (s *Server) handleJournals(w http.ResponseWriter, r *http.Request) {
	res := s.store.Get()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"journals": filter.Journals(res.Dataset),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	_, _, sub, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	if err := export.Write(w, sub); err != nil {
		s.logger.Error("export failed", zap.Error(err))
	}
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	_, _, sub, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	warnings, err := s.charts.RenderPage(w, sub)
	if err != nil {
		s.logger.Error("chart render failed", zap.Error(err))
		return
	}
	for _, warn := range warnings {
		s.logger.Warn("chart panel degraded", zap.String("warning", warn))
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	res := s.store.Get()
	bounds := filter.Bounds(res.Dataset)
	resp := map[string]interface{}{
		"snapshot_id": res.SnapshotID,
		"source":      res.Source,
		"rows":        res.Dataset.Len(),
		"min_year":    bounds.Min,
		"max_year":    bounds.Max,
	}
	if res.Path != "" {
		resp["path"] = res.Path
	}
	if res.Reason != "" {
		resp["reason"] = res.Reason
	}
	resp["config"] = map[string]interface{}{
		"filename":     s.config.Data.Filename,
		"search_paths": s.config.Data.SearchPaths,
		"watch":        s.config.Data.Watch,
		"default_year": s.config.Data.DefaultYear,
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	res := s.store.Reload()
	s.logger.Info("dataset reloaded",
		zap.String("snapshot_id", res.SnapshotID),
		zap.String("source", string(res.Source)),
	)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot_id": res.SnapshotID,
		"source":      res.Source,
		"rows":        res.Dataset.Len(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
