package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/workforce-insight/internal/analytics"
	"github.com/jonathan/workforce-insight/internal/dataset"
	"github.com/jonathan/workforce-insight/internal/export"
	"github.com/jonathan/workforce-insight/internal/filter"
)

// topCompaniesLimit caps the company list on the sectors endpoint.
const topCompaniesLimit = 5

// parseFilter builds filter parameters from query string values. Lists accept
// both repeated parameters and comma-separated values.
func parseFilter(r *http.Request) (filter.Params, error) {
	q := r.URL.Query()
	var p filter.Params

	for _, raw := range splitValues(q["years"]) {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("invalid year %q", raw)
		}
		p.Years = append(p.Years, year)
	}
	p.Sectors = splitValues(q["sector"])
	p.EmploymentTypes = splitValues(q["employment_type"])
	p.PositionLevels = splitValues(q["position_level"])

	if raw := q.Get("salary_min"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, fmt.Errorf("invalid salary_min %q", raw)
		}
		p.SalaryMin = v
	}
	if raw := q.Get("salary_max"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, fmt.Errorf("invalid salary_max %q", raw)
		}
		p.SalaryMax = v
	}

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// loadFiltered resolves the snapshot and applies the request's filters. When
// a non-empty filter matches nothing, the full table is returned instead and
// the fallback flag is set so responses can carry "filter_fallback": true.
// The returned status is the HTTP code to use when err is non-nil.
func (s *Server) loadFiltered(r *http.Request) (dataset.Table, bool, int, error) {
	params, err := parseFilter(r)
	if err != nil {
		return nil, false, http.StatusBadRequest, err
	}

	snap, err := s.store.Get(s.datasetPath)
	if err != nil {
		return nil, false, http.StatusInternalServerError, err
	}

	table := filter.Apply(snap.Table, params)
	if len(table) == 0 && !params.IsZero() && len(snap.Table) > 0 {
		return snap.Table, true, 0, nil
	}
	return table, false, 0, nil
}

type summaryResponse struct {
	TotalPostings  int                       `json:"total_postings"`
	Sectors        int                       `json:"sectors"`
	AvgSalary      float64                   `json:"avg_salary"`
	Shortage       []analytics.SectorIndex   `json:"shortage"`
	Growth         []analytics.SectorScore   `json:"growth"`
	SectorOverview []analytics.SectorSummary `json:"sector_overview"`
	FilterFallback bool                      `json:"filter_fallback,omitempty"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	table, fallback, status, err := s.loadFiltered(r)
	if err != nil {
		s.errorResponse(w, status, err.Error())
		return
	}

	resp := summaryResponse{
		TotalPostings:  len(table),
		Sectors:        len(table.Sectors()),
		AvgSalary:      table.MeanAverageSalary(),
		FilterFallback: fallback,
	}

	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		resp.Shortage = analytics.ShortageIndex(table)
		return nil
	})
	g.Go(func() error {
		resp.Growth = analytics.TopGrowthSectors(table, s.topSectors)
		return nil
	})
	g.Go(func() error {
		resp.SectorOverview = analytics.SectorSummaries(table)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	table, fallback, status, err := s.loadFiltered(r)
	if err != nil {
		s.errorResponse(w, status, err.Error())
		return
	}

	current, emerging := s.extractor.Demand(table)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"current":         current,
		"emerging":        emerging,
		"salaries":        s.extractor.SalaryStats(table),
		"filter_fallback": fallback,
	})
}

func (s *Server) handleShortage(w http.ResponseWriter, r *http.Request) {
	table, fallback, status, err := s.loadFiltered(r)
	if err != nil {
		s.errorResponse(w, status, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sectors":         analytics.ShortageIndex(table),
		"filter_fallback": fallback,
	})
}

func (s *Server) handleGrowth(w http.ResponseWriter, r *http.Request) {
	table, fallback, status, err := s.loadFiltered(r)
	if err != nil {
		s.errorResponse(w, status, err.Error())
		return
	}

	limit := s.topSectors
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sectors":         analytics.TopGrowthSectors(table, limit),
		"filter_fallback": fallback,
	})
}

func (s *Server) handleSectors(w http.ResponseWriter, r *http.Request) {
	table, fallback, status, err := s.loadFiltered(r)
	if err != nil {
		s.errorResponse(w, status, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"sectors":         analytics.SectorSummaries(table),
		"heatmap":         analytics.HeatmapCells(table),
		"levels":          analytics.PositionLevelBenchmarks(table),
		"top_companies":   analytics.TopCompanies(table, topCompaniesLimit),
		"filter_fallback": fallback,
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	table, fallback, status, err := s.loadFiltered(r)
	if err != nil {
		s.errorResponse(w, status, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"trend":           analytics.PostingTrend(table),
		"filter_fallback": fallback,
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	table, _, status, err := s.loadFiltered(r)
	if err != nil {
		s.errorResponse(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="postings.csv"`)
	if err := export.WriteCSV(w, table); err != nil {
		s.logger.Error("failed to stream CSV export", zap.Error(err))
	}
}
