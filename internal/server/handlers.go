package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/talentmatch/internal/cache"
	"github.com/hyperjump/talentmatch/internal/metrics"
	"github.com/hyperjump/talentmatch/internal/models"
	"github.com/hyperjump/talentmatch/internal/ranking"
	"github.com/hyperjump/talentmatch/internal/refine"
	"github.com/hyperjump/talentmatch/internal/skills"
	"github.com/hyperjump/talentmatch/internal/storage"
	"github.com/hyperjump/talentmatch/internal/validation"
)

// RefineResponse is the response for a refinement of a stored search.
type RefineResponse struct {
	SearchID string                 `json:"search_id"`
	Sort     models.SortMode        `json:"sort"`
	Results  []*models.ScoredResult `json:"results"`
	Total    int                    `json:"total"`
	Facets   refine.Facets          `json:"facets"`
}

// ExplainResponse tells why one candidate does or does not appear for a filter.
type ExplainResponse struct {
	CandidateID string               `json:"candidate_id"`
	Included    bool                 `json:"included"`
	Reason      string               `json:"reason"`
	Result      *models.ScoredResult `json:"result,omitempty"`
}

// SuggestResponse is the response for a skill suggestion lookup.
type SuggestResponse struct {
	Term        string              `json:"term"`
	Known       bool                `json:"known"`
	Suggestions []skills.Suggestion `json:"suggestions"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	if err := s.validator.Search(body); err != nil {
		s.metrics.SearchFailed(metrics.OutcomeInvalid)
		s.respondErr(w, err)
		return
	}
	var req models.SearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	offset, limit, err := s.pageParams(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ranker := s.ranker.Load()
	filter := ranker.Normalize(req.Filter)
	if len(filter.Skills) > 0 {
		if err := filter.Validate(); err != nil {
			s.metrics.SearchFailed(metrics.OutcomeInvalid)
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	mode := models.ParseSortMode(req.Sort)
	s.logger.Debug("search request",
		zap.Strings("skills", filter.Skills),
		zap.String("location", filter.Location),
		zap.String("sort", string(mode)),
	)

	candidates, err := s.storage.ListEligible(ctx)
	if err != nil {
		s.metrics.SearchFailed(metrics.OutcomeError)
		s.logger.Error("search: list candidates failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	start := time.Now()
	results, stats, err := ranker.SearchWithStats(candidates, filter, mode)
	noSkills := errors.Is(err, ranking.ErrNoSkills)
	if noSkills {
		s.metrics.SearchFailed(metrics.OutcomeNoSkills)
	} else {
		s.metrics.ObserveSearch(stats)
	}
	for _, step := range stats.Steps {
		s.logger.Debug("search step",
			zap.String("step", step.Name),
			zap.Int("initial", step.Initial),
			zap.Int("dropped", step.Dropped),
			zap.Int("left", step.Left),
		)
	}

	snap := &cache.Snapshot{
		ID:        uuid.NewString(),
		Filter:    filter,
		Sort:      mode,
		Results:   results,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.results.Put(ctx, snap); err != nil {
		s.logger.Warn("search: caching results failed", zap.String("search_id", snap.ID), zap.Error(err))
	}

	s.respondJSON(w, http.StatusOK, &models.SearchResponse{
		SearchID:    snap.ID,
		Sort:        mode,
		Results:     ranking.Paginate(results, offset, limit),
		Total:       len(results),
		QueryTime:   time.Since(start).Milliseconds(),
		NoSkills:    noSkills,
		Suggestions: s.suggest(ctx).SuggestUnknown(ranker.Synonyms(), filter.Skills),
	})
}

func (s *Server) handleGetSearch(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	offset, limit, err := s.pageParams(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	start := time.Now()
	mode := sortParam(r, snap.Sort)
	sorted := s.ranker.Load().Sort(snap.Results, mode)
	s.respondJSON(w, http.StatusOK, &models.SearchResponse{
		SearchID:  snap.ID,
		Sort:      mode,
		Results:   ranking.Paginate(sorted, offset, limit),
		Total:     len(sorted),
		QueryTime: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	if err := s.validator.Refine(body); err != nil {
		s.respondErr(w, err)
		return
	}
	var crit refine.Criteria
	if err := json.Unmarshal(body, &crit); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	offset, limit, err := s.pageParams(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode := sortParam(r, snap.Sort)
	refined := refine.Apply(s.ranker.Load().Sort(snap.Results, mode), crit)
	s.metrics.Refined()
	s.respondJSON(w, http.StatusOK, &RefineResponse{
		SearchID: snap.ID,
		Sort:     mode,
		Results:  ranking.Paginate(refined, offset, limit),
		Total:    len(refined),
		Facets:   refine.FacetsFor(snap.Results, crit),
	})
}

func (s *Server) handleDeleteSearch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.results.Delete(r.Context(), id); err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleUpsertCandidates(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	if err := s.validator.Candidates(body); err != nil {
		s.respondErr(w, err)
		return
	}
	var input []*models.Candidate
	if err := json.Unmarshal(body, &input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	n, err := s.storage.UpsertCandidates(r.Context(), input)
	if err != nil {
		s.logger.Error("upsert candidates failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.suggester.Store(nil)
	s.logger.Debug("candidates upserted", zap.Int("count", n))
	s.respondJSON(w, http.StatusCreated, map[string]int{"upserted": n})
}

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := s.pageParams(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := s.storage.ListCandidates(r.Context(), offset, limit)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"candidates": list, "offset": offset, "limit": limit})
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	c, err := s.storage.GetCandidate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete candidate request", zap.String("id", id))
	if err := s.storage.DeleteCandidate(r.Context(), id); err != nil {
		s.respondErr(w, err)
		return
	}
	s.suggester.Store(nil)
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	if err := s.validator.Search(body); err != nil {
		s.respondErr(w, err)
		return
	}
	var req models.SearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := s.storage.GetCandidate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondErr(w, err)
		return
	}

	resp := &ExplainResponse{CandidateID: c.ID}
	ranker := s.ranker.Load()
	filter := ranker.Normalize(req.Filter)
	res, why := ranker.Explain(c, filter)
	switch {
	case c.IsDeploymentExcluded():
		resp.Reason = "deployment_status"
	case why != ranking.NotExcluded:
		resp.Reason = why.String()
	case !ranker.Locations().IsMatch(c.Location, filter.Location):
		resp.Reason = "location"
		resp.Result = res
	case res.Score < ranker.Config().MinScore:
		resp.Reason = "min_score"
		resp.Result = res
	default:
		resp.Included = true
		resp.Reason = why.String()
		resp.Result = res
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := s.storage.Catalog(r.Context())
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, cat)
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	sg := s.suggest(r.Context())
	out := sg.Suggest(term)
	if out == nil {
		out = []skills.Suggestion{}
	}
	s.respondJSON(w, http.StatusOK, &SuggestResponse{
		Term:        term,
		Known:       s.ranker.Load().Synonyms().Has(term) || sg.Known(term),
		Suggestions: out,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	total, err := s.storage.CountCandidates(ctx)
	if err != nil {
		s.logger.Error("status: count candidates failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	eligible, err := s.storage.CountEligible(ctx)
	if err != nil {
		s.logger.Error("status: count eligible failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	ranker := s.ranker.Load()
	resp := map[string]interface{}{
		"candidates":     total,
		"eligible":       eligible,
		"synonym_groups": ranker.Synonyms().Len(),
		"regions":        ranker.Locations().Names(),
		"scoring":        ranker.Config(),
		"cache_backend":  s.config.Cache.Backend,
	}
	if size, err := s.storage.SizeBytes(); err == nil {
		resp["disk_usage_bytes"] = size
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// suggest returns the suggester for the current tables and dataset, building
// it on first use after a table reload or a dataset change.
func (s *Server) suggest(ctx context.Context) *skills.Suggester {
	if sg := s.suggester.Load(); sg != nil {
		return sg
	}
	var extra []string
	if cat, err := s.storage.Catalog(ctx); err == nil {
		extra = cat.Skills
	} else {
		s.logger.Warn("suggest: catalog failed, using table vocabulary only", zap.Error(err))
	}
	sg := skills.NewSuggester(s.ranker.Load().Synonyms(), extra)
	s.suggester.Store(sg)
	return sg
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*cache.Snapshot, bool) {
	snap, err := s.results.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			s.metrics.CacheLookup("miss")
		} else {
			s.metrics.CacheLookup("error")
		}
		s.respondErr(w, err)
		return nil, false
	}
	s.metrics.CacheLookup("hit")
	return snap, true
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.Server.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return body, true
}

// pageParams reads offset and limit; limit defaults to search.default_limit and
// is capped at search.max_limit.
func (s *Server) pageParams(r *http.Request) (offset, limit int, err error) {
	q := r.URL.Query()
	limit = s.config.Search.DefaultLimit
	if v := q.Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset %q", v)
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit <= 0 {
			return 0, 0, fmt.Errorf("invalid limit %q", v)
		}
	}
	if limit > s.config.Search.MaxLimit {
		limit = s.config.Search.MaxLimit
	}
	return offset, limit, nil
}

func sortParam(r *http.Request, fallback models.SortMode) models.SortMode {
	if v := r.URL.Query().Get("sort"); v != "" {
		return models.ParseSortMode(v)
	}
	return models.ParseSortMode(string(fallback))
}

// respondErr maps sentinel errors to status codes.
func (s *Server) respondErr(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		s.respondJSON(w, http.StatusBadRequest, map[string]interface{}{"error": validation.ErrInvalid.Error(), "details": verr.Details})
	case errors.Is(err, validation.ErrInvalid):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "candidate not found")
	case errors.Is(err, cache.ErrMiss):
		s.respondError(w, http.StatusNotFound, "search not found or expired")
	default:
		s.logger.Error("request failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
