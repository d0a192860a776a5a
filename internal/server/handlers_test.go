package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/talentmatch/internal/cache"
	"github.com/hyperjump/talentmatch/internal/config"
	"github.com/hyperjump/talentmatch/internal/location"
	"github.com/hyperjump/talentmatch/internal/metrics"
	"github.com/hyperjump/talentmatch/internal/models"
	"github.com/hyperjump/talentmatch/internal/skills"
	"github.com/hyperjump/talentmatch/internal/storage"
	"github.com/hyperjump/talentmatch/internal/tables"
)

const testCandidates = `[
  {"id": "E1", "name": "Asha", "primary_skills": ["Java", "Spring"], "total_experience": 5,
   "designation": "Senior Engineer", "location": "Chennai", "joining_status": "Joined"},
  {"id": "E2", "name": "Ravi", "primary_skills": ["Python"], "total_experience": 3,
   "designation": "Engineer", "location": "Bangalore"},
  {"id": "E3", "name": "Mia", "additional_skills": ["Java"], "total_experience": 10,
   "designation": "Architect", "location": "Seattle", "deployment_status": "Earmarked"},
  {"id": "E4", "name": "Karan", "secondary_skills": ["Java"], "total_experience": 2,
   "designation": "Engineer", "location": "Pune"}
]`

type testServer struct {
	srv     *Server
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "candidates.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := config.Default()
	srv := NewServer(cfg, nil, store, cache.NewMemoryCache(16, time.Minute), WithMetrics(metrics.New("talentmatch")))
	ts := &testServer{srv: srv, handler: srv.Handler()}

	rec := ts.do(t, http.MethodPost, "/api/v1/candidates", testCandidates)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func ids(results []*models.ScoredResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Candidate.ID
	}
	return out
}

func TestHandleSearch(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/search", `{"filter": {"skills": ["Java"], "location": "India"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[models.SearchResponse](t, rec)

	assert.NotEmpty(t, resp.SearchID)
	assert.Equal(t, models.SortMatch, resp.Sort)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, []string{"E1", "E4"}, ids(resp.Results))
	assert.False(t, resp.NoSkills)
	assert.Equal(t, models.StatusJoined, resp.Results[0].Status)
}

func TestHandleSearch_Pagination(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/search?offset=1&limit=1", `{"filter": {"skills": ["Java"]}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[models.SearchResponse](t, rec)
	assert.Equal(t, 2, resp.Total, "earmarked candidate is never searchable")
	assert.Equal(t, []string{"E4"}, ids(resp.Results))

	rec = ts.do(t, http.MethodPost, "/api/v1/search?limit=abc", `{"filter": {"skills": ["Java"]}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearch_NoSkills(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/search", `{"filter": {"skills": ["  "]}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[models.SearchResponse](t, rec)
	assert.True(t, resp.NoSkills)
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Results)
}

func TestHandleSearch_Invalid(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"filter":`},
		{"missing filter", `{"sort": "match"}`},
		{"unknown field", `{"filter": {"skills": ["Java"], "salary": 10}}`},
		{"skills not array", `{"filter": {"skills": "Java"}}`},
		{"min above max", `{"filter": {"skills": ["Java"], "min_experience": 8, "max_experience": 2}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/v1/search", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestHandleSearch_Suggestions(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/search", `{"filter": {"skills": ["Pythn"]}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[models.SearchResponse](t, rec)
	require.Contains(t, resp.Suggestions, "Pythn")
	assert.Contains(t, resp.Suggestions["Pythn"], "python")
}

func TestHandleGetSearch_Resort(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/search", `{"filter": {"skills": ["Java"]}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[models.SearchResponse](t, rec)

	rec = ts.do(t, http.MethodGet, "/api/v1/searches/"+first.SearchID+"?sort=exp_low", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resorted := decode[models.SearchResponse](t, rec)
	assert.Equal(t, models.SortExperienceLow, resorted.Sort)
	assert.Equal(t, []string{"E4", "E1"}, ids(resorted.Results))

	rec = ts.do(t, http.MethodGet, "/api/v1/searches/"+first.SearchID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	again := decode[models.SearchResponse](t, rec)
	assert.Equal(t, ids(first.Results), ids(again.Results), "the stored order is not changed by a re-sort")
}

func TestHandleGetSearch_Unknown(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/v1/searches/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRefine(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/search", `{"filter": {"skills": ["Java"]}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	search := decode[models.SearchResponse](t, rec)

	rec = ts.do(t, http.MethodPost, "/api/v1/searches/"+search.SearchID+"/refine", `{"designations": ["Engineer"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[RefineResponse](t, rec)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, []string{"E4"}, ids(resp.Results))
	assert.Equal(t, []string{"Engineer", "Senior Engineer"}, resp.Facets.Designations)
	assert.Equal(t, []string{"Pune"}, resp.Facets.Locations)

	rec = ts.do(t, http.MethodPost, "/api/v1/searches/"+search.SearchID+"/refine", `{"min_exp": -1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/searches/missing/refine", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDeleteSearch(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/search", `{"filter": {"skills": ["Java"]}}`)
	search := decode[models.SearchResponse](t, rec)

	rec = ts.do(t, http.MethodDelete, "/api/v1/searches/"+search.SearchID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(t, http.MethodGet, "/api/v1/searches/"+search.SearchID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCandidates(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/candidates/E1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	c := decode[models.Candidate](t, rec)
	assert.Equal(t, "Asha", c.Name)

	rec = ts.do(t, http.MethodGet, "/api/v1/candidates/E3", "")
	assert.Equal(t, http.StatusOK, rec.Code, "excluded candidates are still stored")

	rec = ts.do(t, http.MethodGet, "/api/v1/candidates/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/v1/candidates/E2", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(t, http.MethodDelete, "/api/v1/candidates/E2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/candidates?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Candidates []*models.Candidate `json:"candidates"`
	}](t, rec)
	require.Len(t, list.Candidates, 2)
	assert.Equal(t, "E1", list.Candidates[0].ID)

	rec = ts.do(t, http.MethodPost, "/api/v1/candidates", `[{"name": "no id"}]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCandidates_AssignDates(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/candidates", `[
  {"id": "Y1", "primary_skills": ["Go"], "joining_status": "YTR", "assign_date": "2025-01-15T00:00:00Z"},
  {"id": "Y2", "primary_skills": ["Go"], "joining_status": "YTR", "assign_date": "2025-03-01"},
  {"id": "Y3", "primary_skills": ["Go"], "joining_status": "YTR", "assign_date": "next quarter"}
]`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, map[string]int{"upserted": 3}, decode[map[string]int](t, rec))

	rec = ts.do(t, http.MethodGet, "/api/v1/candidates/Y2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	y2 := decode[models.Candidate](t, rec)
	require.NotNil(t, y2.AssignDate)
	assert.Equal(t, "2025-03-01", y2.AssignDate.Format("2006-01-02"))

	rec = ts.do(t, http.MethodGet, "/api/v1/candidates/Y3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[models.Candidate](t, rec).AssignDate)

	rec = ts.do(t, http.MethodPost, "/api/v1/search", `{"filter": {"skills": ["Go"], "project_start_date": "2025-02-01"}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[models.SearchResponse](t, rec)
	status := map[string]models.AvailabilityStatus{}
	for _, r := range resp.Results {
		status[r.Candidate.ID] = r.Status
	}
	assert.Equal(t, models.StatusYTRAvailable, status["Y1"])
	assert.Equal(t, models.StatusYTRLate, status["Y2"])
	assert.Equal(t, models.StatusYTR, status["Y3"])
}

func TestHandleExplain(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		id       string
		body     string
		included bool
		reason   string
	}{
		{"E1", `{"filter": {"skills": ["Java"]}}`, true, "none"},
		{"E2", `{"filter": {"skills": ["Java"]}}`, false, "no_skill_match"},
		{"E3", `{"filter": {"skills": ["Java"]}}`, false, "deployment_status"},
		{"E4", `{"filter": {"skills": ["Java"], "min_experience": 3}}`, false, "experience"},
		{"E4", `{"filter": {"skills": ["Java"], "location": "USA"}}`, false, "location"},
		{"E1", `{"filter": {"skills": []}}`, false, "no_skills"},
	}
	for _, tt := range tests {
		t.Run(tt.id+" "+tt.reason, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/v1/candidates/"+tt.id+"/explain", tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			resp := decode[ExplainResponse](t, rec)
			assert.Equal(t, tt.included, resp.Included)
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}

	rec := ts.do(t, http.MethodPost, "/api/v1/candidates/missing/explain", `{"filter": {"skills": ["Java"]}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCatalog(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cat := decode[storage.Catalog](t, rec)
	assert.Contains(t, cat.Skills, "Java")
	assert.Contains(t, cat.Skills, "Python")
	assert.NotContains(t, cat.Designations, "Architect")
	assert.NotContains(t, cat.Locations, "Seattle")
}

func TestHandleSuggest(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/skills/suggest?q=jav", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[SuggestResponse](t, rec)
	assert.False(t, resp.Known)
	terms := make([]string, len(resp.Suggestions))
	for i, s := range resp.Suggestions {
		terms[i] = s.Term
	}
	assert.Contains(t, terms, "java")

	rec = ts.do(t, http.MethodGet, "/api/v1/skills/suggest", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStatus(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, float64(4), out["candidates"])
	assert.Equal(t, float64(3), out["eligible"])
	assert.Equal(t, "memory", out["cache_backend"])
}

func TestHandleHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	ts.do(t, http.MethodPost, "/api/v1/search", `{"filter": {"skills": ["Java"]}}`)
	rec = ts.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "talentmatch_searches_total")
	assert.Contains(t, body, `route="/api/v1/search"`)
}

func TestSetTables(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/search", `{"filter": {"skills": ["Java"], "location": "South"}}`)
	resp := decode[models.SearchResponse](t, rec)
	assert.Equal(t, 0, resp.Total)

	ts.srv.SetTables(&tables.Set{
		Synonyms:  skills.DefaultSynonymTable(),
		Locations: location.DefaultTable().Merge(map[string][]string{"SOUTH": {"chennai"}}),
	})

	rec = ts.do(t, http.MethodPost, "/api/v1/search", `{"filter": {"skills": ["Java"], "location": "South"}}`)
	resp = decode[models.SearchResponse](t, rec)
	assert.Equal(t, []string{"E1"}, ids(resp.Results))
}
