package ranking

import (
	"math"
	"time"

	"github.com/hyperjump/talentmatch/internal/location"
	"github.com/hyperjump/talentmatch/internal/models"
	"github.com/hyperjump/talentmatch/internal/skills"
)

// Ranker combines the skill, experience and availability scorers with the
// location filter. It holds only immutable tables and is safe for concurrent use.
type Ranker struct {
	config             *ScoringConfig
	synonyms           *skills.SynonymTable
	locations          *location.Table
	skillScorer        *SkillScorer
	experienceScorer   *ExperienceScorer
	availabilityScorer *AvailabilityScorer
}

// NewRanker creates a new Ranker. Nil arguments fall back to the defaults.
func NewRanker(config *ScoringConfig, synonyms *skills.SynonymTable, locations *location.Table) *Ranker {
	cfg := DefaultScoringConfig()
	if config != nil {
		c := *config
		cfg = &c
	}
	cfg.ApplyDefaults()
	if synonyms == nil {
		synonyms = skills.DefaultSynonymTable()
	}
	if locations == nil {
		locations = location.DefaultTable()
	}

	return &Ranker{
		config:             cfg,
		synonyms:           synonyms,
		locations:          locations,
		skillScorer:        NewSkillScorer(cfg),
		experienceScorer:   NewExperienceScorer(cfg),
		availabilityScorer: NewAvailabilityScorer(cfg),
	}
}

// Config returns a copy of the scoring configuration.
func (r *Ranker) Config() ScoringConfig {
	return *r.config
}

// Synonyms returns the synonym table.
func (r *Ranker) Synonyms() *skills.SynonymTable {
	return r.synonyms
}

// Locations returns the location table.
func (r *Ranker) Locations() *location.Table {
	return r.locations
}

// Normalize sanitizes a filter request with the engine's canonicalizer.
func (r *Ranker) Normalize(f models.FilterRequest) models.FilterRequest {
	return f.Normalize(skills.Canonicalize)
}

// Score scores one candidate against f. The second return value is false when
// the candidate is excluded. Location is not applied here; see Search.
func (r *Ranker) Score(c *models.Candidate, f models.FilterRequest) (*models.ScoredResult, bool) {
	res, _ := r.score(r.prepare(f), c)
	return res, res != nil
}

// Explain is Score with the reason for an exclusion.
func (r *Ranker) Explain(c *models.Candidate, f models.FilterRequest) (*models.ScoredResult, Exclusion) {
	return r.score(r.prepare(f), c)
}

func (r *Ranker) prepare(f models.FilterRequest) *query {
	f = r.Normalize(f)
	q := &query{
		matchers: make([]skills.Matcher, 0, len(f.Skills)),
		bounded:  f.HasExperienceBounds(),
		maxExp:   math.Inf(1),
		location: f.Location,
	}
	for _, s := range f.Skills {
		q.matchers = append(q.matchers, r.synonyms.Matcher(s))
	}
	midMax := r.config.MidpointMaxExperience
	if f.MinExperience != nil {
		q.minExp = *f.MinExperience
	}
	if f.MaxExperience != nil {
		q.maxExp = *f.MaxExperience
		midMax = *f.MaxExperience
	}
	q.midpoint = (q.minExp + midMax) / 2
	q.start, q.hasStart = f.StartDate()
	return q
}

func (r *Ranker) score(q *query, c *models.Candidate) (*models.ScoredResult, Exclusion) {
	if len(q.matchers) == 0 {
		return nil, ExcludedNoSkills
	}
	if c == nil {
		return nil, ExcludedNoSkillMatch
	}

	sm := r.skillScorer.Score(q.matchers, c)
	if !sm.Matched {
		return nil, ExcludedNoSkillMatch
	}

	expScore, deviation, ok := r.experienceScorer.Score(q, c)
	if !ok {
		return nil, ExcludedExperience
	}

	status, availScore := r.availabilityScorer.Score(q, c)

	return &models.ScoredResult{
		Candidate:         c,
		Score:             sm.Score + expScore + availScore,
		SkillScore:        sm.Score,
		ExperienceScore:   expScore,
		AvailabilityScore: availScore,
		ExpDeviation:      deviation,
		MatchDetails:      sm.Details,
		Status:            status,
	}, NotExcluded
}

// Search scores all candidates, applies the location filter and the minimum
// score threshold, and returns the survivors ordered by mode.
func (r *Ranker) Search(candidates []*models.Candidate, f models.FilterRequest, mode models.SortMode) []*models.ScoredResult {
	results, _, _ := r.SearchWithStats(candidates, f, mode)
	return results
}

// SearchWithStats is Search with per-step accounting. It returns ErrNoSkills,
// and no results, when f has no usable skill.
func (r *Ranker) SearchWithStats(candidates []*models.Candidate, f models.FilterRequest, mode models.SortMode) ([]*models.ScoredResult, Stats, error) {
	start := time.Now()
	q := r.prepare(f)
	stats := Stats{Candidates: len(candidates)}
	if len(q.matchers) == 0 {
		stats.Duration = time.Since(start)
		return []*models.ScoredResult{}, stats, ErrNoSkills
	}

	scored := make([]*models.ScoredResult, 0, len(candidates))
	var noMatch, outOfRange int
	for _, c := range candidates {
		res, why := r.score(q, c)
		switch why {
		case NotExcluded:
			scored = append(scored, res)
		case ExcludedExperience:
			outOfRange++
		default:
			noMatch++
		}
	}
	stats.Steps = append(stats.Steps,
		Step{Name: r.skillScorer.Name(), Initial: len(candidates), Dropped: noMatch, Left: len(candidates) - noMatch},
		Step{Name: r.experienceScorer.Name(), Initial: len(candidates) - noMatch, Dropped: outOfRange, Left: len(scored)},
	)

	located := make([]*models.ScoredResult, 0, len(scored))
	for _, res := range scored {
		if r.locations.IsMatch(res.Candidate.Location, q.location) {
			located = append(located, res)
		}
	}
	stats.Steps = append(stats.Steps, Step{Name: "location", Initial: len(scored), Dropped: len(scored) - len(located), Left: len(located)})

	kept := FilterByMinScore(located, r.config.MinScore)
	stats.Steps = append(stats.Steps, Step{Name: "min_score", Initial: len(located), Dropped: len(located) - len(kept), Left: len(kept)})

	out := Sort(kept, mode, r.config.SortEpsilon)
	stats.Returned = len(out)
	stats.Duration = time.Since(start)
	return out, stats, nil
}

// Sort returns results ordered by mode using the configured epsilon.
func (r *Ranker) Sort(results []*models.ScoredResult, mode models.SortMode) []*models.ScoredResult {
	return Sort(results, mode, r.config.SortEpsilon)
}

// FilterByMinScore drops results whose composite score is below minScore.
// A non-positive minScore keeps everything.
func FilterByMinScore(results []*models.ScoredResult, minScore float64) []*models.ScoredResult {
	if minScore <= 0 {
		return results
	}
	filtered := make([]*models.ScoredResult, 0, len(results))
	for _, r := range results {
		if r.Score >= minScore {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// TopN returns the top N results.
func TopN(results []*models.ScoredResult, n int) []*models.ScoredResult {
	if n <= 0 || n >= len(results) {
		return results
	}
	return results[:n]
}

// Paginate returns a page of results.
func Paginate(results []*models.ScoredResult, offset, limit int) []*models.ScoredResult {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return []*models.ScoredResult{}
	}
	end := offset + limit
	if limit <= 0 || end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}
