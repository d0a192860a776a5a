package ranking

import (
	"math"

	"github.com/hyperjump/talentmatch/internal/models"
)

// ExperienceScorer applies the hard experience range and computes the
// deviation used to break ties.
type ExperienceScorer struct {
	config *ScoringConfig
}

// NewExperienceScorer creates a new ExperienceScorer.
func NewExperienceScorer(config *ScoringConfig) *ExperienceScorer {
	return &ExperienceScorer{config: config}
}

// Name returns the scorer name.
func (s *ExperienceScorer) Name() string {
	return "experience"
}

// Score returns the experience points and deviation, or ok=false when the
// candidate falls outside the requested range. Any candidate that passes gets
// the full ExperienceScore; deviation never reduces it.
func (s *ExperienceScorer) Score(q *query, c *models.Candidate) (score, deviation float64, ok bool) {
	exp := candidateExperience(c)
	if !q.bounded {
		return s.config.ExperienceScore, 0, true
	}
	if exp < q.minExp || exp > q.maxExp {
		return 0, 0, false
	}
	return s.config.ExperienceScore, math.Abs(exp - q.midpoint), true
}

// candidateExperience returns total experience with NaN and negatives read as 0.
func candidateExperience(c *models.Candidate) float64 {
	if c == nil || math.IsNaN(c.TotalExperience) || c.TotalExperience < 0 {
		return 0
	}
	return c.TotalExperience
}
