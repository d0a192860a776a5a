package ranking

import (
	"strings"

	"github.com/hyperjump/talentmatch/internal/models"
)

// AvailabilityScorer derives the availability status of a candidate and its points.
type AvailabilityScorer struct {
	config *ScoringConfig
}

// NewAvailabilityScorer creates a new AvailabilityScorer.
func NewAvailabilityScorer(config *ScoringConfig) *AvailabilityScorer {
	return &AvailabilityScorer{config: config}
}

// Score evaluates, in order: joined, immediate, then yet-to-report. A YTR
// candidate is compared against the project start date when both dates are
// known; the comparison is by calendar day.
func (s *AvailabilityScorer) Score(q *query, c *models.Candidate) (models.AvailabilityStatus, float64) {
	if c == nil {
		return models.StatusUnknown, 0
	}
	joining := strings.ToLower(strings.TrimSpace(c.JoiningStatus))

	switch {
	case joining == "joined":
		return models.StatusJoined, s.config.JoinedScore
	case strings.Contains(strings.ToLower(c.AvailableFrom), "immediate"):
		return models.StatusImmediate, s.config.ImmediateScore
	case joining == "ytr":
		if !q.hasStart || c.AssignDate == nil || c.AssignDate.IsZero() {
			return models.StatusYTR, s.config.YTRScore
		}
		if models.CalendarDay(*c.AssignDate).After(models.CalendarDay(q.start)) {
			return models.StatusYTRLate, s.config.YTRLateScore
		}
		return models.StatusYTRAvailable, s.config.YTRAvailableScore
	default:
		return models.StatusUnknown, 0
	}
}
