package models

import "fmt"

// AvailabilityStatus is the derived availability label of a scored candidate.
type AvailabilityStatus string

const (
	StatusJoined       AvailabilityStatus = "Joined"
	StatusImmediate    AvailabilityStatus = "Immediate"
	StatusYTR          AvailabilityStatus = "YTR"
	StatusYTRAvailable AvailabilityStatus = "YTR (Available)"
	StatusYTRLate      AvailabilityStatus = "YTR (Late)"
	StatusUnknown      AvailabilityStatus = "Unknown"
)

// ScoredResult is a candidate that passed every hard filter, with its scores.
// Results are built once per search and never modified afterwards.
type ScoredResult struct {
	Candidate         *Candidate         `json:"candidate"`
	Score             float64            `json:"score"`
	SkillScore        float64            `json:"skill_score"`
	ExperienceScore   float64            `json:"experience_score"`
	AvailabilityScore float64            `json:"availability_score"`
	ExpDeviation      float64            `json:"exp_deviation"`
	MatchDetails      []string           `json:"match_details"`
	Status            AvailabilityStatus `json:"status"`
}

// Breakdown renders the per-component score summary.
func (r *ScoredResult) Breakdown() string {
	return fmt.Sprintf("Skills: %.1f/50\nExperience: %.1f/30\nAvailability: %.1f/20",
		r.SkillScore, r.ExperienceScore, r.AvailabilityScore)
}

// SearchRequest is the HTTP/CLI search body.
type SearchRequest struct {
	Filter FilterRequest `json:"filter"`
	Sort   string        `json:"sort,omitempty"`
}

// SearchResponse is the response for a search or a re-sort of a stored search.
type SearchResponse struct {
	SearchID  string          `json:"search_id"`
	Sort      SortMode        `json:"sort"`
	Results   []*ScoredResult `json:"results"`
	Total     int             `json:"total"`
	QueryTime int64           `json:"query_time_ms"`
	// NoSkills is set when the request carried no usable skill, as opposed to
	// a valid request that matched nobody.
	NoSkills bool `json:"no_skills,omitempty"`
	// Suggestions holds "did you mean" skills for requested terms the synonym table does not know.
	Suggestions map[string][]string `json:"suggestions,omitempty"`
}
