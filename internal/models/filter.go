package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SortMode selects the ordering of a ranked result list.
type SortMode string

const (
	// SortMatch orders by skill score, then experience deviation, then composite score.
	SortMatch SortMode = "match"
	// SortDesignation orders by designation ascending.
	SortDesignation SortMode = "designation"
	// SortExperienceLow orders by total experience ascending.
	SortExperienceLow SortMode = "exp_low"
	// SortExperienceHigh orders by total experience descending.
	SortExperienceHigh SortMode = "exp_high"
)

// ParseSortMode maps a user-supplied mode to a SortMode; anything unknown is SortMatch.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortDesignation:
		return SortDesignation
	case SortExperienceLow:
		return SortExperienceLow
	case SortExperienceHigh:
		return SortExperienceHigh
	default:
		return SortMatch
	}
}

// FilterRequest is the structured search request. Manual and AI-derived
// requests share this shape and are treated identically.
type FilterRequest struct {
	Skills           []string `json:"skills" yaml:"skills"`
	MinExperience    *float64 `json:"min_experience,omitempty" yaml:"min_experience,omitempty"`
	MaxExperience    *float64 `json:"max_experience,omitempty" yaml:"max_experience,omitempty"`
	Location         string   `json:"location,omitempty" yaml:"location,omitempty"`
	ProjectStartDate string   `json:"project_start_date,omitempty" yaml:"project_start_date,omitempty"`
}

// Normalize returns a sanitized copy: skills trimmed, blanks dropped,
// duplicates (after canonicalize) removed keeping the first occurrence,
// negative or non-finite experience bounds cleared, location trimmed.
func (f FilterRequest) Normalize(canonicalize func(string) string) FilterRequest {
	out := FilterRequest{
		Location:         strings.TrimSpace(f.Location),
		ProjectStartDate: strings.TrimSpace(f.ProjectStartDate),
		MinExperience:    sanitizeBound(f.MinExperience),
		MaxExperience:    sanitizeBound(f.MaxExperience),
	}
	seen := make(map[string]struct{}, len(f.Skills))
	for _, s := range f.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := s
		if canonicalize != nil {
			key = canonicalize(s)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out.Skills = append(out.Skills, s)
	}
	return out
}

func sanitizeBound(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return nil
	}
	b := *v
	return &b
}

// Validate reports structural problems a caller should surface to the user.
// Scoring itself never fails; an invalid request simply yields no results.
func (f FilterRequest) Validate() error {
	if len(f.Skills) == 0 {
		return fmt.Errorf("at least one skill is required")
	}
	if f.MinExperience != nil && f.MaxExperience != nil && *f.MinExperience > *f.MaxExperience {
		return fmt.Errorf("min_experience %.1f is greater than max_experience %.1f", *f.MinExperience, *f.MaxExperience)
	}
	return nil
}

// HasExperienceBounds reports whether either bound is set.
func (f FilterRequest) HasExperienceBounds() bool {
	return f.MinExperience != nil || f.MaxExperience != nil
}

// StartDate returns the parsed project start date, if present and valid.
func (f FilterRequest) StartDate() (time.Time, bool) {
	return ParseDate(f.ProjectStartDate)
}

// Float returns a pointer to v, for building optional bounds.
func Float(v float64) *float64 {
	return &v
}
