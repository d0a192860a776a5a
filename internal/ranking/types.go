// Package ranking scores candidates against a filter request and orders the results.
package ranking

import (
	"errors"
	"time"

	"github.com/hyperjump/talentmatch/internal/skills"
)

// ErrNoSkills is returned when a request carries no usable skill.
var ErrNoSkills = errors.New("no skills requested")

// Tier is one of the three candidate skill lists.
type Tier int

const (
	// TierPrimary is the candidate's primary skill list.
	TierPrimary Tier = iota
	// TierSecondary is the candidate's secondary skill list.
	TierSecondary
	// TierAdditional is the candidate's additional skill list.
	TierAdditional
)

// String returns the label used in match explanations.
func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "Primary"
	case TierSecondary:
		return "Secondary"
	case TierAdditional:
		return "Additional"
	default:
		return "Unknown"
	}
}

// Tiers lists the tiers in evaluation order.
var Tiers = []Tier{TierPrimary, TierSecondary, TierAdditional}

// Exclusion is the reason a candidate produced no result.
type Exclusion int

const (
	// NotExcluded means the candidate was scored.
	NotExcluded Exclusion = iota
	// ExcludedNoSkills means the request had no skills.
	ExcludedNoSkills
	// ExcludedNoSkillMatch means no requested skill matched any tier.
	ExcludedNoSkillMatch
	// ExcludedExperience means total experience fell outside the requested range.
	ExcludedExperience
)

// String returns a string representation of the exclusion.
func (e Exclusion) String() string {
	switch e {
	case NotExcluded:
		return "none"
	case ExcludedNoSkills:
		return "no_skills"
	case ExcludedNoSkillMatch:
		return "no_skill_match"
	case ExcludedExperience:
		return "experience"
	default:
		return "unknown"
	}
}

// Step records how many results one pipeline stage received, dropped and passed on.
type Step struct {
	Name    string `json:"name"`
	Initial int    `json:"initial"`
	Dropped int    `json:"dropped"`
	Left    int    `json:"left"`
}

// Stats summarises one search run.
type Stats struct {
	Candidates int           `json:"candidates"`
	Steps      []Step        `json:"steps"`
	Returned   int           `json:"returned"`
	Duration   time.Duration `json:"duration"`
}

// query is a filter request resolved once per search.
type query struct {
	matchers []skills.Matcher
	bounded  bool
	minExp   float64
	maxExp   float64
	midpoint float64
	location string
	start    time.Time
	hasStart bool
}
