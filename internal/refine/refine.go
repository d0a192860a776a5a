// Package refine narrows an already ranked result list without re-scoring it.
package refine

import (
	"sort"

	"github.com/hyperjump/talentmatch/internal/models"
)

// Criteria is a refinement over a result list. Zero values disable a filter.
type Criteria struct {
	Designations []string `json:"designations,omitempty" yaml:"designations,omitempty"`
	Location     string   `json:"location,omitempty" yaml:"location,omitempty"`
	MinExp       *float64 `json:"min_exp,omitempty" yaml:"min_exp,omitempty"`
	MaxExp       *float64 `json:"max_exp,omitempty" yaml:"max_exp,omitempty"`
}

// IsZero reports whether c filters nothing.
func (c Criteria) IsZero() bool {
	return len(c.Designations) == 0 && c.Location == "" && c.MinExp == nil && c.MaxExp == nil
}

// Facets are the option lists a refinement UI offers next.
type Facets struct {
	Designations []string `json:"designations"`
	Locations    []string `json:"locations"`
}

type filter struct {
	designations bool
	location     bool
	experience   bool
}

var all = filter{designations: true, location: true, experience: true}

// Apply returns the results that satisfy every set criterion, in input order.
// Designations are OR'ed; location is literal equality.
func Apply(results []*models.ScoredResult, c Criteria) []*models.ScoredResult {
	return apply(results, c, all)
}

// FacetsFor returns the unique, non-empty, sorted designations and locations
// available under c. Designation options ignore the designation criterion and
// location options ignore the location criterion, so a selection never hides
// its own alternatives.
func FacetsFor(results []*models.ScoredResult, c Criteria) Facets {
	return Facets{
		Designations: unique(apply(results, c, filter{location: true, experience: true}), func(cd *models.Candidate) string {
			return cd.Designation
		}),
		Locations: unique(apply(results, c, filter{designations: true, experience: true}), func(cd *models.Candidate) string {
			return cd.Location
		}),
	}
}

func apply(results []*models.ScoredResult, c Criteria, use filter) []*models.ScoredResult {
	wanted := make(map[string]struct{}, len(c.Designations))
	for _, d := range c.Designations {
		wanted[d] = struct{}{}
	}

	out := make([]*models.ScoredResult, 0, len(results))
	for _, r := range results {
		if r == nil || r.Candidate == nil {
			continue
		}
		cd := r.Candidate
		if use.designations && len(wanted) > 0 {
			if _, ok := wanted[cd.Designation]; !ok {
				continue
			}
		}
		if use.location && c.Location != "" && cd.Location != c.Location {
			continue
		}
		if use.experience {
			if c.MinExp != nil && cd.TotalExperience < *c.MinExp {
				continue
			}
			if c.MaxExp != nil && cd.TotalExperience > *c.MaxExp {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func unique(results []*models.ScoredResult, field func(*models.Candidate) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range results {
		v := field(r.Candidate)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
