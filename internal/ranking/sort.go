package ranking

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hyperjump/talentmatch/internal/models"
)

// Sort returns a new slice with results ordered by mode; the input is not
// modified. Unknown modes order by match. The sort is stable, so results that
// compare equal keep their input order.
func Sort(results []*models.ScoredResult, mode models.SortMode, epsilon float64) []*models.ScoredResult {
	out := make([]*models.ScoredResult, len(results))
	copy(out, results)

	switch models.ParseSortMode(string(mode)) {
	case models.SortDesignation:
		// Collator keeps per-call buffers and is not safe for concurrent use.
		col := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(designation(out[i]), designation(out[j])) < 0
		})
	case models.SortExperienceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return candidateExperience(out[i].Candidate) < candidateExperience(out[j].Candidate)
		})
	case models.SortExperienceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return candidateExperience(out[i].Candidate) > candidateExperience(out[j].Candidate)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return matchLess(out[i], out[j], epsilon)
		})
	}
	return out
}

// matchLess orders by skill score desc, then deviation asc, then composite desc.
// The first two keys only count when they differ by more than epsilon.
func matchLess(a, b *models.ScoredResult, epsilon float64) bool {
	if math.Abs(a.SkillScore-b.SkillScore) > epsilon {
		return a.SkillScore > b.SkillScore
	}
	if math.Abs(a.ExpDeviation-b.ExpDeviation) > epsilon {
		return a.ExpDeviation < b.ExpDeviation
	}
	return a.Score > b.Score
}

func designation(r *models.ScoredResult) string {
	if r.Candidate == nil {
		return ""
	}
	return r.Candidate.Designation
}
