package ranking

import (
	"fmt"

	"github.com/hyperjump/talentmatch/internal/models"
	"github.com/hyperjump/talentmatch/internal/skills"
)

// SkillScorer awards tiered points for requested skills found in a candidate's skill lists.
type SkillScorer struct {
	config *ScoringConfig
}

// NewSkillScorer creates a new SkillScorer.
func NewSkillScorer(config *ScoringConfig) *SkillScorer {
	return &SkillScorer{config: config}
}

// Name returns the scorer name.
func (s *SkillScorer) Name() string {
	return "skills"
}

// SkillMatch is the outcome of scoring one candidate's skills.
type SkillMatch struct {
	// Score is the averaged tier value, capped at MaxSkillScore.
	Score float64
	// Details explains every matching token, in tier then token order.
	Details []string
	// Matched is true when at least one requested skill matched.
	Matched bool
}

// Score evaluates every requested skill against all three tiers. Each requested
// skill contributes its best tier value; the sum is averaged over the requested
// skills.
func (s *SkillScorer) Score(matchers []skills.Matcher, c *models.Candidate) SkillMatch {
	var out SkillMatch
	if len(matchers) == 0 || c == nil {
		return out
	}

	var total float64
	for _, m := range matchers {
		best := 0.0
		for _, tier := range Tiers {
			for _, token := range tierSkills(c, tier) {
				kind := m.Match(token)
				if kind == skills.MatchNone {
					continue
				}
				out.Matched = true
				out.Details = append(out.Details, fmt.Sprintf("%s %s: %s", tier, kind, token))
				best = max(best, s.config.TierScore(tier, kind == skills.MatchExact))
			}
		}
		total += best
	}

	if !out.Matched {
		return SkillMatch{}
	}
	out.Score = min(s.config.MaxSkillScore, total/float64(len(matchers)))
	return out
}

func tierSkills(c *models.Candidate, tier Tier) []string {
	switch tier {
	case TierPrimary:
		return c.PrimarySkills
	case TierSecondary:
		return c.SecondarySkills
	case TierAdditional:
		return c.AdditionalSkills
	default:
		return nil
	}
}
