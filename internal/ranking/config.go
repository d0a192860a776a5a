package ranking

import "math"

// ScoringConfig holds the point values and thresholds of the scoring engine.
// Apart from MinScore, a field left at 0 is read as unset and takes its
// default in ApplyDefaults, so no tier or status can be configured to score
// exactly 0. Use a small positive value such as 0.01 instead.
type ScoringConfig struct {
	// Skill tier values, per requested skill
	PrimaryExactScore        float64 `yaml:"primary_exact_score" mapstructure:"primary_exact_score"`               // default: 50
	SecondaryExactScore      float64 `yaml:"secondary_exact_score" mapstructure:"secondary_exact_score"`           // default: 40
	AdditionalExactScore     float64 `yaml:"additional_exact_score" mapstructure:"additional_exact_score"`         // default: 30
	PrimaryExpansionScore    float64 `yaml:"primary_expansion_score" mapstructure:"primary_expansion_score"`       // default: 25
	SecondaryExpansionScore  float64 `yaml:"secondary_expansion_score" mapstructure:"secondary_expansion_score"`   // default: 15
	AdditionalExpansionScore float64 `yaml:"additional_expansion_score" mapstructure:"additional_expansion_score"` // default: 10
	MaxSkillScore            float64 `yaml:"max_skill_score" mapstructure:"max_skill_score"`                       // default: 50

	// Experience
	ExperienceScore       float64 `yaml:"experience_score" mapstructure:"experience_score"`               // default: 30
	MidpointMaxExperience float64 `yaml:"midpoint_max_experience" mapstructure:"midpoint_max_experience"` // default: 100

	// Availability; 0 means default, see above
	JoinedScore       float64 `yaml:"joined_score" mapstructure:"joined_score"`               // default: 20
	ImmediateScore    float64 `yaml:"immediate_score" mapstructure:"immediate_score"`         // default: 20
	YTRScore          float64 `yaml:"ytr_score" mapstructure:"ytr_score"`                     // default: 15
	YTRAvailableScore float64 `yaml:"ytr_available_score" mapstructure:"ytr_available_score"` // default: 15
	YTRLateScore      float64 `yaml:"ytr_late_score" mapstructure:"ytr_late_score"`           // default: 5

	// Pipeline
	MinScore    float64 `yaml:"min_score" mapstructure:"min_score"`       // default: 0 (disabled)
	SortEpsilon float64 `yaml:"sort_epsilon" mapstructure:"sort_epsilon"` // default: 0.1
}

// DefaultScoringConfig returns the default scoring configuration.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		PrimaryExactScore:        50,
		SecondaryExactScore:      40,
		AdditionalExactScore:     30,
		PrimaryExpansionScore:    25,
		SecondaryExpansionScore:  15,
		AdditionalExpansionScore: 10,
		MaxSkillScore:            50,

		ExperienceScore:       30,
		MidpointMaxExperience: 100,

		JoinedScore:       20,
		ImmediateScore:    20,
		YTRScore:          15,
		YTRAvailableScore: 15,
		YTRLateScore:      5,

		MinScore:    0,
		SortEpsilon: 0.1,
	}
}

// ApplyDefaults fills in zero and NaN values with defaults. MinScore is the
// exception: 0 disables it and only negative or NaN values are reset.
func (c *ScoringConfig) ApplyDefaults() {
	d := DefaultScoringConfig()

	fill := func(v *float64, def float64) {
		if *v == 0 || math.IsNaN(*v) {
			*v = def
		}
	}

	// Skills
	fill(&c.PrimaryExactScore, d.PrimaryExactScore)
	fill(&c.SecondaryExactScore, d.SecondaryExactScore)
	fill(&c.AdditionalExactScore, d.AdditionalExactScore)
	fill(&c.PrimaryExpansionScore, d.PrimaryExpansionScore)
	fill(&c.SecondaryExpansionScore, d.SecondaryExpansionScore)
	fill(&c.AdditionalExpansionScore, d.AdditionalExpansionScore)
	fill(&c.MaxSkillScore, d.MaxSkillScore)

	// Experience
	fill(&c.ExperienceScore, d.ExperienceScore)
	fill(&c.MidpointMaxExperience, d.MidpointMaxExperience)

	// Availability
	fill(&c.JoinedScore, d.JoinedScore)
	fill(&c.ImmediateScore, d.ImmediateScore)
	fill(&c.YTRScore, d.YTRScore)
	fill(&c.YTRAvailableScore, d.YTRAvailableScore)
	fill(&c.YTRLateScore, d.YTRLateScore)

	// Pipeline
	if c.MinScore < 0 || math.IsNaN(c.MinScore) {
		c.MinScore = 0
	}
	fill(&c.SortEpsilon, d.SortEpsilon)
}

// TierScore returns the points for a match of kind exact/expansion in tier.
func (c *ScoringConfig) TierScore(tier Tier, exact bool) float64 {
	switch tier {
	case TierPrimary:
		if exact {
			return c.PrimaryExactScore
		}
		return c.PrimaryExpansionScore
	case TierSecondary:
		if exact {
			return c.SecondaryExactScore
		}
		return c.SecondaryExpansionScore
	case TierAdditional:
		if exact {
			return c.AdditionalExactScore
		}
		return c.AdditionalExpansionScore
	default:
		return 0
	}
}
