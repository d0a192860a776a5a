package ranking

import (
	"testing"
	"time"

	"github.com/hyperjump/talentmatch/internal/models"
)

func TestAvailabilityScorer_Score(t *testing.T) {
	scorer := NewAvailabilityScorer(DefaultScoringConfig())
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	withStart := &query{start: start, hasStart: true}
	noStart := &query{}

	tests := []struct {
		name       string
		q          *query
		candidate  *models.Candidate
		wantStatus models.AvailabilityStatus
		wantScore  float64
	}{
		{"joined", noStart, &models.Candidate{JoiningStatus: " JOINED "}, models.StatusJoined, 20},
		{"joined beats immediate", noStart, &models.Candidate{JoiningStatus: "joined", AvailableFrom: "immediate"}, models.StatusJoined, 20},
		{"immediate", noStart, &models.Candidate{AvailableFrom: "Immediately available"}, models.StatusImmediate, 20},
		{"immediate beats ytr", withStart, &models.Candidate{JoiningStatus: "YTR", AvailableFrom: "Immediate", AssignDate: date(2025, 3, 1)}, models.StatusImmediate, 20},
		{"ytr without start date", noStart, &models.Candidate{JoiningStatus: "YTR", AssignDate: date(2025, 3, 1)}, models.StatusYTR, 15},
		{"ytr without assign date", withStart, &models.Candidate{JoiningStatus: "ytr"}, models.StatusYTR, 15},
		{"ytr late", withStart, &models.Candidate{JoiningStatus: "YTR", AssignDate: date(2025, 3, 1)}, models.StatusYTRLate, 5},
		{"ytr available before", withStart, &models.Candidate{JoiningStatus: "YTR", AssignDate: date(2025, 1, 15)}, models.StatusYTRAvailable, 15},
		{"ytr available same day", withStart, &models.Candidate{JoiningStatus: "YTR", AssignDate: func() *time.Time {
			t := time.Date(2025, 2, 1, 18, 30, 0, 0, time.UTC)
			return &t
		}()}, models.StatusYTRAvailable, 15},
		{"unknown", withStart, &models.Candidate{JoiningStatus: "Offer declined"}, models.StatusUnknown, 0},
		{"empty", noStart, &models.Candidate{}, models.StatusUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, score := scorer.Score(tt.q, tt.candidate)
			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if score != tt.wantScore {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
		})
	}
}

func TestSkillScorer_Cap(t *testing.T) {
	cfg := DefaultScoringConfig()
	cfg.PrimaryExactScore = 80
	scorer := NewSkillScorer(cfg)
	ranker := NewRanker(cfg, nil, nil)
	q := ranker.prepare(models.FilterRequest{Skills: []string{"java"}})

	got := scorer.Score(q.matchers, &models.Candidate{PrimarySkills: []string{"Java"}})
	if got.Score != 50 {
		t.Errorf("Expected skill score capped at 50, got %v", got.Score)
	}
}

func TestScoringConfig_ApplyDefaults(t *testing.T) {
	cfg := &ScoringConfig{SecondaryExactScore: 45, MinScore: -5}
	cfg.ApplyDefaults()

	if cfg.SecondaryExactScore != 45 {
		t.Errorf("Explicit value overwritten: %v", cfg.SecondaryExactScore)
	}
	if cfg.PrimaryExactScore != 50 || cfg.AdditionalExpansionScore != 10 {
		t.Errorf("Tier defaults not applied: %+v", cfg)
	}
	if cfg.MinScore != 0 {
		t.Errorf("Negative MinScore should reset to 0, got %v", cfg.MinScore)
	}
	if cfg.SortEpsilon != 0.1 {
		t.Errorf("SortEpsilon = %v, want 0.1", cfg.SortEpsilon)
	}

	// A zero point value cannot be expressed; it reads as unset.
	late := &ScoringConfig{YTRLateScore: 0, JoinedScore: 0.01}
	late.ApplyDefaults()
	if late.YTRLateScore != 5 || late.JoinedScore != 0.01 {
		t.Errorf("YTRLateScore = %v, JoinedScore = %v, want 5 and 0.01", late.YTRLateScore, late.JoinedScore)
	}
}

func TestScoringConfig_TierScore(t *testing.T) {
	cfg := DefaultScoringConfig()
	tests := []struct {
		tier  Tier
		exact bool
		want  float64
	}{
		{TierPrimary, true, 50},
		{TierSecondary, true, 40},
		{TierAdditional, true, 30},
		{TierPrimary, false, 25},
		{TierSecondary, false, 15},
		{TierAdditional, false, 10},
		{Tier(9), true, 0},
	}
	for _, tt := range tests {
		if got := cfg.TierScore(tt.tier, tt.exact); got != tt.want {
			t.Errorf("TierScore(%v, %v) = %v, want %v", tt.tier, tt.exact, got, tt.want)
		}
	}
}
