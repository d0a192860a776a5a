// Package models defines core data structures for candidates, filter requests, and scored results.
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Deployment statuses that keep a candidate out of every search.
const (
	DeploymentEarmarked = "earmarked"
	DeploymentGoingOnML = "going on ml"
)

// Candidate is one bench record as supplied by the dataset collaborator.
type Candidate struct {
	ID                        string     `json:"id" yaml:"id" db:"id"`
	Name                      string     `json:"name" yaml:"name" db:"name"`
	PrimarySkills             []string   `json:"primary_skills" yaml:"primary_skills" db:"primary_skills"`
	SecondarySkills           []string   `json:"secondary_skills" yaml:"secondary_skills" db:"secondary_skills"`
	AdditionalSkills          []string   `json:"additional_skills" yaml:"additional_skills" db:"additional_skills"`
	TotalExperience           float64    `json:"total_experience" yaml:"total_experience" db:"total_experience"`
	Designation               string     `json:"designation" yaml:"designation" db:"designation"`
	Location                  string     `json:"location" yaml:"location" db:"location"`
	JoiningStatus             string     `json:"joining_status" yaml:"joining_status" db:"joining_status"`
	AssignDate                *time.Time `json:"assign_date,omitempty" yaml:"assign_date,omitempty" db:"assign_date"`
	AvailableFrom             string     `json:"available_from" yaml:"available_from" db:"available_from"`
	DeploymentStatus          string     `json:"deployment_status" yaml:"deployment_status" db:"deployment_status"`
	DeploymentStatusSecondary string     `json:"deployment_status_secondary" yaml:"deployment_status_secondary" db:"deployment_status_secondary"`
	WFMManager                string     `json:"wfm_manager,omitempty" yaml:"wfm_manager,omitempty" db:"wfm_manager"`
}

// IsDeploymentExcluded reports whether either deployment status field marks the
// candidate as Earmarked or Going on ML.
func (c *Candidate) IsDeploymentExcluded() bool {
	for _, s := range []string{c.DeploymentStatus, c.DeploymentStatusSecondary} {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case DeploymentEarmarked, DeploymentGoingOnML:
			return true
		}
	}
	return false
}

// Clean returns a copy with text fields trimmed, blank skill tokens dropped and
// a missing or invalid experience read as 0.
func (c *Candidate) Clean() *Candidate {
	out := *c
	out.ID = strings.TrimSpace(c.ID)
	out.Name = strings.TrimSpace(c.Name)
	out.PrimarySkills = cleanSkills(c.PrimarySkills)
	out.SecondarySkills = cleanSkills(c.SecondarySkills)
	out.AdditionalSkills = cleanSkills(c.AdditionalSkills)
	if math.IsNaN(c.TotalExperience) || math.IsInf(c.TotalExperience, 0) || c.TotalExperience < 0 {
		out.TotalExperience = 0
	}
	out.Designation = strings.TrimSpace(c.Designation)
	out.Location = strings.TrimSpace(c.Location)
	out.JoiningStatus = strings.TrimSpace(c.JoiningStatus)
	out.AvailableFrom = strings.TrimSpace(c.AvailableFrom)
	out.DeploymentStatus = strings.TrimSpace(c.DeploymentStatus)
	out.DeploymentStatusSecondary = strings.TrimSpace(c.DeploymentStatusSecondary)
	out.WFMManager = strings.TrimSpace(c.WFMManager)
	if c.AssignDate != nil {
		d := *c.AssignDate
		if d.IsZero() || d.Year() < 1900 || d.Year() > 9999 {
			out.AssignDate = nil
		} else {
			out.AssignDate = &d
		}
	}
	return &out
}

// UnmarshalJSON accepts assign_date in any layout ParseDate knows. A date that
// does not parse, or is not a string, decodes as absent instead of failing the
// record.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	type plain Candidate
	aux := struct {
		*plain
		AssignDate json.RawMessage `json:"assign_date"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.AssignDate = nil
	raw := bytes.TrimSpace(aux.AssignDate)
	if len(raw) == 0 || raw[0] != '"' {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	if t, ok := ParseDate(s); ok {
		c.AssignDate = &t
	}
	return nil
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02-Jan-2006",
	"02-Jan-06",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate parses a calendar date in any of the accepted layouts.
// The second return value is false for empty or unparseable input.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() < 1900 || t.Year() > 9999 {
				return time.Time{}, false
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// CalendarDay returns t truncated to its calendar date in UTC, ignoring time of day.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
