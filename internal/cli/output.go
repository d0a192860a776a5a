// Package cli provides output formatting and input loading for the talentmatch CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hyperjump/talentmatch/internal/models"
	"github.com/hyperjump/talentmatch/internal/skills"
	"github.com/hyperjump/talentmatch/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text with score breakdowns (default).
	OutputText OutputFormat = "text"
	// OutputCompact prints one line per result.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a flag value to a format; anything unknown is text.
func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case OutputJSON:
		return OutputJSON
	case OutputCompact:
		return OutputCompact
	default:
		return OutputText
	}
}

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, response)
	case OutputCompact:
		writeSearchResultsCompact(w, response)
		return nil
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	if response.NoSkills {
		fmt.Fprintln(w, "\nNo skills given; nothing to match.")
		return
	}
	fmt.Fprintf(w, "\nFound %d candidates in %dms (sort: %s)\n\n", response.Total, response.QueryTime, response.Sort)
	for i, result := range response.Results {
		writeOneResult(w, i+1, result)
	}
	writeSuggestions(w, response.Suggestions)
}

func writeOneResult(w io.Writer, rank int, result *models.ScoredResult) {
	c := result.Candidate
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "#%d %s (%s) | Score: %.1f | %s\n", rank, c.Name, c.ID, result.Score, result.Status)
	if c.Designation != "" {
		fmt.Fprintf(w, "Designation: %s\n", c.Designation)
	}
	fmt.Fprintf(w, "Experience: %.1f yrs | Location: %s\n", c.TotalExperience, c.Location)
	fmt.Fprintf(w, "%s\n", result.Breakdown())
	for _, d := range result.MatchDetails {
		fmt.Fprintf(w, "  • %s\n", d)
	}
	fmt.Fprintln(w)
}

func writeSearchResultsCompact(w io.Writer, response *models.SearchResponse) {
	for i, r := range response.Results {
		c := r.Candidate
		fmt.Fprintf(w, "%3d  %6.1f  %-10s  %-24s  %-28s  %5.1f  %-16s  %s\n",
			i+1, r.Score, c.ID, utils.Truncate(c.Name, 24), utils.Truncate(c.Designation, 28),
			c.TotalExperience, utils.Truncate(c.Location, 16), r.Status)
	}
	writeSuggestions(w, response.Suggestions)
}

func writeSuggestions(w io.Writer, suggestions map[string][]string) {
	if len(suggestions) == 0 {
		return
	}
	terms := make([]string, 0, len(suggestions))
	for t := range suggestions {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	for _, t := range terms {
		fmt.Fprintf(w, "Unknown skill %q, did you mean: %s?\n", t, strings.Join(suggestions[t], ", "))
	}
}

// WriteSuggestions writes skill suggestions for term.
func WriteSuggestions(w io.Writer, term string, suggestions []skills.Suggestion, format OutputFormat) error {
	if format == OutputJSON {
		if suggestions == nil {
			suggestions = []skills.Suggestion{}
		}
		return WriteJSON(w, map[string]any{"term": term, "suggestions": suggestions})
	}
	if len(suggestions) == 0 {
		fmt.Fprintf(w, "No suggestions for %q\n", term)
		return nil
	}
	for _, s := range suggestions {
		fmt.Fprintf(w, "%-24s distance=%d\n", s.Term, s.Distance)
	}
	return nil
}
