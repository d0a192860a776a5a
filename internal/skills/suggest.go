package skills

import (
	"sort"
	"unicode/utf8"
)

// Suggestion is a known skill close to an unknown requested term.
type Suggestion struct {
	Term      string `json:"term"`
	Distance  int    `json:"distance"`
	Frequency int    `json:"frequency"`
}

// Suggester proposes known skills for misspelled or unknown terms.
// It is built once over a fixed vocabulary and is safe for concurrent use.
type Suggester struct {
	terms          []string
	freq           map[string]int
	maxDistance    int
	maxSuggestions int
}

// SuggesterOption configures a Suggester.
type SuggesterOption func(*Suggester)

// WithMaxDistance sets the maximum edit distance for suggestions.
func WithMaxDistance(d int) SuggesterOption {
	return func(s *Suggester) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// WithMaxSuggestions caps the number of suggestions per term.
func WithMaxSuggestions(n int) SuggesterOption {
	return func(s *Suggester) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// NewSuggester builds a vocabulary from the table keys and aliases plus any
// extra terms (typically the skills present in the dataset). Repeated extra
// terms raise that term's frequency, which breaks distance ties.
func NewSuggester(table *SynonymTable, extra []string, opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		freq:           make(map[string]int),
		maxDistance:    2,
		maxSuggestions: 5,
	}
	for _, opt := range opts {
		opt(s)
	}
	add := func(term string) {
		c := Canonicalize(term)
		if c == "" {
			return
		}
		if _, ok := s.freq[c]; !ok {
			s.terms = append(s.terms, c)
		}
		s.freq[c]++
	}
	for key, aliases := range table.Groups() {
		add(key)
		for _, a := range aliases {
			add(a)
		}
	}
	for _, term := range extra {
		add(term)
	}
	sort.Strings(s.terms)
	return s
}

// Known reports whether term is in the vocabulary after canonicalization.
func (s *Suggester) Known(term string) bool {
	_, ok := s.freq[Canonicalize(term)]
	return ok
}

// Suggest returns vocabulary terms within the edit distance of term, closest
// first, then most frequent, then alphabetical.
func (s *Suggester) Suggest(term string) []Suggestion {
	c := Canonicalize(term)
	if c == "" {
		return nil
	}
	n := utf8.RuneCountInString(c)
	var out []Suggestion
	for _, t := range s.terms {
		if t == c {
			continue
		}
		diff := utf8.RuneCountInString(t) - n
		if diff < 0 {
			diff = -diff
		}
		if diff > s.maxDistance {
			continue
		}
		if d := LevenshteinDistance(c, t); d <= s.maxDistance {
			out = append(out, Suggestion{Term: t, Distance: d, Frequency: s.freq[t]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Term < out[j].Term
	})
	if len(out) > s.maxSuggestions {
		out = out[:s.maxSuggestions]
	}
	return out
}

// SuggestUnknown returns suggestions for every requested term that is neither a
// synonym key nor in the vocabulary. Known terms are omitted from the map.
func (s *Suggester) SuggestUnknown(table *SynonymTable, requested []string) map[string][]string {
	var out map[string][]string
	for _, r := range requested {
		if table.Has(r) || s.Known(r) {
			continue
		}
		sugg := s.Suggest(r)
		if len(sugg) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string][]string)
		}
		terms := make([]string, len(sugg))
		for i, sg := range sugg {
			terms[i] = sg.Term
		}
		out[r] = terms
	}
	return out
}
