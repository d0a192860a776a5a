package skills

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MatchKind is how a candidate token matched a requested skill.
type MatchKind int

const (
	// MatchNone indicates the token did not match.
	MatchNone MatchKind = iota
	// MatchExpansion indicates a match through an alias of the requested skill.
	MatchExpansion
	// MatchExact indicates the canonical token equals the requested key.
	MatchExact
)

// String returns the label used in match explanations.
func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "Exact"
	case MatchExpansion:
		return "Expansion"
	default:
		return "None"
	}
}

// minSubstringAliasLen is the alias length above which substring matches count.
// Shorter aliases ("js", "r", "ng") must match exactly.
const minSubstringAliasLen = 3

type alias struct {
	raw       string
	canonical string
	substring bool
}

func newAlias(raw string) alias {
	return alias{
		raw:       raw,
		canonical: Canonicalize(raw),
		substring: utf8.RuneCountInString(raw) > minSubstringAliasLen,
	}
}

// SynonymTable maps canonical skill keys to their alias groups.
// A table is immutable once built and safe for concurrent use.
type SynonymTable struct {
	groups map[string][]alias
}

// NewSynonymTable builds a table from key -> aliases. Keys are canonicalized;
// alias order is kept. Later keys that canonicalize to an existing key replace it.
func NewSynonymTable(groups map[string][]string) *SynonymTable {
	t := &SynonymTable{groups: make(map[string][]alias, len(groups))}
	for _, key := range sortedKeys(groups) {
		ck := Canonicalize(key)
		if ck == "" {
			continue
		}
		aliases := make([]alias, 0, len(groups[key]))
		for _, a := range groups[key] {
			if strings.TrimSpace(a) == "" {
				continue
			}
			aliases = append(aliases, newAlias(a))
		}
		t.groups[ck] = aliases
	}
	return t
}

// DefaultSynonymTable returns a table built from DefaultSynonyms.
func DefaultSynonymTable() *SynonymTable {
	return NewSynonymTable(DefaultSynonyms)
}

// Merge returns a new table with overrides layered on top of t.
// A group in overrides replaces the group with the same canonical key.
func (t *SynonymTable) Merge(overrides map[string][]string) *SynonymTable {
	base := t.Groups()
	for k, v := range overrides {
		base[Canonicalize(k)] = v
	}
	return NewSynonymTable(base)
}

// Expansions returns the alias group for key, or [key] when key is unknown.
func (t *SynonymTable) Expansions(key string) []string {
	ck := Canonicalize(key)
	if t != nil {
		if group, ok := t.groups[ck]; ok {
			out := make([]string, len(group))
			for i, a := range group {
				out[i] = a.raw
			}
			return out
		}
	}
	return []string{ck}
}

// Has reports whether key has its own group.
func (t *SynonymTable) Has(key string) bool {
	if t == nil {
		return false
	}
	_, ok := t.groups[Canonicalize(key)]
	return ok
}

// Len returns the number of groups.
func (t *SynonymTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.groups)
}

// Keys returns the canonical keys in sorted order.
func (t *SynonymTable) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.groups))
	for k := range t.groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Groups returns a copy of the table as raw key -> aliases.
func (t *SynonymTable) Groups() map[string][]string {
	out := make(map[string][]string)
	if t == nil {
		return out
	}
	for k, group := range t.groups {
		aliases := make([]string, len(group))
		for i, a := range group {
			aliases[i] = a.raw
		}
		out[k] = aliases
	}
	return out
}

// Matcher is a requested skill resolved against the table, ready to test tokens.
type Matcher struct {
	key     string
	aliases []alias
}

// Matcher resolves a requested skill. Unknown skills only match themselves.
func (t *SynonymTable) Matcher(requested string) Matcher {
	key := Canonicalize(requested)
	if t != nil {
		if group, ok := t.groups[key]; ok {
			return Matcher{key: key, aliases: group}
		}
	}
	return Matcher{key: key, aliases: []alias{newAlias(key)}}
}

// Key returns the canonical requested key.
func (m Matcher) Key() string {
	return m.key
}

// Match classifies a candidate token against the requested skill.
func (m Matcher) Match(token string) MatchKind {
	s := Canonicalize(token)
	if s == "" {
		return MatchNone
	}
	if s == m.key {
		return MatchExact
	}
	for _, a := range m.aliases {
		if a.canonical == "" {
			continue
		}
		if s == a.canonical || (a.substring && strings.Contains(s, a.canonical)) {
			return MatchExpansion
		}
	}
	return MatchNone
}

// Match classifies token against the requested key in one call.
func (t *SynonymTable) Match(token, requested string) MatchKind {
	return t.Matcher(requested).Match(token)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
