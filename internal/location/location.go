// Package location decides whether a candidate's location satisfies a requested location.
package location

import (
	"sort"
	"strings"
)

// DefaultRegions maps a region key to the city and country names it covers.
var DefaultRegions = map[string][]string{
	"INDIA": {"india", "bangalore", "bengaluru", "hyderabad", "chennai", "pune", "mumbai", "delhi", "new delhi",
		"gurgaon", "gurugram", "noida", "trivandrum", "thiruvananthapuram", "kochi", "cochin", "kolkata",
		"jaipur", "indore", "chandigarh", "coimbatore", "ahmedabad"},
	"USA": {"usa", "united states", "us", "new york", "san francisco", "chicago", "boston", "seattle", "austin",
		"dallas", "atlanta", "los angeles", "denver", "washington", "nashville", "franklin"},
	"CANADA":  {"canada", "toronto", "vancouver", "montreal", "ottawa", "calgary", "mississauga"},
	"ARMENIA": {"armenia", "yerevan", "gyumri", "vanadzor"},
}

// Table resolves requested regions to the places they contain.
// It is immutable once built.
type Table struct {
	regions map[string]map[string]struct{}
	raw     map[string][]string
}

// NewTable builds a table from region -> places. Region keys are upper-cased
// and places lower-cased, both trimmed.
func NewTable(regions map[string][]string) *Table {
	t := &Table{
		regions: make(map[string]map[string]struct{}, len(regions)),
		raw:     make(map[string][]string, len(regions)),
	}
	for region, places := range regions {
		key := regionKey(region)
		if key == "" {
			continue
		}
		set := make(map[string]struct{}, len(places))
		list := make([]string, 0, len(places))
		for _, p := range places {
			p = placeKey(p)
			if p == "" {
				continue
			}
			if _, dup := set[p]; dup {
				continue
			}
			set[p] = struct{}{}
			list = append(list, p)
		}
		t.regions[key] = set
		t.raw[key] = list
	}
	return t
}

// DefaultTable returns a table built from DefaultRegions.
func DefaultTable() *Table {
	return NewTable(DefaultRegions)
}

// Merge returns a new table where regions in overrides replace those in t.
func (t *Table) Merge(overrides map[string][]string) *Table {
	base := t.Regions()
	for k, v := range overrides {
		base[regionKey(k)] = v
	}
	return NewTable(base)
}

// IsMatch reports whether candidateLoc satisfies requestedLoc. An empty request
// matches everything; an empty candidate location matches no non-empty request.
func (t *Table) IsMatch(candidateLoc, requestedLoc string) bool {
	req := strings.TrimSpace(requestedLoc)
	if req == "" {
		return true
	}
	cand := placeKey(candidateLoc)
	if cand == "" {
		return false
	}
	if cand == strings.ToLower(req) {
		return true
	}
	if t == nil {
		return false
	}
	places, ok := t.regions[regionKey(req)]
	if !ok {
		return false
	}
	_, ok = places[cand]
	return ok
}

// Regions returns a copy of the table as region -> places.
func (t *Table) Regions() map[string][]string {
	out := make(map[string][]string)
	if t == nil {
		return out
	}
	for k, v := range t.raw {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Names returns the region keys in sorted order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.raw))
	for k := range t.raw {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func regionKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func placeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
