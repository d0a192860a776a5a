package refine

import (
	"reflect"
	"testing"

	"github.com/hyperjump/talentmatch/internal/models"
)

func fixture() []*models.ScoredResult {
	mk := func(id, designation, loc string, exp float64) *models.ScoredResult {
		return &models.ScoredResult{Candidate: &models.Candidate{ID: id, Designation: designation, Location: loc, TotalExperience: exp}}
	}
	return []*models.ScoredResult{
		mk("1", "Engineer", "Chennai", 3),
		mk("2", "Senior Engineer", "Pune", 7),
		mk("3", "Engineer", "Pune", 5),
		mk("4", "Architect", "Chennai", 12),
		mk("5", "", "", 4),
	}
}

func ids(results []*models.ScoredResult) []string {
	out := []string{}
	for _, r := range results {
		out = append(out, r.Candidate.ID)
	}
	return out
}

func float(v float64) *float64 { return &v }

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"zero criteria keeps all", Criteria{}, []string{"1", "2", "3", "4", "5"}},
		{"designations OR", Criteria{Designations: []string{"Architect", "Engineer"}}, []string{"1", "3", "4"}},
		{"location literal", Criteria{Location: "Pune"}, []string{"2", "3"}},
		{"location is case sensitive", Criteria{Location: "pune"}, []string{}},
		{"min exp", Criteria{MinExp: float(5)}, []string{"2", "3", "4"}},
		{"max exp", Criteria{MaxExp: float(4)}, []string{"1", "5"}},
		{"combined", Criteria{Designations: []string{"Engineer"}, Location: "Pune", MinExp: float(4), MaxExp: float(6)}, []string{"3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(fixture(), tt.criteria))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_PreservesOrderAndPointers(t *testing.T) {
	in := fixture()
	out := Apply(in, Criteria{Location: "Chennai"})
	if len(out) != 2 || out[0] != in[0] || out[1] != in[3] {
		t.Error("Apply should return the same result pointers in input order")
	}
}

func TestFacetsFor(t *testing.T) {
	results := fixture()

	got := FacetsFor(results, Criteria{})
	want := Facets{
		Designations: []string{"Architect", "Engineer", "Senior Engineer"},
		Locations:    []string{"Chennai", "Pune"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FacetsFor(empty) = %+v, want %+v", got, want)
	}

	// A selected designation narrows locations but not designation options.
	got = FacetsFor(results, Criteria{Designations: []string{"Architect"}})
	if !reflect.DeepEqual(got.Designations, want.Designations) {
		t.Errorf("Designations = %v, want all", got.Designations)
	}
	if !reflect.DeepEqual(got.Locations, []string{"Chennai"}) {
		t.Errorf("Locations = %v, want [Chennai]", got.Locations)
	}

	// A selected location narrows designations but not location options.
	got = FacetsFor(results, Criteria{Location: "Pune"})
	if !reflect.DeepEqual(got.Designations, []string{"Engineer", "Senior Engineer"}) {
		t.Errorf("Designations = %v", got.Designations)
	}
	if !reflect.DeepEqual(got.Locations, want.Locations) {
		t.Errorf("Locations = %v, want all", got.Locations)
	}

	// Experience narrows both.
	got = FacetsFor(results, Criteria{MaxExp: float(5)})
	if !reflect.DeepEqual(got.Designations, []string{"Engineer"}) {
		t.Errorf("Designations = %v", got.Designations)
	}
	if !reflect.DeepEqual(got.Locations, []string{"Chennai", "Pune"}) {
		t.Errorf("Locations = %v", got.Locations)
	}
}

func TestFacetsFor_Empty(t *testing.T) {
	got := FacetsFor(nil, Criteria{})
	if got.Designations == nil || got.Locations == nil || len(got.Designations)+len(got.Locations) != 0 {
		t.Errorf("Expected empty non-nil facets, got %+v", got)
	}
}

func TestCriteria_IsZero(t *testing.T) {
	if !(Criteria{}).IsZero() {
		t.Error("empty criteria should be zero")
	}
	if (Criteria{Location: "Pune"}).IsZero() {
		t.Error("criteria with location should not be zero")
	}
}
