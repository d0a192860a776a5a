package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/talentmatch/internal/validation"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCandidates(t *testing.T) {
	v := validation.MustNew()
	tests := []struct {
		name    string
		file    string
		content string
		wantIDs []string
		wantErr error
	}{
		{
			name:    "json",
			file:    "c.json",
			content: `[{"id": "E1", "primary_skills": ["Java"], "total_experience": 4}]`,
			wantIDs: []string{"E1"},
		},
		{
			name: "yaml",
			file: "c.yaml",
			content: `
- id: E1
  primary_skills: [Java]
  assign_date: "2025-03-01T00:00:00Z"
- id: E2
  secondary_skills: [Go]
`,
			wantIDs: []string{"E1", "E2"},
		},
		{
			name:    "yaml missing id",
			file:    "c.yml",
			content: "- name: Nobody\n",
			wantErr: validation.ErrInvalid,
		},
		{
			name:    "json wrong type",
			file:    "c.json",
			content: `[{"id": "E1", "total_experience": "five"}]`,
			wantErr: validation.ErrInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCandidates(writeFile(t, tt.file, tt.content), v)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d candidates, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("candidate %d id = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestReadCandidates_YAMLDate(t *testing.T) {
	path := writeFile(t, "c.yaml", "- id: E1\n  assign_date: \"2025-03-01T00:00:00Z\"\n")
	got, err := ReadCandidates(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].AssignDate == nil || got[0].AssignDate.Day() != 1 {
		t.Errorf("assign_date = %v", got[0].AssignDate)
	}
}

func TestReadCandidates_LenientAssignDates(t *testing.T) {
	v := validation.MustNew()
	tests := []struct {
		name    string
		file    string
		content string
		want    []string // calendar day per record, "" when absent
	}{
		{
			name:    "json mixed batch",
			file:    "c.json",
			content: `[{"id": "Y1", "assign_date": "2025-03-01"}, {"id": "Y2", "assign_date": "tbd"}, {"id": "Y3", "assign_date": "2025-01-15T00:00:00Z"}]`,
			want:    []string{"2025-03-01", "", "2025-01-15"},
		},
		{
			name:    "yaml unquoted and odd dates",
			file:    "c.yaml",
			content: `- id: Y1
  assign_date: 2025-03-01
- id: Y2
  assign_date: tbd
- id: Y3
  assign_date: 15-Jan-2025
`,
			want:    []string{"2025-03-01", "", "2025-01-15"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCandidates(writeFile(t, tt.file, tt.content), v)
			if err != nil {
				t.Fatalf("one bad date must not fail the batch: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d candidates, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				day := ""
				if got[i].AssignDate != nil {
					day = got[i].AssignDate.Format("2006-01-02")
				}
				if day != want {
					t.Errorf("%s assign_date = %q, want %q", got[i].ID, day, want)
				}
			}
		})
	}
}

func TestReadCandidates_UnsupportedExtension(t *testing.T) {
	if _, err := ReadCandidates(writeFile(t, "c.csv", "id\nE1\n"), nil); err == nil {
		t.Error("expected error for .csv")
	}
}
