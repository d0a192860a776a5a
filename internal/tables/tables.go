// Package tables loads the synonym and location tables from YAML files and
// reloads them when the files change.
package tables

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/talentmatch/internal/location"
	"github.com/hyperjump/talentmatch/internal/skills"
)

// Files names the table files. An empty path means the built-in table.
type Files struct {
	Synonyms  string `yaml:"synonyms" mapstructure:"synonyms"`
	Locations string `yaml:"locations" mapstructure:"locations"`
}

// Paths returns the non-empty file paths.
func (f Files) Paths() []string {
	var out []string
	for _, p := range []string{f.Synonyms, f.Locations} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SynonymFile is the on-disk synonym table. Groups extend the built-in table
// unless Replace is set.
type SynonymFile struct {
	Replace bool                `yaml:"replace"`
	Groups  map[string][]string `yaml:"groups"`
}

// LocationFile is the on-disk location table. Regions extend the built-in
// table unless Replace is set.
type LocationFile struct {
	Replace bool                `yaml:"replace"`
	Regions map[string][]string `yaml:"regions"`
}

// Set is one consistent pair of tables.
type Set struct {
	Synonyms  *skills.SynonymTable
	Locations *location.Table
}

// Defaults returns the built-in tables.
func Defaults() *Set {
	return &Set{
		Synonyms:  skills.DefaultSynonymTable(),
		Locations: location.DefaultTable(),
	}
}

// Load reads both tables. A failure in either file fails the whole load so a
// half-edited pair is never installed.
func Load(files Files) (*Set, error) {
	syn, err := LoadSynonyms(files.Synonyms)
	if err != nil {
		return nil, err
	}
	loc, err := LoadLocations(files.Locations)
	if err != nil {
		return nil, err
	}
	return &Set{Synonyms: syn, Locations: loc}, nil
}

// LoadSynonyms reads a synonym file. An empty path returns the built-in table.
func LoadSynonyms(path string) (*skills.SynonymTable, error) {
	if path == "" {
		return skills.DefaultSynonymTable(), nil
	}
	var f SynonymFile
	if err := readYAML(path, &f); err != nil {
		return nil, fmt.Errorf("failed to load synonyms: %w", err)
	}
	if f.Replace {
		return skills.NewSynonymTable(f.Groups), nil
	}
	return skills.DefaultSynonymTable().Merge(f.Groups), nil
}

// LoadLocations reads a location file. An empty path returns the built-in table.
func LoadLocations(path string) (*location.Table, error) {
	if path == "" {
		return location.DefaultTable(), nil
	}
	var f LocationFile
	if err := readYAML(path, &f); err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}
	if f.Replace {
		return location.NewTable(f.Regions), nil
	}
	return location.DefaultTable().Merge(f.Regions), nil
}

// SaveSynonyms writes t to path as a replacing synonym file.
func SaveSynonyms(path string, t *skills.SynonymTable) error {
	data, err := yaml.Marshal(SynonymFile{Replace: true, Groups: t.Groups()})
	if err != nil {
		return fmt.Errorf("failed to marshal synonyms: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
