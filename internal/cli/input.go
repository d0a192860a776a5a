package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/talentmatch/internal/models"
	"github.com/hyperjump/talentmatch/internal/validation"
)

// ReadCandidates loads a candidate batch from a .json, .yaml or .yml file and
// validates it against the candidate schema before decoding. An assign_date
// that does not parse is read as absent.
func ReadCandidates(path string, v *validation.Validator) ([]*models.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if v != nil {
			if err := v.Candidates(data); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if v != nil {
			if err := v.Document(doc); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
		// Decode through JSON so both formats share one field mapping.
		if data, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}

	var out []*models.Candidate
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return out, nil
}
