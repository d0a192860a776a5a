// Package validation checks request bodies against JSON schemas before they
// are decoded. Manual and machine-generated filters go through the same path.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid request")

// Error lists the schema violations of one document.
type Error struct {
	Details []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(e.Details, "; "))
}

// Unwrap lets errors.Is match ErrInvalid.
func (e *Error) Unwrap() error {
	return ErrInvalid
}

// Validator holds the compiled schemas. It is safe for concurrent use.
type Validator struct {
	search     *gojsonschema.Schema
	refine     *gojsonschema.Schema
	candidates *gojsonschema.Schema
}

// New compiles the schemas.
func New() (*Validator, error) {
	v := &Validator{}
	var err error
	if v.search, err = compile(searchSchema); err != nil {
		return nil, fmt.Errorf("search schema: %w", err)
	}
	if v.refine, err = compile(refineSchema); err != nil {
		return nil, fmt.Errorf("refine schema: %w", err)
	}
	if v.candidates, err = compile(candidatesSchema); err != nil {
		return nil, fmt.Errorf("candidates schema: %w", err)
	}
	return v, nil
}

// MustNew is New for package-level initialisation and tests.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

func compile(schema string) (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
}

// Search validates a search request body.
func (v *Validator) Search(body []byte) error {
	return validate(v.search, body)
}

// Refine validates a refinement body.
func (v *Validator) Refine(body []byte) error {
	return validate(v.refine, body)
}

// Candidates validates a candidate batch.
func (v *Validator) Candidates(body []byte) error {
	return validate(v.candidates, body)
}

// Document validates an already decoded value, such as a YAML import, against
// the candidate batch schema.
func (v *Validator) Document(doc any) error {
	result, err := v.candidates.Validate(gojsonschema.NewGoLoader(doc))
	return check(result, err)
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	return check(result, err)
}

func check(result *gojsonschema.Result, err error) error {
	if err != nil {
		// Malformed JSON surfaces here rather than as a schema violation.
		return &Error{Details: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		details[i] = desc.String()
	}
	return &Error{Details: details}
}
