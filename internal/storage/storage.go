// Package storage defines the persistence interface for candidate records.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/talentmatch/internal/models"
)

// ErrNotFound is returned when a candidate does not exist.
var ErrNotFound = errors.New("not found")

// Catalog lists the distinct values present in the eligible dataset.
type Catalog struct {
	Skills       []string `json:"skills"`
	Designations []string `json:"designations"`
	Locations    []string `json:"locations"`
}

// Storage defines candidate persistence operations.
//
// Candidates whose deployment status excludes them from searching are stored
// but never returned by ListEligible, CountEligible or Catalog.
type Storage interface {
	// Candidate operations
	UpsertCandidates(ctx context.Context, candidates []*models.Candidate) (int, error)
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	DeleteCandidate(ctx context.Context, id string) error
	ListCandidates(ctx context.Context, offset, limit int) ([]*models.Candidate, error)

	// Search input
	ListEligible(ctx context.Context) ([]*models.Candidate, error)
	Catalog(ctx context.Context) (*Catalog, error)

	// Stats
	CountCandidates(ctx context.Context) (int64, error)
	CountEligible(ctx context.Context) (int64, error)
	SizeBytes() (int64, error)

	Close() error
}
