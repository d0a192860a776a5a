package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/talentmatch/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db, path: dbPath}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		primary_skills TEXT NOT NULL DEFAULT '[]',
		secondary_skills TEXT NOT NULL DEFAULT '[]',
		additional_skills TEXT NOT NULL DEFAULT '[]',
		total_experience REAL NOT NULL DEFAULT 0,
		designation TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		joining_status TEXT NOT NULL DEFAULT '',
		assign_date TEXT,
		available_from TEXT NOT NULL DEFAULT '',
		deployment_status TEXT NOT NULL DEFAULT '',
		deployment_status_secondary TEXT NOT NULL DEFAULT '',
		wfm_manager TEXT NOT NULL DEFAULT '',
		hidden INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_candidates_hidden ON candidates(hidden);
	`
	_, err := db.Exec(schema)
	return err
}

// assign_date is stored as a calendar date; time of day and zone are not kept.
const dateLayout = "2006-01-02"

const candidateColumns = `id, name, primary_skills, secondary_skills, additional_skills, total_experience,
	designation, location, joining_status, assign_date, available_from,
	deployment_status, deployment_status_secondary, wfm_manager`

// UpsertCandidates inserts or replaces candidates by ID in one transaction.
// Records are cleaned first; records with an empty ID are skipped. It returns
// the number of records written.
func (s *SQLiteStorage) UpsertCandidates(ctx context.Context, candidates []*models.Candidate) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO candidates (`+candidateColumns+`, hidden, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			primary_skills = excluded.primary_skills,
			secondary_skills = excluded.secondary_skills,
			additional_skills = excluded.additional_skills,
			total_experience = excluded.total_experience,
			designation = excluded.designation,
			location = excluded.location,
			joining_status = excluded.joining_status,
			assign_date = excluded.assign_date,
			available_from = excluded.available_from,
			deployment_status = excluded.deployment_status,
			deployment_status_secondary = excluded.deployment_status_secondary,
			wfm_manager = excluded.wfm_manager,
			hidden = excluded.hidden,
			updated_at = excluded.updated_at`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now()
	written := 0
	for _, raw := range candidates {
		if raw == nil {
			continue
		}
		c := raw.Clean()
		if c.ID == "" {
			continue
		}
		args, err := candidateArgs(c)
		if err != nil {
			return 0, fmt.Errorf("candidate %s: %w", c.ID, err)
		}
		args = append(args, c.IsDeploymentExcluded(), now, now)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("candidate %s: %w", c.ID, err)
		}
		written++
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

func candidateArgs(c *models.Candidate) ([]any, error) {
	primary, err := marshalSkills(c.PrimarySkills)
	if err != nil {
		return nil, err
	}
	secondary, err := marshalSkills(c.SecondarySkills)
	if err != nil {
		return nil, err
	}
	additional, err := marshalSkills(c.AdditionalSkills)
	if err != nil {
		return nil, err
	}
	var assign any
	if c.AssignDate != nil {
		assign = models.CalendarDay(*c.AssignDate).Format(dateLayout)
	}
	return []any{
		c.ID, c.Name, primary, secondary, additional, c.TotalExperience,
		c.Designation, c.Location, c.JoiningStatus, assign, c.AvailableFrom,
		c.DeploymentStatus, c.DeploymentStatusSecondary, c.WFMManager,
	}, nil
}

func marshalSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("failed to marshal skills: %w", err)
	}
	return string(b), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner) (*models.Candidate, error) {
	var c models.Candidate
	var primary, secondary, additional string
	var assign sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &primary, &secondary, &additional, &c.TotalExperience,
		&c.Designation, &c.Location, &c.JoiningStatus, &assign, &c.AvailableFrom,
		&c.DeploymentStatus, &c.DeploymentStatusSecondary, &c.WFMManager); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		raw string
		dst *[]string
	}{{primary, &c.PrimarySkills}, {secondary, &c.SecondarySkills}, {additional, &c.AdditionalSkills}} {
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skills for %s: %w", c.ID, err)
		}
	}
	if assign.Valid && assign.String != "" {
		if t, ok := models.ParseDate(assign.String); ok {
			c.AssignDate = &t
		}
	}
	return &c, nil
}

// GetCandidate returns a candidate by ID, excluded or not.
func (s *SQLiteStorage) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, id)
	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCandidate removes a candidate by ID.
func (s *SQLiteStorage) DeleteCandidate(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListCandidates returns candidates in insertion order with offset and limit.
func (s *SQLiteStorage) ListCandidates(ctx context.Context, offset, limit int) ([]*models.Candidate, error) {
	return s.query(ctx, `SELECT `+candidateColumns+` FROM candidates ORDER BY rowid LIMIT ? OFFSET ?`, limit, offset)
}

// ListEligible returns every searchable candidate in insertion order.
func (s *SQLiteStorage) ListEligible(ctx context.Context) ([]*models.Candidate, error) {
	return s.query(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE hidden = 0 ORDER BY rowid`)
}

func (s *SQLiteStorage) query(ctx context.Context, q string, args ...any) ([]*models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Catalog returns the sorted distinct skills, designations and locations of
// eligible candidates. Values are compared as stored, so "Java" and "java"
// are both listed.
func (s *SQLiteStorage) Catalog(ctx context.Context) (*Catalog, error) {
	var cat Catalog
	var err error
	if cat.Skills, err = s.distinct(ctx, `
		SELECT DISTINCT j.value FROM candidates c, json_each(c.primary_skills) j WHERE c.hidden = 0
		UNION
		SELECT DISTINCT j.value FROM candidates c, json_each(c.secondary_skills) j WHERE c.hidden = 0
		UNION
		SELECT DISTINCT j.value FROM candidates c, json_each(c.additional_skills) j WHERE c.hidden = 0
		ORDER BY 1`); err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	if cat.Designations, err = s.distinct(ctx,
		`SELECT DISTINCT designation FROM candidates WHERE hidden = 0 AND designation != '' ORDER BY 1`); err != nil {
		return nil, fmt.Errorf("failed to list designations: %w", err)
	}
	if cat.Locations, err = s.distinct(ctx,
		`SELECT DISTINCT location FROM candidates WHERE hidden = 0 AND location != '' ORDER BY 1`); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return &cat, nil
}

func (s *SQLiteStorage) distinct(ctx context.Context, q string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out, rows.Err()
}

// CountCandidates returns the total number of stored candidates.
func (s *SQLiteStorage) CountCandidates(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&count)
	return count, err
}

// CountEligible returns the number of searchable candidates.
func (s *SQLiteStorage) CountEligible(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates WHERE hidden = 0`).Scan(&count)
	return count, err
}

// SizeBytes returns the on-disk size of the database including its WAL files.
// Missing files count as 0.
func (s *SQLiteStorage) SizeBytes() (int64, error) {
	var total int64
	for _, p := range []string{s.path, s.path + "-wal", s.path + "-shm"} {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, err
		}
		total += info.Size()
	}
	return total, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

var _ Storage = (*SQLiteStorage)(nil)
