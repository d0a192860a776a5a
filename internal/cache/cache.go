// Package cache keeps the ranked result set of recent searches so they can be
// re-sorted and refined without scoring again.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperjump/talentmatch/internal/models"
)

// ErrMiss is returned when a search id is unknown or expired.
var ErrMiss = errors.New("cache miss")

// Snapshot is one stored search. Results are in the order they were ranked.
type Snapshot struct {
	ID        string                 `json:"id"`
	Filter    models.FilterRequest   `json:"filter"`
	Sort      models.SortMode        `json:"sort"`
	Results   []*models.ScoredResult `json:"results"`
	CreatedAt time.Time              `json:"created_at"`
}

// ResultCache stores snapshots by search id.
type ResultCache interface {
	Put(ctx context.Context, s *Snapshot) error
	Get(ctx context.Context, id string) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config selects and tunes the cache backend.
type Config struct {
	Backend  string        `yaml:"backend" mapstructure:"backend"`   // default: memory
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`           // default: 30m
	Capacity int           `yaml:"capacity" mapstructure:"capacity"` // memory only, default: 256
	Redis    RedisConfig   `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	Address   string `yaml:"address" mapstructure:"address"`       // default: localhost:6379
	Password  string `yaml:"password" mapstructure:"password"`
	DB        int    `yaml:"db" mapstructure:"db"`
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"` // default: talentmatch:search:
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		Backend:  BackendMemory,
		TTL:      30 * time.Minute,
		Capacity: 256,
		Redis: RedisConfig{
			Address:   "localhost:6379",
			KeyPrefix: "talentmatch:search:",
		},
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = d.Backend
	}
	if c.TTL <= 0 {
		c.TTL = d.TTL
	}
	if c.Capacity <= 0 {
		c.Capacity = d.Capacity
	}
	if c.Redis.Address == "" {
		c.Redis.Address = d.Redis.Address
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = d.Redis.KeyPrefix
	}
}

// New builds the configured backend. The Redis backend is pinged before it is returned.
func New(ctx context.Context, cfg Config) (ResultCache, error) {
	cfg.ApplyDefaults()
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryCache(cfg.Capacity, cfg.TTL), nil
	case BackendRedis:
		rc := NewRedisCache(cfg.Redis, cfg.TTL)
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, err
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
