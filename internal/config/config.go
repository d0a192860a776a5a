// Package config loads talentmatch configuration from YAML files and
// TALENTMATCH_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hyperjump/talentmatch/internal/cache"
	"github.com/hyperjump/talentmatch/internal/metrics"
	"github.com/hyperjump/talentmatch/internal/ranking"
	"github.com/hyperjump/talentmatch/internal/tables"
)

// EnvPrefix prefixes environment overrides, e.g. TALENTMATCH_SERVER_PORT.
const EnvPrefix = "TALENTMATCH"

// Config holds all configuration for the application.
type Config struct {
	Debug   bool                  `yaml:"debug" mapstructure:"debug"`
	JSONLog bool                  `yaml:"json_log" mapstructure:"json_log"`
	Server  ServerConfig          `yaml:"server" mapstructure:"server"`
	Storage StorageConfig         `yaml:"storage" mapstructure:"storage"`
	Search  SearchConfig          `yaml:"search" mapstructure:"search"`
	Tables  TablesConfig          `yaml:"tables" mapstructure:"tables"`
	Scoring ranking.ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Cache   cache.Config          `yaml:"cache" mapstructure:"cache"`
	Metrics metrics.Config        `yaml:"metrics" mapstructure:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host" mapstructure:"host"`
	Port           int           `yaml:"port" mapstructure:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// Address returns host:port.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig holds the candidate database location.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"`
}

// SearchConfig holds result paging limits.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit" mapstructure:"default_limit"`
	MaxLimit     int `yaml:"max_limit" mapstructure:"max_limit"`
}

// TablesConfig points at optional synonym and location table files.
// Empty paths fall back to the built-in tables.
type TablesConfig struct {
	tables.Files `yaml:",inline" mapstructure:",squash"`
	Watch        bool `yaml:"watch" mapstructure:"watch"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{
		Scoring: *ranking.DefaultScoringConfig(),
		Cache:   cache.DefaultConfig(),
		Metrics: metrics.DefaultConfig(),
		Tables:  TablesConfig{Watch: true},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for any zero values in cfg.
// Booleans are left alone; their defaults come from Default during Load.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		cfg.Server.MaxBodyBytes = 8 << 20
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = ".talentmatch/candidates.db"
	}
	if cfg.Search.DefaultLimit <= 0 {
		cfg.Search.DefaultLimit = 50
	}
	if cfg.Search.MaxLimit <= 0 {
		cfg.Search.MaxLimit = 1000
	}
	if cfg.Search.DefaultLimit > cfg.Search.MaxLimit {
		cfg.Search.DefaultLimit = cfg.Search.MaxLimit
	}
	cfg.Scoring.ApplyDefaults()
	cfg.Cache.ApplyDefaults()
	cfg.Metrics.ApplyDefaults()
}

// Load reads the config file at path (optional), applies TALENTMATCH_*
// environment overrides, fills defaults and expands paths.
func Load(path string) (*Config, error) {
	v := viper.New()
	if err := setDefaults(v, Default()); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configDir := "."
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		configDir = filepath.Dir(path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	ApplyDefaults(&cfg)

	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	if cfg.Tables.Synonyms != "" {
		cfg.Tables.Synonyms = expandPath(cfg.Tables.Synonyms, configDir)
	}
	if cfg.Tables.Locations != "" {
		cfg.Tables.Locations = expandPath(cfg.Tables.Locations, configDir)
	}
	return &cfg, nil
}

// setDefaults registers every key of def with v so that file values and
// environment variables can override any of them.
func setDefaults(v *viper.Viper, def *Config) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to parse defaults: %w", err)
	}
	setTree(v, "", tree)
	return nil
}

func setTree(v *viper.Viper, prefix string, tree map[string]any) {
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			setTree(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

// Save writes the config to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
