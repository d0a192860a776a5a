package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/talentmatch/internal/config"
	"github.com/hyperjump/talentmatch/internal/storage"
	"github.com/hyperjump/talentmatch/pkg/utils"
)

const (
	app               = "talentmatch"
	defaultConfigPath = "/usr/local/etc/talentmatch/config.yaml"
)

var (
	cfgFile   string
	debugFlag bool
	jsonFlag  bool

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "talentmatch ranks bench candidates against skill, experience, location and availability requirements",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./talentmatch.yaml, then "+defaultConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonFlag, "json", "j", false, "json format for logging")
}

// resolveConfigPath returns the explicit path, else ./talentmatch.yaml when it
// exists, else the system default when it exists, else "" (defaults and env only).
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, app+".yaml")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}

// env is what every command needs: config, logger and, when opened, the store.
type env struct {
	cfg     *config.Config
	cfgPath string
	logger  *zap.Logger
	store   *storage.SQLiteStorage
}

func newEnv(openStore bool) (*env, error) {
	path := resolveConfigPath(cfgFile)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger, err := utils.NewLogger(cfg.Debug || debugFlag, cfg.JSONLog || jsonFlag)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	e := &env{cfg: cfg, cfgPath: path, logger: logger}
	logger.Debug("config loaded", zap.String("config_path", path), zap.String("database_path", cfg.Storage.DatabasePath))

	if openStore {
		store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		e.store = store
	}
	return e, nil
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("closing storage", zap.Error(err))
		}
	}
	_ = e.logger.Sync()
}
