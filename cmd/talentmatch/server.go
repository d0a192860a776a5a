package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/talentmatch/internal/cache"
	"github.com/hyperjump/talentmatch/internal/metrics"
	"github.com/hyperjump/talentmatch/internal/server"
	"github.com/hyperjump/talentmatch/internal/tables"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(parent context.Context) error {
	e, err := newEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()
	cfg, logger := e.cfg, e.logger
	logger.Info("starting talentmatch", zap.String("version", version), zap.String("config_path", e.cfgPath))

	set, err := tables.Load(cfg.Tables.Files)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer results.Close()

	opts := []server.Option{server.WithLogger(logger)}
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
		opts = append(opts, server.WithMetrics(m))
	}
	srv := server.NewServer(cfg, set, e.store, results, opts...)

	if cfg.Tables.Watch {
		reloader := tables.NewReloader(cfg.Tables.Files, func(s *tables.Set) {
			srv.SetTables(s)
			m.TableReload(true)
		}, logger).OnError(func(error) {
			m.TableReload(false)
		})
		if err := reloader.Start(ctx); err != nil {
			return err
		}
		defer reloader.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
