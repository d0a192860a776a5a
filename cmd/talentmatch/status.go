package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/hyperjump/talentmatch/internal/cli"
)

// statusResponse is the shape of GET /api/v1/status response.
type statusResponse struct {
	Candidates     int64    `json:"candidates"`
	Eligible       int64    `json:"eligible"`
	SynonymGroups  int      `json:"synonym_groups"`
	Regions        []string `json:"regions"`
	CacheBackend   string   `json:"cache_backend,omitempty"`
	DatabasePath   string   `json:"database_path,omitempty"`
	DiskUsageBytes *int64   `json:"disk_usage_bytes,omitempty"`
}

var (
	statusServer string
	statusOutput string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dataset and table statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		status, err := collectStatus(cmd.Context(), statusServer)
		if err != nil {
			return err
		}
		return writeStatus(cmd.OutOrStdout(), status, cli.ParseOutputFormat(statusOutput))
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusServer, "server", "", "server URL; empty reads the local database directly")
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", string(cli.OutputText), "output format: text or json")
	rootCmd.AddCommand(statusCmd)
}

func collectStatus(ctx context.Context, serverURL string) (*statusResponse, error) {
	if serverURL != "" {
		var s statusResponse
		if err := doJSON(ctx, http.MethodGet, serverURL+"/api/v1/status", nil, &s); err != nil {
			return nil, fmt.Errorf("status failed: %w", err)
		}
		return &s, nil
	}

	e, err := newEnv(true)
	if err != nil {
		return nil, err
	}
	defer e.Close()
	set, err := loadTables(e)
	if err != nil {
		return nil, err
	}
	total, err := e.store.CountCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("count candidates failed: %w", err)
	}
	eligible, err := e.store.CountEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("count eligible failed: %w", err)
	}
	s := &statusResponse{
		Candidates:    total,
		Eligible:      eligible,
		SynonymGroups: set.Synonyms.Len(),
		Regions:       set.Locations.Names(),
		CacheBackend:  e.cfg.Cache.Backend,
		DatabasePath:  e.cfg.Storage.DatabasePath,
	}
	if size, err := e.store.SizeBytes(); err == nil {
		s.DiskUsageBytes = &size
	}
	return s, nil
}

func writeStatus(w io.Writer, status *statusResponse, format cli.OutputFormat) error {
	if format == cli.OutputJSON {
		return cli.WriteJSON(w, status)
	}
	fmt.Fprintf(w, "candidates:         %d   # stored records\n", status.Candidates)
	fmt.Fprintf(w, "eligible:           %d   # searchable (not earmarked / going on ML)\n", status.Eligible)
	fmt.Fprintf(w, "synonym_groups:     %d\n", status.SynonymGroups)
	fmt.Fprintf(w, "regions:            %v\n", status.Regions)
	if status.DiskUsageBytes != nil {
		fmt.Fprintf(w, "disk_usage_bytes:   %d\n", *status.DiskUsageBytes)
	}
	if status.CacheBackend != "" || status.DatabasePath != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "# configuration")
		if status.CacheBackend != "" {
			fmt.Fprintf(w, "cache_backend:      %s\n", status.CacheBackend)
		}
		if status.DatabasePath != "" {
			fmt.Fprintf(w, "database_path:      %s\n", status.DatabasePath)
		}
	}
	return nil
}
