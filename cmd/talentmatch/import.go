package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/talentmatch/internal/cli"
	"github.com/hyperjump/talentmatch/internal/validation"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json|file.yaml>...",
	Short: "Validate and upsert candidate records into the local database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(true)
		if err != nil {
			return err
		}
		defer e.Close()

		v, err := validation.New()
		if err != nil {
			return err
		}
		total := 0
		for _, path := range args {
			candidates, err := cli.ReadCandidates(path, v)
			if err != nil {
				return err
			}
			n, err := e.store.UpsertCandidates(cmd.Context(), candidates)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", path, err)
			}
			e.logger.Info("imported candidates", zap.String("path", path), zap.Int("count", n))
			total += n
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d candidates from %d file(s)\n", total, len(args))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
