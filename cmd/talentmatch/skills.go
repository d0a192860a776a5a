package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyperjump/talentmatch/internal/cli"
	"github.com/hyperjump/talentmatch/internal/skills"
	"github.com/hyperjump/talentmatch/internal/tables"
)

var (
	suggestOutput      string
	suggestMaxDistance int
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Inspect the skill vocabulary",
}

var skillsSuggestCmd = &cobra.Command{
	Use:   "suggest <term>",
	Short: "Suggest known skills close to a term",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(true)
		if err != nil {
			return err
		}
		defer e.Close()
		set, err := loadTables(e)
		if err != nil {
			return err
		}
		var extra []string
		if cat, err := e.store.Catalog(cmd.Context()); err == nil {
			extra = cat.Skills
		}
		sg := skills.NewSuggester(set.Synonyms, extra, skills.WithMaxDistance(suggestMaxDistance))
		term := args[0]
		if set.Synonyms.Has(term) || sg.Known(term) {
			fmt.Fprintf(cmd.OutOrStdout(), "%q is a known skill\n", term)
		}
		return cli.WriteSuggestions(cmd.OutOrStdout(), term, sg.Suggest(term), cli.ParseOutputFormat(suggestOutput))
	},
}

var skillsExpandCmd = &cobra.Command{
	Use:   "expand <skill>",
	Short: "Print the aliases a requested skill expands to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(false)
		if err != nil {
			return err
		}
		defer e.Close()
		set, err := loadTables(e)
		if err != nil {
			return err
		}
		key := skills.Canonicalize(args[0])
		if !set.Synonyms.Has(key) {
			fmt.Fprintf(cmd.OutOrStdout(), "%q has no synonym group; it matches literally\n", key)
			return nil
		}
		for _, a := range set.Synonyms.Expansions(key) {
			fmt.Fprintln(cmd.OutOrStdout(), a)
		}
		return nil
	},
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the canonical skills that have a synonym group",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(false)
		if err != nil {
			return err
		}
		defer e.Close()
		set, err := loadTables(e)
		if err != nil {
			return err
		}
		for _, key := range set.Synonyms.Keys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d aliases\n", key, len(set.Synonyms.Expansions(key)))
		}
		return nil
	},
}

var skillsExportCmd = &cobra.Command{
	Use:   "export <file.yaml>",
	Short: "Write the effective synonym table to a file that can replace it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(false)
		if err != nil {
			return err
		}
		defer e.Close()
		set, err := loadTables(e)
		if err != nil {
			return err
		}
		if err := tables.SaveSynonyms(args[0], set.Synonyms); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d synonym groups to %s\n", set.Synonyms.Len(), args[0])
		return nil
	},
}

func init() {
	skillsSuggestCmd.Flags().StringVarP(&suggestOutput, "output", "o", string(cli.OutputText), "output format: text or json")
	skillsSuggestCmd.Flags().IntVar(&suggestMaxDistance, "max-distance", 2, "maximum edit distance")
	skillsCmd.AddCommand(skillsSuggestCmd, skillsExpandCmd, skillsListCmd, skillsExportCmd)
	rootCmd.AddCommand(skillsCmd)
}

func loadTables(e *env) (*tables.Set, error) {
	return tables.Load(e.cfg.Tables.Files)
}
