package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/talentmatch/internal/cli"
	"github.com/hyperjump/talentmatch/internal/models"
	"github.com/hyperjump/talentmatch/internal/ranking"
	"github.com/hyperjump/talentmatch/internal/skills"
	"github.com/hyperjump/talentmatch/internal/tables"
)

type searchFlags struct {
	skills    []string
	minExp    float64
	maxExp    float64
	location  string
	startDate string
	sort      string
	output    string
	limit     int
	server    string
}

var searchOpts searchFlags

var searchCmd = &cobra.Command{
	Use:   "search [skill...]",
	Short: "Rank candidates against the given requirements",
	Example: `  talentmatch search --skill java --skill "spring boot" --min-exp 3 --max-exp 8
  talentmatch search react node --location india --start-date 2025-04-01 --sort exp_low
  talentmatch search --skill python --output json --server http://localhost:8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := searchOpts.filter(cmd, args)
		return runSearch(cmd.Context(), cmd.OutOrStdout(), filter, searchOpts)
	},
}

func init() {
	f := searchCmd.Flags()
	f.StringArrayVarP(&searchOpts.skills, "skill", "s", nil, "required skill (repeatable); positional arguments are skills too")
	f.Float64Var(&searchOpts.minExp, "min-exp", 0, "minimum total experience in years")
	f.Float64Var(&searchOpts.maxExp, "max-exp", 0, "maximum total experience in years")
	f.StringVarP(&searchOpts.location, "location", "l", "", "requested location or region")
	f.StringVar(&searchOpts.startDate, "start-date", "", "project start date (YYYY-MM-DD)")
	f.StringVar(&searchOpts.sort, "sort", string(models.SortMatch), "sort mode: match, designation, exp_low or exp_high")
	f.StringVarP(&searchOpts.output, "output", "o", string(cli.OutputText), "output format: text, compact or json")
	f.IntVarP(&searchOpts.limit, "limit", "n", 20, "number of results to print (0 = all)")
	f.StringVar(&searchOpts.server, "server", "", "server URL; empty searches the local database directly")
	rootCmd.AddCommand(searchCmd)
}

// filter builds the request from flags. Experience bounds are only set when
// their flag was given, so 0 can be requested explicitly.
func (o searchFlags) filter(cmd *cobra.Command, args []string) models.FilterRequest {
	f := models.FilterRequest{
		Skills:           append(append([]string{}, o.skills...), args...),
		Location:         o.location,
		ProjectStartDate: o.startDate,
	}
	if cmd.Flags().Changed("min-exp") {
		f.MinExperience = models.Float(o.minExp)
	}
	if cmd.Flags().Changed("max-exp") {
		f.MaxExperience = models.Float(o.maxExp)
	}
	return f
}

func runSearch(ctx context.Context, out io.Writer, filter models.FilterRequest, o searchFlags) error {
	format := cli.ParseOutputFormat(o.output)
	mode := models.ParseSortMode(o.sort)

	if o.server != "" {
		response, err := searchViaHTTP(ctx, o.server, &models.SearchRequest{Filter: filter, Sort: string(mode)}, o.limit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return cli.WriteSearchResults(out, response, format)
	}

	e, err := newEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	set, err := tables.Load(e.cfg.Tables.Files)
	if err != nil {
		return err
	}
	ranker := ranking.NewRanker(&e.cfg.Scoring, set.Synonyms, set.Locations)
	filter = ranker.Normalize(filter)
	if len(filter.Skills) > 0 {
		if err := filter.Validate(); err != nil {
			return err
		}
	}

	candidates, err := e.store.ListEligible(ctx)
	if err != nil {
		return fmt.Errorf("failed to list candidates: %w", err)
	}
	start := time.Now()
	results, stats, err := ranker.SearchWithStats(candidates, filter, mode)
	if err != nil && !errors.Is(err, ranking.ErrNoSkills) {
		return err
	}
	for _, step := range stats.Steps {
		e.logger.Debug("search step",
			zap.String("step", step.Name),
			zap.Int("initial", step.Initial),
			zap.Int("dropped", step.Dropped),
			zap.Int("left", step.Left),
		)
	}

	var catalogSkills []string
	if cat, err := e.store.Catalog(ctx); err == nil {
		catalogSkills = cat.Skills
	}
	response := &models.SearchResponse{
		Sort:        mode,
		Results:     ranking.TopN(results, o.limit),
		Total:       len(results),
		QueryTime:   time.Since(start).Milliseconds(),
		NoSkills:    errors.Is(err, ranking.ErrNoSkills),
		Suggestions: skills.NewSuggester(set.Synonyms, catalogSkills).SuggestUnknown(set.Synonyms, filter.Skills),
	}
	return cli.WriteSearchResults(out, response, format)
}

func searchViaHTTP(ctx context.Context, serverURL string, req *models.SearchRequest, limit int) (*models.SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := serverURL + "/api/v1/search"
	if limit > 0 {
		url = fmt.Sprintf("%s?limit=%d", url, limit)
	}
	var response models.SearchResponse
	if err := doJSON(ctx, http.MethodPost, url, bytes.NewReader(body), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func doJSON(ctx context.Context, method, url string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
