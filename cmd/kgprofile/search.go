package kgprofile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/serplens/kgprofile"
	"github.com/serplens/kgprofile/pkg/config"
	"github.com/serplens/kgprofile/pkg/kgsearch"
	"github.com/serplens/kgprofile/pkg/logger"
	"github.com/serplens/kgprofile/pkg/mid"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [entity]",
	Short: "Search the Knowledge Graph and derive Discover profile URLs",
	Long: `Search the Google Knowledge Graph for an entity name or brand and try to
derive a candidate Google Discover profile URL from each result's MID.

When the entity name or the API key is missing, the command prompts for
them interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var (
	searchAPIKey string
	searchLimit  int
	searchRaw    bool
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchAPIKey, "api-key", "", "Knowledge Graph Search API key")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "number of results to fetch (1-10)")
	searchCmd.Flags().BoolVar(&searchRaw, "raw", false, "print the raw JSON for each result")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(os.Stderr, logger.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	if searchAPIKey != "" {
		cfg.KGSearch.APIKey = searchAPIKey
	}

	var query string
	if len(args) > 0 {
		query = args[0]
	}

	// Prompt for whatever is still missing, mirroring the form the
	// original web tool presented.
	if cfg.KGSearch.APIKey == "" {
		key, err := promptSecret("Google API Key")
		if err != nil {
			return err
		}
		cfg.KGSearch.APIKey = strings.TrimSpace(key)
	}
	if cfg.KGSearch.APIKey == "" {
		return errors.New("an API key is required")
	}

	if strings.TrimSpace(query) == "" {
		query, err = promptInput("Entity name or brand", "semrush")
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(query) == "" {
		return errors.New("an entity name is required")
	}

	limit := searchLimit
	if limit == 0 {
		limit = cfg.KGSearch.DefaultLimit
	}
	if limit < 1 || limit > 10 {
		return fmt.Errorf("limit must be between 1 and 10, got %d", limit)
	}

	client, err := kgsearch.NewClient(kgsearch.Config{
		APIKey:        cfg.KGSearch.APIKey,
		BaseURL:       cfg.KGSearch.BaseURL,
		Timeout:       cfg.KGSearch.TimeoutDuration(),
		RatePerSecond: cfg.KGSearch.RatePerSecond,
		RateBurst:     cfg.KGSearch.RateBurst,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	var searcher kgsearch.Searcher = client
	if cfg.CircuitBreaker.Enabled {
		searcher = kgsearch.NewBreakerClient(client, cfg.CircuitBreaker, log, "kgsearch")
	}

	finder := kgprofile.New(searcher, log)

	candidates, err := finder.Find(cmd.Context(), query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(candidates) == 0 {
		fmt.Println("No results found for this entity.")
		return nil
	}

	fmt.Printf("Found %d result(s).\n", len(candidates))
	for i, cand := range candidates {
		printCandidate(i+1, cand)
	}
	return nil
}

func printCandidate(idx int, cand kgprofile.Candidate) {
	fmt.Printf("\nResult #%d: %s\n", idx, orDash(cand.Entity.Name))
	fmt.Printf("  Description: %s\n", orDash(cand.Entity.Description))
	fmt.Printf("  MID:         %s\n", orDash(cand.Entity.ID))
	fmt.Printf("  Website:     %s\n", orDash(cand.Entity.URL))

	switch cand.Profile.Status {
	case mid.StatusEncoded:
		fmt.Printf("  Profile:     %s\n", cand.Profile.URL)
	case mid.StatusFormatMismatch:
		fmt.Println("  Profile:     MID does not match expected /m/ or /g/ format")
	case mid.StatusRangeError:
		fmt.Printf("  Profile:     could not encode MID: %v\n", cand.Profile.Err)
	}

	if searchRaw && len(cand.Entity.Raw) > 0 {
		fmt.Printf("  Raw:         %s\n", cand.Entity.Raw)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
