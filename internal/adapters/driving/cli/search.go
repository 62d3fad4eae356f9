package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/redline/internal/core/domain"
)

var (
	searchMaxPerPage int
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search across all pages",
	Long: `Scans every page's title and markup-stripped content for the query
and prints bounded excerpts, ranked by match count.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchMaxPerPage, "max-per-page", "n", 0, "maximum excerpts per page (0 = unlimited)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if deps.Search == nil {
		return errors.New("search service not configured")
	}

	ctx := context.Background()
	opts := domain.SearchOptions{MaxPerPage: searchMaxPerPage}
	if opts.MaxPerPage == 0 && deps.Config != nil {
		opts.MaxPerPage = deps.Config.GetInt("search.max_per_page")
	}

	results, err := deps.Search.Search(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.PageMatch) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.PageMatch) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		title := results[i].Title
		if title == "" {
			title = results[i].PageID
		}

		cmd.Printf("  [%d] %s (%d matches)\n", i+1, title, results[i].TotalMatches)
		for _, m := range results[i].Matches {
			cmd.Printf("      %s\n", m.Text)
		}
		if results[i].Truncated {
			cmd.Println("      ...")
		}
		cmd.Println()
	}

	return nil
}
