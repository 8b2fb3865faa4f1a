package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvec/internal/adapters/driving/tui"
)

var (
	searchCollection  string
	searchLimit       int
	searchJSON        bool
	searchInteractive bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search a collection",
	Long: `Embeds the query and returns the most similar chunks of a collection,
most similar first. A collection that does not exist yields no results.

Use -i to open an interactive prompt that runs one query after another.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if searchInteractive {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCollection, "collection", "c", "", "collection to search (default from config)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "interactive search prompt")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	collection, limit, err := searchDefaults()
	if err != nil {
		return err
	}
	if err := requireServices(cmd); err != nil {
		return err
	}
	if searchService == nil {
		return errors.New("search service not configured")
	}

	if searchInteractive {
		return runInteractiveSearch(cmd, collection, limit)
	}

	query := strings.Join(args, " ")
	hits, err := searchService.Search(cmd.Context(), collection, query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, toHitsJSON(hits))
	}

	if len(hits) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	for _, h := range hits {
		cmd.Println(FormatHit(h))
	}
	return nil
}

func searchDefaults() (string, int, error) {
	svc, err := requireSettings()
	if err != nil {
		return "", 0, err
	}
	settings, err := svc.Get()
	if err != nil {
		return "", 0, fmt.Errorf("load settings: %w", err)
	}

	collection := settings.Collection
	if searchCollection != "" {
		collection = searchCollection
	}
	limit := settings.Search.Limit
	if searchLimit > 0 {
		limit = searchLimit
	}
	return collection, limit, nil
}

func runInteractiveSearch(cmd *cobra.Command, collection string, limit int) error {
	app, err := tui.NewApp(&tui.Ports{Search: searchService}, tui.Options{
		Collection: collection,
		Limit:      limit,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
