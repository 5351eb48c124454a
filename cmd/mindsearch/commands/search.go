// ABOUTME: CLI command to run semantic queries against the archive
// ABOUTME: Supports role filtering and table or JSON output
package commands

import (
	"encoding/json"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zain/mindsearch/internal/config"
	"github.com/zain/mindsearch/internal/core"
	"github.com/zain/mindsearch/internal/llm"
	"github.com/zain/mindsearch/internal/storage"
)

var (
	searchLimit   int
	searchRole    string
	searchContext bool
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the conversation archive",
		Long: `Search the conversation archive with a free-text query.

Embeds the query and returns the closest messages by vector distance,
optionally filtered by speaker role.

Examples:
  mindsearch search "trip planning"
  mindsearch search --limit 10 --role user "python errors"
  mindsearch search --format json --context "database migration"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")
	cmd.Flags().StringVar(&searchRole, "role", core.RoleFilterAny, "Filter results by role (any, user, assistant)")
	cmd.Flags().BoolVar(&searchContext, "context", false, "Include the full conversation for each hit")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if searchLimit < 1 {
		return fmt.Errorf("limit must be positive, got %d", searchLimit)
	}
	validRoles := []string{core.RoleFilterAny, core.RoleFilterUser, core.RoleFilterAssistant}
	if !slices.Contains(validRoles, searchRole) {
		return fmt.Errorf("invalid role %q (expected any, user, or assistant)", searchRole)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.RequireOpenAIKey(); err != nil {
		return err
	}

	archive, err := storage.LoadArchive(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading archive: %w", err)
	}
	client, err := llm.NewOpenAIClient(llm.FromConfig(cfg))
	if err != nil {
		return fmt.Errorf("initializing OpenAI client: %w", err)
	}

	engine := core.NewSearchEngine(client, archive, cfg.SearchOverfetch)
	hits, err := engine.Search(args[0], core.SearchOptions{
		Role:                searchRole,
		MaxResults:          searchLimit,
		IncludeConversation: searchContext,
	})
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if len(hits) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for query: %s\n", args[0])
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	// Table format
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DISTANCE\tROLE\tWHEN\tCONVERSATION\tCONTENT\n")
	fmt.Fprintf(w, "--------\t----\t----\t------------\t-------\n")
	for _, hit := range hits {
		when := "unknown"
		if t, ok := hit.Record.Time(); ok {
			when = formatTime(t)
		}
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\t%s\n",
			hit.Distance,
			hit.Record.Role,
			when,
			truncate(hit.Record.ConversationID, 25),
			truncate(hit.Record.DisplayText(), 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(hits))
	}

	return nil
}
