// ABOUTME: CLI command to batch-generate conversation summaries and keywords
// ABOUTME: Resumable over the cache; only uncached conversations cost API calls
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zain/mindsearch/internal/config"
	"github.com/zain/mindsearch/internal/core"
	"github.com/zain/mindsearch/internal/llm"
	"github.com/zain/mindsearch/internal/storage"
)

var (
	insightsLimit int
)

// NewInsightsCmd creates the insights command
func NewInsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate summaries and keywords for indexed conversations",
		Long: `Generate summaries and keywords for indexed conversations.

Walks every conversation in the archive, skips ones already cached,
and asks the chat model for a summary and keywords for the rest. The
cache is saved incrementally, so an interrupted run resumes where it
left off.

Examples:
  mindsearch insights
  mindsearch insights --limit 25`,
		Args: cobra.NoArgs,
		RunE: runInsights,
	}

	cmd.Flags().IntVar(&insightsLimit, "limit", 0, "Process at most this many uncached conversations (0 = all)")

	return cmd
}

func runInsights(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if insightsLimit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", insightsLimit)
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

	engine := core.NewInsightEngine(client, archive.Metadata, archive.Insights,
		archive.InsightsPath(), cfg.InsightDelay, cfg.InsightSaveEvery)

	stats, err := engine.Run(insightsLimit)
	if err != nil {
		return fmt.Errorf("generating insights: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Conversations: %d\n", stats.Conversations)
		fmt.Fprintf(cmd.OutOrStdout(), "Already cached: %d\n", stats.Skipped)
		fmt.Fprintf(cmd.OutOrStdout(), "Generated: %d\n", stats.Generated)
		fmt.Fprintf(cmd.OutOrStdout(), "Failed: %d\n", stats.Failed)
	}

	return nil
}
