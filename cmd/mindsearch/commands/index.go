// ABOUTME: CLI command to build the vector index from exported conversations
// ABOUTME: Sanitizes records, embeds them in batches, and writes the archive
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
	indexSource string
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the vector index from exported conversations",
		Long: `Build the vector index from exported conversations.

Reads newline-delimited JSON message records, filters out records
without embeddable text, embeds the rest in batches, and writes the
index and aligned metadata to the data directory.

Examples:
  mindsearch index
  mindsearch index --source ./flattened_output/conversations.jsonl`,
		Args: cobra.NoArgs,
		RunE: runIndex,
	}

	cmd.Flags().StringVar(&indexSource, "source", "", "Source JSONL file (defaults to <data-dir>/conversations.jsonl)")

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.RequireOpenAIKey(); err != nil {
		return err
	}
	if indexSource != "" {
		cfg.SourceFile = indexSource
	}

	records, err := storage.LoadRecords(cfg.SourceFile)
	if err != nil {
		return fmt.Errorf("loading records: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d records from %s\n", len(records), cfg.SourceFile)
	}

	tokenizer, err := llm.NewTokenizer()
	if err != nil {
		return fmt.Errorf("initializing tokenizer: %w", err)
	}
	client, err := llm.NewOpenAIClient(llm.FromConfig(cfg))
	if err != nil {
		return fmt.Errorf("initializing OpenAI client: %w", err)
	}

	sanitizer := core.NewSanitizer(tokenizer, cfg.MaxTokens)
	indexer := core.NewIndexer(client, sanitizer, cfg.BatchSize)

	index, meta, result, err := indexer.Build(records)
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}

	if err := storage.WriteArchive(cfg.DataDir, index, meta); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d of %d eligible records (%d total, %d batches skipped)\n",
			result.Embedded, result.Eligible, result.Total, result.SkippedBatches)
		fmt.Fprintf(cmd.OutOrStdout(), "Index written to %s (dimension %d)\n", cfg.DataDir, result.Dimension)
	}

	return nil
}
