// ABOUTME: CLI command to export conversations as plain-text transcripts
// ABOUTME: Prefers the raw source file so unindexed messages are included
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zain/mindsearch/internal/config"
	"github.com/zain/mindsearch/internal/core"
	"github.com/zain/mindsearch/internal/models"
	"github.com/zain/mindsearch/internal/storage"
)

var (
	exportOut string
	exportAll bool
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [conversation-id]",
		Short: "Export conversations as plain-text transcripts",
		Long: `Export conversations as plain-text transcripts.

Each transcript lists the messages in timestamp order with speaker
headers, followed by the cached summary and keywords when available.
Messages come from the raw source file when it is readable, so short
or unembeddable messages still appear in the export.

Examples:
  mindsearch export 0a1b2c3d
  mindsearch export --all --out ./transcripts`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportOut, "out", "exports", "Directory to write transcripts into")
	cmd.Flags().BoolVar(&exportAll, "all", false, "Export every conversation in the archive")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !exportAll {
		return fmt.Errorf("provide a conversation id or --all")
	}
	if len(args) == 1 && exportAll {
		return fmt.Errorf("--all cannot be combined with a conversation id")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	archive, err := storage.LoadArchive(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading archive: %w", err)
	}

	// The source file has every message, including ones too short to embed.
	records, err := storage.LoadRecords(cfg.SourceFile)
	if err != nil {
		logrus.Debugf("source file unavailable, exporting from metadata: %v", err)
		records = archive.Metadata.Records()
	}

	var ids []string
	if exportAll {
		ids = archive.Metadata.ConversationIDs()
	} else {
		ids = []string{args[0]}
	}

	if err := os.MkdirAll(exportOut, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	exported := 0
	for _, id := range ids {
		thread := storage.ReconstructThread(records, id)
		if len(thread) == 0 {
			if !exportAll {
				return fmt.Errorf("no messages found for conversation %s", id)
			}
			logrus.Warnf("conversation %s has no reconstructable messages, skipping", id)
			continue
		}

		var insight *models.Insight
		if cached, ok := archive.Insights.Get(id); ok {
			insight = &cached
		}

		outPath := filepath.Join(exportOut, core.ExportFilename(id, thread))
		if err := os.WriteFile(outPath, []byte(core.FormatThread(thread, insight)), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		exported++

		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d conversation(s) to %s\n", exported, exportOut)
	}

	return nil
}
