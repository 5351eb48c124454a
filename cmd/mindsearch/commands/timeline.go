// ABOUTME: CLI command to build a date-keyed timeline of indexed messages
// ABOUTME: Writes timeline.json to the data directory and prints a day summary
package commands

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zain/mindsearch/internal/config"
	"github.com/zain/mindsearch/internal/core"
	"github.com/zain/mindsearch/internal/storage"
)

// NewTimelineCmd creates the timeline command
func NewTimelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Group indexed messages by calendar date",
		Long: `Group indexed messages by calendar date.

Buckets every indexed message under its YYYY-MM-DD date (or "unknown"
when the timestamp cannot be parsed) and writes the result to
timeline.json in the data directory.`,
		Args: cobra.NoArgs,
		RunE: runTimeline,
	}

	return cmd
}

func runTimeline(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	archive, err := storage.LoadArchive(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("loading archive: %w", err)
	}

	timeline := core.BuildTimeline(archive.Metadata.Records())

	outPath := filepath.Join(cfg.DataDir, storage.TimelineFile)
	if err := storage.WriteJSON(outPath, timeline); err != nil {
		return fmt.Errorf("writing timeline: %w", err)
	}

	if !quiet {
		dates := make([]string, 0, len(timeline))
		for d := range timeline {
			dates = append(dates, d)
		}
		sort.Strings(dates)

		for _, d := range dates {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %d message(s)\n", d, len(timeline[d]))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nTimeline written to %s\n", outPath)
	}

	return nil
}
