// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Wires verbosity flags into the shared logger
package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
███╗   ███╗██╗███╗   ██╗██████╗ ███████╗███████╗ █████╗ ██████╗  ██████╗██╗  ██╗
████╗ ████║██║████╗  ██║██╔══██╗██╔════╝██╔════╝██╔══██╗██╔══██╗██╔════╝██║  ██║
██╔████╔██║██║██╔██╗ ██║██║  ██║███████╗█████╗  ███████║██████╔╝██║     ███████║
██║╚██╔╝██║██║██║╚██╗██║██║  ██║╚════██║██╔══╝  ██╔══██║██╔══██╗██║     ██╔══██║
██║ ╚═╝ ██║██║██║ ╚████║██████╔╝███████║███████╗██║  ██║██║  ██║╚██████╗██║  ██║
╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝

Semantic search over your conversation archive.`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mindsearch",
		Short: "Semantic search over a personal conversation archive",
		Long: banner + `

mindsearch builds a vector index over exported conversation history
and answers free-text queries against it. Conversations can also be
summarized, browsed by date, and exported as plain text.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case verbose:
				logrus.SetLevel(logrus.DebugLevel)
			case quiet:
				logrus.SetLevel(logrus.ErrorLevel)
			default:
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, table, json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewIndexCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewInsightsCmd())
	cmd.AddCommand(NewTimelineCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
