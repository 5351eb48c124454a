// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to query the archive via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/zain/mindsearch/internal/config"
	"github.com/zain/mindsearch/internal/core"
	"github.com/zain/mindsearch/internal/llm"
	"github.com/zain/mindsearch/internal/mcp"
	"github.com/zain/mindsearch/internal/storage"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs mindsearch as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to search the conversation archive via stdio.

Requires an existing index; run the index command first.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  mindsearch mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "mindsearch": {
  #       "command": "mindsearch",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
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
	insights := core.NewInsightEngine(client, archive.Metadata, archive.Insights,
		archive.InsightsPath(), cfg.InsightDelay, cfg.InsightSaveEvery)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Mindsearch Archive",
		"0.1.0",
	)

	mcp.RegisterTools(server, engine, insights)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Mindsearch MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
