// ABOUTME: MCP tool definitions and registration for the archive search server
// ABOUTME: Exposes semantic search, thread reconstruction, and insights over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/zain/mindsearch/internal/core"
)

// RegisterTools registers the archive tools with the server.
func RegisterTools(server *mcpserver.MCPServer, engine *core.SearchEngine, insights *core.InsightEngine) *Handlers {
	handlers := &Handlers{
		engine:   engine,
		insights: insights,
	}

	server.AddTool(mcp.Tool{
		Name: "search_archive",
		Description: "Semantic search over the conversation archive. Returns the closest " +
			"messages to the query by meaning, with their conversation ids and distances.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
				"role": map[string]interface{}{
					"type":        "string",
					"description": "Filter hits by message role: any, user, or assistant",
					"default":     "any",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchArchive)

	server.AddTool(mcp.Tool{
		Name: "get_conversation",
		Description: "Return a full conversation thread by id, time-ordered. Messages " +
			"without a parsable timestamp are omitted.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation id from a search result",
				},
			},
			Required: []string{"conversation_id"},
		},
	}, handlers.GetConversation)

	server.AddTool(mcp.Tool{
		Name: "get_conversation_insight",
		Description: "Return the cached one-sentence summary and keywords for a conversation, " +
			"generating them on demand when not cached.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"conversation_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation id from a search result",
				},
			},
			Required: []string{"conversation_id"},
		},
	}, handlers.GetConversationInsight)

	return handlers
}
