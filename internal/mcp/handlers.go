// ABOUTME: MCP tool handlers bridging requests to the search and insight engines
// ABOUTME: All handlers return tool errors rather than protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zain/mindsearch/internal/core"
	"github.com/zain/mindsearch/internal/models"
)

// Handlers holds the engines the MCP tools operate on.
type Handlers struct {
	engine   *core.SearchEngine
	insights *core.InsightEngine
}

// SearchArchive handles the search_archive tool.
func (h *Handlers) SearchArchive(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 5)
	role := request.GetString("role", core.RoleFilterAny)
	if role != core.RoleFilterAny && role != core.RoleFilterUser && role != core.RoleFilterAssistant {
		return mcp.NewToolResultError(fmt.Sprintf("invalid role filter %q", role)), nil
	}

	hits, err := h.engine.Search(query, core.SearchOptions{
		Role:       role,
		MaxResults: maxResults,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	type hitResponse struct {
		ConversationID string  `json:"conversation_id"`
		MessageID      string  `json:"message_id"`
		Role           string  `json:"role"`
		Content        string  `json:"content"`
		Distance       float32 `json:"distance"`
	}
	response := struct {
		Query   string        `json:"query"`
		Results []hitResponse `json:"results"`
	}{Query: query, Results: []hitResponse{}}

	for _, hit := range hits {
		response.Results = append(response.Results, hitResponse{
			ConversationID: hit.Record.ConversationID,
			MessageID:      hit.Record.MessageID,
			Role:           hit.Record.Role,
			Content:        hit.Record.DisplayText(),
			Distance:       hit.Distance,
		})
	}

	return marshalResult(response)
}

// GetConversation handles the get_conversation tool.
func (h *Handlers) GetConversation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversationID, err := request.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError("conversation_id argument is required and must be a string"), nil
	}

	thread := h.engine.Conversation(conversationID)
	if len(thread) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no messages found for conversation %s", conversationID)), nil
	}

	type messageResponse struct {
		MessageID string `json:"message_id"`
		Role      string `json:"role"`
		Content   string `json:"content"`
		Timestamp string `json:"timestamp,omitempty"`
	}
	messages := make([]messageResponse, 0, len(thread))
	for _, r := range thread {
		m := messageResponse{MessageID: r.MessageID, Role: r.Role, Content: r.DisplayText()}
		if t, ok := r.Time(); ok {
			m.Timestamp = t.Format("2006-01-02 15:04:05")
		}
		messages = append(messages, m)
	}

	return marshalResult(struct {
		ConversationID string            `json:"conversation_id"`
		Messages       []messageResponse `json:"messages"`
	}{conversationID, messages})
}

// GetConversationInsight handles the get_conversation_insight tool.
func (h *Handlers) GetConversationInsight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	conversationID, err := request.RequireString("conversation_id")
	if err != nil {
		return mcp.NewToolResultError("conversation_id argument is required and must be a string"), nil
	}

	var insight models.Insight
	cached, ok := h.engine.Insight(conversationID)
	switch {
	case ok && !cached.Failed():
		insight = cached
	case h.insights != nil:
		insight, err = h.insights.GenerateOnDemand(conversationID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("insight generation failed: %v", err)), nil
		}
	default:
		return mcp.NewToolResultError(fmt.Sprintf("no insight cached for %s and generation is unavailable", conversationID)), nil
	}

	return marshalResult(struct {
		ConversationID string   `json:"conversation_id"`
		Summary        string   `json:"summary"`
		Keywords       []string `json:"keywords"`
	}{conversationID, insight.Summary, insight.Keywords})
}

func marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
