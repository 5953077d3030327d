// ABOUTME: Assistant MCP tool handler
// ABOUTME: Implements ask_assistant by delegating to the chat orchestrator
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stakeholdr/ai"
	"github.com/harperreed/stakeholdr/db"
)

type AssistantHandlers struct {
	db      *sql.DB
	service *ai.Service
}

func NewAssistantHandlers(database *sql.DB, service *ai.Service) *AssistantHandlers {
	return &AssistantHandlers{db: database, service: service}
}

type AskAssistantInput struct {
	Project  string `json:"project" jsonschema:"Project name to scope the question to (required)"`
	Question string `json:"question" jsonschema:"Natural-language question about stakeholders (required)"`
	Model    string `json:"model,omitempty" jsonschema:"Ollama model override"`
}

type AskAssistantOutput struct {
	Content   string           `json:"content"`
	Results   []map[string]any `json:"results,omitempty"`
	ErrorNote string           `json:"error_note,omitempty"`
}

// AskAssistant answers a natural-language question. When the Ollama service
// is unreachable the answer degrades to a deterministic rendering of the
// query results, flagged via error_note.
func (h *AssistantHandlers) AskAssistant(ctx context.Context, request *mcp.CallToolRequest, input AskAssistantInput) (*mcp.CallToolResult, AskAssistantOutput, error) {
	if input.Question == "" {
		return nil, AskAssistantOutput{}, fmt.Errorf("question is required")
	}

	project, err := db.FindProjectByName(h.db, input.Project)
	if err != nil {
		return nil, AskAssistantOutput{}, fmt.Errorf("failed to look up project: %w", err)
	}
	if project == nil {
		return nil, AskAssistantOutput{}, fmt.Errorf("project not found: %s", input.Project)
	}

	stakeholders, err := db.ListProjectStakeholders(h.db, project.ID)
	if err != nil {
		return nil, AskAssistantOutput{}, fmt.Errorf("failed to list stakeholders: %w", err)
	}
	workstreams, err := db.ListWorkstreams(h.db, project.ID)
	if err != nil {
		return nil, AskAssistantOutput{}, fmt.Errorf("failed to list workstreams: %w", err)
	}

	response := h.service.ProcessQuery(ctx, input.Question, ai.ProjectContext{
		ProjectID:        project.ID,
		ProjectName:      project.Name,
		StakeholderCount: len(stakeholders),
		WorkstreamCount:  len(workstreams),
	}, input.Model)

	return nil, AskAssistantOutput{
		Content:   response.Content,
		Results:   response.Results,
		ErrorNote: response.ErrorNote,
	}, nil
}
