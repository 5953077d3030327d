// ABOUTME: Engagement log MCP tool handler
// ABOUTME: Implements the log_engagement tool with last-contact bookkeeping
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/models"
)

type EngagementHandlers struct {
	db *sql.DB
}

func NewEngagementHandlers(database *sql.DB) *EngagementHandlers {
	return &EngagementHandlers{db: database}
}

type LogEngagementInput struct {
	Project     string `json:"project" jsonschema:"Project name (required)"`
	Stakeholder string `json:"stakeholder" jsonschema:"Stakeholder name or name fragment (required)"`
	Type        string `json:"type,omitempty" jsonschema:"Engagement type: meeting, email, call, decision, or note (default note)"`
	Summary     string `json:"summary,omitempty" jsonschema:"What happened"`
	Sentiment   string `json:"sentiment,omitempty" jsonschema:"Sentiment: positive, neutral, or negative (default neutral)"`
	Date        string `json:"date,omitempty" jsonschema:"Engagement date (RFC3339, defaults to now)"`
}

type LogEngagementOutput struct {
	ID          string `json:"id"`
	Stakeholder string `json:"stakeholder"`
	Type        string `json:"type"`
	Sentiment   string `json:"sentiment"`
	Date        string `json:"date"`
}

// LogEngagement records an interaction. The stakeholder's communication plan
// last-contact date moves forward in the same transaction.
func (h *EngagementHandlers) LogEngagement(_ context.Context, request *mcp.CallToolRequest, input LogEngagementInput) (*mcp.CallToolResult, LogEngagementOutput, error) {
	project, err := db.FindProjectByName(h.db, input.Project)
	if err != nil {
		return nil, LogEngagementOutput{}, fmt.Errorf("failed to look up project: %w", err)
	}
	if project == nil {
		return nil, LogEngagementOutput{}, fmt.Errorf("project not found: %s", input.Project)
	}

	target, err := db.FindProjectStakeholderByName(h.db, project.ID, input.Stakeholder)
	if err != nil {
		return nil, LogEngagementOutput{}, fmt.Errorf("failed to look up stakeholder: %w", err)
	}
	if target == nil {
		return nil, LogEngagementOutput{}, fmt.Errorf("stakeholder not found in project: %s", input.Stakeholder)
	}

	date := time.Now()
	if input.Date != "" {
		parsed, err := time.Parse(time.RFC3339, input.Date)
		if err != nil {
			return nil, LogEngagementOutput{}, fmt.Errorf("invalid date format (use RFC3339): %w", err)
		}
		date = parsed
	}

	engagementType := input.Type
	if engagementType == "" {
		engagementType = models.EngagementNote
	}
	sentiment := input.Sentiment
	if sentiment == "" {
		sentiment = models.SentimentNeutral
	}

	entry := &models.EngagementLog{
		ProjectStakeholderID: target.ProjectStakeholderID,
		Date:                 date,
		Type:                 engagementType,
		Summary:              input.Summary,
		Sentiment:            sentiment,
	}
	if err := db.AddEngagementLog(h.db, entry); err != nil {
		return nil, LogEngagementOutput{}, fmt.Errorf("failed to log engagement: %w", err)
	}

	return nil, LogEngagementOutput{
		ID:          entry.ID.String(),
		Stakeholder: target.Name,
		Type:        entry.Type,
		Sentiment:   entry.Sentiment,
		Date:        entry.Date.Format(time.RFC3339),
	}, nil
}
