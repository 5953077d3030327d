// ABOUTME: Stakeholder MCP tool handlers
// ABOUTME: Implements query_stakeholders and manage_stakeholder tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/models"
)

type StakeholderHandlers struct {
	db *sql.DB
}

func NewStakeholderHandlers(database *sql.DB) *StakeholderHandlers {
	return &StakeholderHandlers{db: database}
}

type QueryStakeholdersInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search fragment (matches name, department, or support level)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type StakeholderOutput struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	JobTitle       string `json:"job_title,omitempty"`
	Department     string `json:"department,omitempty"`
	Email          string `json:"email,omitempty"`
	Slack          string `json:"slack,omitempty"`
	InfluenceLevel string `json:"influence_level"`
	SupportLevel   string `json:"support_level"`
	Notes          string `json:"notes,omitempty"`
}

type QueryStakeholdersOutput struct {
	Stakeholders []StakeholderOutput `json:"stakeholders"`
}

func (h *StakeholderHandlers) QueryStakeholders(_ context.Context, request *mcp.CallToolRequest, input QueryStakeholdersInput) (*mcp.CallToolResult, QueryStakeholdersOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	stakeholders, err := db.FindStakeholders(h.db, input.Query, limit)
	if err != nil {
		return nil, QueryStakeholdersOutput{}, fmt.Errorf("failed to find stakeholders: %w", err)
	}

	result := make([]StakeholderOutput, len(stakeholders))
	for i, s := range stakeholders {
		result[i] = stakeholderToOutput(&s)
	}
	return nil, QueryStakeholdersOutput{Stakeholders: result}, nil
}

type ManageStakeholderInput struct {
	Name           string `json:"name" jsonschema:"Stakeholder name (required; existing stakeholders are matched by name)"`
	JobTitle       string `json:"job_title,omitempty" jsonschema:"Job title"`
	Department     string `json:"department,omitempty" jsonschema:"Department"`
	Email          string `json:"email,omitempty" jsonschema:"Email address"`
	Slack          string `json:"slack,omitempty" jsonschema:"Slack handle"`
	InfluenceLevel string `json:"influence_level,omitempty" jsonschema:"Influence level: high, medium, or low"`
	SupportLevel   string `json:"support_level,omitempty" jsonschema:"Support level: champion, supporter, neutral, or resistant"`
	Notes          string `json:"notes,omitempty" jsonschema:"Free-form notes"`
	Project        string `json:"project,omitempty" jsonschema:"Project name to assign the stakeholder to"`
	Function       string `json:"function,omitempty" jsonschema:"Stakeholder's function on the project"`
}

type ManageStakeholderOutput struct {
	Stakeholder StakeholderOutput `json:"stakeholder"`
	Created     bool              `json:"created"`
	Assigned    bool              `json:"assigned"`
}

// ManageStakeholder upserts a stakeholder by name and optionally assigns them
// to a project. Influence or support updates on an existing stakeholder flow
// through the history log.
func (h *StakeholderHandlers) ManageStakeholder(_ context.Context, request *mcp.CallToolRequest, input ManageStakeholderInput) (*mcp.CallToolResult, ManageStakeholderOutput, error) {
	if input.Name == "" {
		return nil, ManageStakeholderOutput{}, fmt.Errorf("name is required")
	}

	existing, err := db.FindStakeholders(h.db, input.Name, 1)
	if err != nil {
		return nil, ManageStakeholderOutput{}, fmt.Errorf("failed to look up stakeholder: %w", err)
	}

	var stakeholder *models.Stakeholder
	created := false
	if len(existing) > 0 {
		stakeholder = &existing[0]
		if input.JobTitle != "" {
			stakeholder.JobTitle = input.JobTitle
		}
		if input.Department != "" {
			stakeholder.Department = input.Department
		}
		if input.Email != "" {
			stakeholder.Email = input.Email
		}
		if input.Slack != "" {
			stakeholder.Slack = input.Slack
		}
		if input.InfluenceLevel != "" {
			stakeholder.InfluenceLevel = input.InfluenceLevel
		}
		if input.SupportLevel != "" {
			stakeholder.SupportLevel = input.SupportLevel
		}
		if input.Notes != "" {
			stakeholder.Notes = input.Notes
		}
		if err := db.UpdateStakeholder(h.db, stakeholder); err != nil {
			return nil, ManageStakeholderOutput{}, fmt.Errorf("failed to update stakeholder: %w", err)
		}
	} else {
		stakeholder = &models.Stakeholder{
			Name:           input.Name,
			JobTitle:       input.JobTitle,
			Department:     input.Department,
			Email:          input.Email,
			Slack:          input.Slack,
			InfluenceLevel: input.InfluenceLevel,
			SupportLevel:   input.SupportLevel,
			Notes:          input.Notes,
		}
		if err := db.CreateStakeholder(h.db, stakeholder); err != nil {
			return nil, ManageStakeholderOutput{}, fmt.Errorf("failed to create stakeholder: %w", err)
		}
		created = true
	}

	assigned := false
	if input.Project != "" {
		project, err := db.FindProjectByName(h.db, input.Project)
		if err != nil {
			return nil, ManageStakeholderOutput{}, fmt.Errorf("failed to look up project: %w", err)
		}
		if project == nil {
			return nil, ManageStakeholderOutput{}, fmt.Errorf("project not found: %s", input.Project)
		}

		pair, err := db.GetAssignmentByPair(h.db, project.ID, stakeholder.ID)
		if err != nil {
			return nil, ManageStakeholderOutput{}, fmt.Errorf("failed to check assignment: %w", err)
		}
		if pair == nil {
			assignment := &models.ProjectStakeholder{
				ProjectID:       project.ID,
				StakeholderID:   stakeholder.ID,
				ProjectFunction: input.Function,
			}
			if err := db.AssignStakeholder(h.db, assignment); err != nil {
				return nil, ManageStakeholderOutput{}, fmt.Errorf("failed to assign stakeholder: %w", err)
			}
			assigned = true
		} else if input.Function != "" {
			if err := db.UpdateAssignmentFunction(h.db, pair.ID, input.Function); err != nil {
				return nil, ManageStakeholderOutput{}, fmt.Errorf("failed to update function: %w", err)
			}
		}
	}

	return nil, ManageStakeholderOutput{
		Stakeholder: stakeholderToOutput(stakeholder),
		Created:     created,
		Assigned:    assigned,
	}, nil
}

func stakeholderToOutput(s *models.Stakeholder) StakeholderOutput {
	return StakeholderOutput{
		ID:             s.ID.String(),
		Name:           s.Name,
		JobTitle:       s.JobTitle,
		Department:     s.Department,
		Email:          s.Email,
		Slack:          s.Slack,
		InfluenceLevel: s.InfluenceLevel,
		SupportLevel:   s.SupportLevel,
		Notes:          s.Notes,
	}
}
