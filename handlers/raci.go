// ABOUTME: RACI MCP tool handlers
// ABOUTME: Implements set_raci and raci_gaps tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/metrics"
	"github.com/harperreed/stakeholdr/models"
)

type RACIHandlers struct {
	db *sql.DB
}

func NewRACIHandlers(database *sql.DB) *RACIHandlers {
	return &RACIHandlers{db: database}
}

type SetRACIInput struct {
	Project     string `json:"project" jsonschema:"Project name (required)"`
	Stakeholder string `json:"stakeholder" jsonschema:"Stakeholder name or name fragment (required)"`
	Workstream  string `json:"workstream" jsonschema:"Workstream name (required)"`
	Role        string `json:"role" jsonschema:"RACI role: R, A, C, or I (required)"`
}

type SetRACIOutput struct {
	Stakeholder string `json:"stakeholder"`
	Workstream  string `json:"workstream"`
	Role        string `json:"role"`
}

// SetRACI assigns a RACI role. Re-assigning the same pair overwrites the
// previous role.
func (h *RACIHandlers) SetRACI(_ context.Context, request *mcp.CallToolRequest, input SetRACIInput) (*mcp.CallToolResult, SetRACIOutput, error) {
	role := strings.ToUpper(strings.TrimSpace(input.Role))
	switch role {
	case models.RoleResponsible, models.RoleAccountable, models.RoleConsulted, models.RoleInformed:
	default:
		return nil, SetRACIOutput{}, fmt.Errorf("invalid role %q: must be R, A, C, or I", input.Role)
	}

	project, err := db.FindProjectByName(h.db, input.Project)
	if err != nil {
		return nil, SetRACIOutput{}, fmt.Errorf("failed to look up project: %w", err)
	}
	if project == nil {
		return nil, SetRACIOutput{}, fmt.Errorf("project not found: %s", input.Project)
	}

	target, err := db.FindProjectStakeholderByName(h.db, project.ID, input.Stakeholder)
	if err != nil {
		return nil, SetRACIOutput{}, fmt.Errorf("failed to look up stakeholder: %w", err)
	}
	if target == nil {
		return nil, SetRACIOutput{}, fmt.Errorf("stakeholder not found in project: %s", input.Stakeholder)
	}

	workstream, err := db.FindWorkstreamByName(h.db, project.ID, input.Workstream)
	if err != nil {
		return nil, SetRACIOutput{}, fmt.Errorf("failed to look up workstream: %w", err)
	}
	if workstream == nil {
		return nil, SetRACIOutput{}, fmt.Errorf("workstream not found: %s", input.Workstream)
	}

	if err := db.SetRACIRole(h.db, target.ProjectStakeholderID, workstream.ID, role); err != nil {
		return nil, SetRACIOutput{}, fmt.Errorf("failed to set RACI role: %w", err)
	}

	return nil, SetRACIOutput{
		Stakeholder: target.Name,
		Workstream:  workstream.Name,
		Role:        role,
	}, nil
}

type RACIGapsInput struct {
	Project string `json:"project" jsonschema:"Project name (required)"`
}

type RACIGapOutput struct {
	Workstream  string `json:"workstream"`
	MissingRole string `json:"missing_role"`
}

type RACIGapsOutput struct {
	Gaps []RACIGapOutput `json:"gaps"`
}

// RACIGaps reports workstreams missing a Responsible or Accountable role.
func (h *RACIHandlers) RACIGaps(_ context.Context, request *mcp.CallToolRequest, input RACIGapsInput) (*mcp.CallToolResult, RACIGapsOutput, error) {
	project, err := db.FindProjectByName(h.db, input.Project)
	if err != nil {
		return nil, RACIGapsOutput{}, fmt.Errorf("failed to look up project: %w", err)
	}
	if project == nil {
		return nil, RACIGapsOutput{}, fmt.Errorf("project not found: %s", input.Project)
	}

	workstreams, err := db.ListWorkstreams(h.db, project.ID)
	if err != nil {
		return nil, RACIGapsOutput{}, fmt.Errorf("failed to list workstreams: %w", err)
	}
	raci, err := db.ListRACIByProject(h.db, project.ID)
	if err != nil {
		return nil, RACIGapsOutput{}, fmt.Errorf("failed to list RACI assignments: %w", err)
	}

	gaps := metrics.RACICoverageGaps(workstreams, raci)
	result := make([]RACIGapOutput, len(gaps))
	for i, gap := range gaps {
		result[i] = RACIGapOutput{Workstream: gap.WorkstreamName, MissingRole: models.RACILabel(gap.MissingRole)}
	}
	return nil, RACIGapsOutput{Gaps: result}, nil
}
