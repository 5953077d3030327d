// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for Claude Desktop integration
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/stakeholdr/ai"
	"github.com/harperreed/stakeholdr/handlers"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(db *sql.DB) error {
	log.Println("Starting stakeholdr MCP server...")

	stakeholderHandlers := handlers.NewStakeholderHandlers(db)
	raciHandlers := handlers.NewRACIHandlers(db)
	engagementHandlers := handlers.NewEngagementHandlers(db)
	assistantHandlers := handlers.NewAssistantHandlers(db, ai.NewService(db, ai.NewClient("", "")))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "stakeholdr",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_stakeholders",
		Description: "Search stakeholders by name, department, or support level",
	}, stakeholderHandlers.QueryStakeholders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "manage_stakeholder",
		Description: "Create or update a stakeholder by name, optionally assigning them to a project",
	}, stakeholderHandlers.ManageStakeholder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_raci",
		Description: "Set a stakeholder's RACI role (R, A, C, or I) on a workstream",
	}, raciHandlers.SetRACI)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "raci_gaps",
		Description: "List workstreams missing a Responsible or Accountable role",
	}, raciHandlers.RACIGaps)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_engagement",
		Description: "Record an interaction with a stakeholder and update their last-contact date",
	}, engagementHandlers.LogEngagement)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "ask_assistant",
		Description: "Ask a natural-language question about a project's stakeholders",
	}, assistantHandlers.AskAssistant)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
