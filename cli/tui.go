// ABOUTME: TUI subcommand
// ABOUTME: Launches the full-screen chat interface for one project
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"time"

	"github.com/harperreed/stakeholdr/ai"
	"github.com/harperreed/stakeholdr/tui"
)

// TUICommand starts the interactive chat panel.
func TUICommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	model := fs.String("model", "", "Ollama model override")
	_ = fs.Parse(args)

	projectCtx, err := buildProjectContext(database, *project)
	if err != nil {
		return err
	}

	client := ai.NewClient("", "")
	if *model == "" {
		*model = client.DefaultModel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if !client.CheckConnection(ctx) {
		fmt.Println("Note: Ollama is not reachable; answers will come from stored data only.")
	}

	service := ai.NewService(database, client)
	return tui.Run(database, service, projectCtx, *model)
}
