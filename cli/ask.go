// ABOUTME: Assistant CLI commands
// ABOUTME: Commands for asking questions, briefs, blockers, and overdue checks
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/stakeholdr/ai"
	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/metrics"
)

// buildProjectContext loads the counts the orchestrator includes in prompts.
func buildProjectContext(database *sql.DB, projectName string) (ai.ProjectContext, error) {
	p, err := resolveProject(database, projectName)
	if err != nil {
		return ai.ProjectContext{}, err
	}

	stakeholders, err := db.ListProjectStakeholders(database, p.ID)
	if err != nil {
		return ai.ProjectContext{}, fmt.Errorf("failed to list stakeholders: %w", err)
	}
	workstreams, err := db.ListWorkstreams(database, p.ID)
	if err != nil {
		return ai.ProjectContext{}, fmt.Errorf("failed to list workstreams: %w", err)
	}

	return ai.ProjectContext{
		ProjectID:        p.ID,
		ProjectName:      p.Name,
		StakeholderCount: len(stakeholders),
		WorkstreamCount:  len(workstreams),
	}, nil
}

// AskCommand sends one question through the chat orchestrator and prints the
// answer. Degraded (no-service) answers are marked but still shown.
func AskCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	model := fs.String("model", "", "Ollama model override")
	_ = fs.Parse(args)

	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		return fmt.Errorf("question required: stakeholdr ask --project \"...\" \"who is responsible for design?\"")
	}

	projectCtx, err := buildProjectContext(database, *project)
	if err != nil {
		return err
	}

	client := ai.NewClient("", "")
	service := ai.NewService(database, client)

	response := service.ProcessQuery(context.Background(), question, projectCtx, *model)
	fmt.Println(response.Content)
	if response.ErrorNote != "" {
		fmt.Printf("\n(assistant unavailable, showing stored data: %s)\n", response.ErrorNote)
	}
	return nil
}

// BriefCommand prints a meeting brief for one stakeholder.
func BriefCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("brief", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	model := fs.String("model", "", "Ollama model override")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("stakeholder name required: stakeholdr brief --project \"...\" \"Dana\"")
	}
	name := strings.Join(fs.Args(), " ")

	projectCtx, err := buildProjectContext(database, *project)
	if err != nil {
		return err
	}

	client := ai.NewClient("", "")
	service := ai.NewService(database, client)

	response := service.ProcessQuery(context.Background(), "prepare a brief for "+name, projectCtx, *model)
	fmt.Println(response.Content)
	return nil
}

// BlockersCommand lists potential blockers without calling the assistant.
func BlockersCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("blockers", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	stakeholders, err := db.ListProjectStakeholders(database, p.ID)
	if err != nil {
		return fmt.Errorf("failed to list stakeholders: %w", err)
	}

	blockers := metrics.Blockers(stakeholders)
	if len(blockers) == 0 {
		fmt.Println("✓ No blockers: every high-influence stakeholder is a supporter or champion")
		return nil
	}

	fmt.Printf("%d potential blocker(s):\n", len(blockers))
	for _, b := range blockers {
		fmt.Printf("⚠ %s (%s, %s) — high influence, %s\n", b.Name, dash(b.JobTitle), dash(b.Department), b.SupportLevel)
	}
	return nil
}

// OverdueCommand lists stakeholders whose communication cadence has lapsed.
func OverdueCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("overdue", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	stakeholders, err := db.ListProjectStakeholders(database, p.ID)
	if err != nil {
		return fmt.Errorf("failed to list stakeholders: %w", err)
	}
	plans, err := db.ListCommPlansByProject(database, p.ID)
	if err != nil {
		return fmt.Errorf("failed to list communication plans: %w", err)
	}

	overdue := metrics.Overdue(stakeholders, plans, time.Now())
	if len(overdue) == 0 {
		fmt.Println("✓ Nobody is overdue for contact")
		return nil
	}

	fmt.Printf("%d stakeholder(s) overdue:\n", len(overdue))
	for _, o := range overdue {
		if o.NeverContacted {
			fmt.Printf("⚠ %s (%s plan) — never contacted\n", o.Name, o.Frequency)
		} else {
			fmt.Printf("⚠ %s (%s plan) — last contact %d days ago\n", o.Name, o.Frequency, o.DaysSinceContact)
		}
	}
	return nil
}
