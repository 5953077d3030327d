// ABOUTME: Stakeholder CLI commands
// ABOUTME: Commands for stakeholder CRUD, project assignment, and history
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/models"
)

// AddStakeholderCommand adds a new stakeholder, optionally assigning them to
// a project in the same step.
func AddStakeholderCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-stakeholder", flag.ExitOnError)
	name := fs.String("name", "", "Stakeholder name (required)")
	title := fs.String("title", "", "Job title")
	department := fs.String("department", "", "Department")
	email := fs.String("email", "", "Email address")
	slack := fs.String("slack", "", "Slack handle")
	influence := fs.String("influence", models.InfluenceMedium, "Influence level: high, medium, or low")
	support := fs.String("support", models.SupportNeutral, "Support level: champion, supporter, neutral, or resistant")
	notes := fs.String("notes", "", "Notes about the stakeholder")
	project := fs.String("project", "", "Project to assign the stakeholder to")
	function := fs.String("function", "", "Stakeholder's function on the project")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	stakeholder := &models.Stakeholder{
		Name:           *name,
		JobTitle:       *title,
		Department:     *department,
		Email:          *email,
		Slack:          *slack,
		InfluenceLevel: *influence,
		SupportLevel:   *support,
		Notes:          *notes,
	}
	if err := db.CreateStakeholder(database, stakeholder); err != nil {
		return fmt.Errorf("failed to create stakeholder: %w", err)
	}

	fmt.Printf("✓ Stakeholder created: %s (ID: %s)\n", stakeholder.Name, stakeholder.ID)

	if *project != "" {
		p, err := resolveProject(database, *project)
		if err != nil {
			return err
		}
		assignment := &models.ProjectStakeholder{
			ProjectID:       p.ID,
			StakeholderID:   stakeholder.ID,
			ProjectFunction: *function,
		}
		if err := db.AssignStakeholder(database, assignment); err != nil {
			return fmt.Errorf("failed to assign stakeholder: %w", err)
		}
		fmt.Printf("  Assigned to: %s\n", p.Name)
	}

	return nil
}

// ListStakeholdersCommand lists stakeholders, scoped to a project when
// --project is given.
func ListStakeholdersCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-stakeholders", flag.ExitOnError)
	project := fs.String("project", "", "Limit to one project's stakeholders")
	query := fs.String("query", "", "Search by name, department, or support level")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if *project != "" {
		p, err := resolveProject(database, *project)
		if err != nil {
			return err
		}
		stakeholders, err := db.ListProjectStakeholders(database, p.ID)
		if err != nil {
			return fmt.Errorf("failed to list stakeholders: %w", err)
		}
		if len(stakeholders) == 0 {
			fmt.Println("No stakeholders found")
			return nil
		}

		_, _ = fmt.Fprintln(w, "NAME\tTITLE\tDEPARTMENT\tINFLUENCE\tSUPPORT\tFUNCTION")
		_, _ = fmt.Fprintln(w, "----\t-----\t----------\t---------\t-------\t--------")
		for _, s := range stakeholders {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				s.Name, dash(s.JobTitle), dash(s.Department), s.InfluenceLevel, s.SupportLevel, dash(s.ProjectFunction))
		}
		return w.Flush()
	}

	var stakeholders []models.Stakeholder
	var err error
	if *query != "" {
		stakeholders, err = db.FindStakeholders(database, *query, *limit)
	} else {
		stakeholders, err = db.ListStakeholders(database)
	}
	if err != nil {
		return fmt.Errorf("failed to list stakeholders: %w", err)
	}
	if len(stakeholders) == 0 {
		fmt.Println("No stakeholders found")
		return nil
	}

	_, _ = fmt.Fprintln(w, "NAME\tTITLE\tDEPARTMENT\tINFLUENCE\tSUPPORT\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t----------\t---------\t-------\t--")
	for _, s := range stakeholders {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Name, dash(s.JobTitle), dash(s.Department), s.InfluenceLevel, s.SupportLevel, s.ID)
	}
	return w.Flush()
}

// UpdateStakeholderCommand updates a stakeholder found by name fragment.
// Influence or support changes are recorded in the history log.
func UpdateStakeholderCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-stakeholder", flag.ExitOnError)
	name := fs.String("name", "", "Stakeholder name or fragment (required)")
	title := fs.String("title", "", "New job title")
	department := fs.String("department", "", "New department")
	email := fs.String("email", "", "New email address")
	slack := fs.String("slack", "", "New Slack handle")
	influence := fs.String("influence", "", "New influence level")
	support := fs.String("support", "", "New support level")
	notes := fs.String("notes", "", "New notes")
	_ = fs.Parse(args)

	stakeholder, err := findStakeholder(database, *name)
	if err != nil {
		return err
	}

	if *title != "" {
		stakeholder.JobTitle = *title
	}
	if *department != "" {
		stakeholder.Department = *department
	}
	if *email != "" {
		stakeholder.Email = *email
	}
	if *slack != "" {
		stakeholder.Slack = *slack
	}
	if *influence != "" {
		stakeholder.InfluenceLevel = *influence
	}
	if *support != "" {
		stakeholder.SupportLevel = *support
	}
	if *notes != "" {
		stakeholder.Notes = *notes
	}

	if err := db.UpdateStakeholder(database, stakeholder); err != nil {
		return fmt.Errorf("failed to update stakeholder: %w", err)
	}

	fmt.Printf("✓ Stakeholder updated: %s\n", stakeholder.Name)
	return nil
}

// DeleteStakeholderCommand deletes a stakeholder everywhere.
func DeleteStakeholderCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-stakeholder", flag.ExitOnError)
	name := fs.String("name", "", "Stakeholder name or fragment (required)")
	_ = fs.Parse(args)

	stakeholder, err := findStakeholder(database, *name)
	if err != nil {
		return err
	}

	if err := db.DeleteStakeholder(database, stakeholder.ID); err != nil {
		return fmt.Errorf("failed to delete stakeholder: %w", err)
	}

	fmt.Printf("✓ Stakeholder deleted: %s\n", stakeholder.Name)
	return nil
}

// AssignCommand assigns an existing stakeholder to a project.
func AssignCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("assign", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	name := fs.String("stakeholder", "", "Stakeholder name or fragment (required)")
	function := fs.String("function", "", "Stakeholder's function on the project")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}
	stakeholder, err := findStakeholder(database, *name)
	if err != nil {
		return err
	}

	existing, err := db.GetAssignmentByPair(database, p.ID, stakeholder.ID)
	if err != nil {
		return fmt.Errorf("failed to check assignment: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("%s is already assigned to %s", stakeholder.Name, p.Name)
	}

	assignment := &models.ProjectStakeholder{
		ProjectID:       p.ID,
		StakeholderID:   stakeholder.ID,
		ProjectFunction: *function,
	}
	if err := db.AssignStakeholder(database, assignment); err != nil {
		return fmt.Errorf("failed to assign stakeholder: %w", err)
	}

	fmt.Printf("✓ Assigned %s to %s\n", stakeholder.Name, p.Name)
	return nil
}

// UnassignCommand removes a stakeholder from a project along with their
// project-scoped RACI rows, comm plan, and engagement logs.
func UnassignCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("unassign", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	name := fs.String("stakeholder", "", "Stakeholder name or fragment (required)")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}
	stakeholder, err := findStakeholder(database, *name)
	if err != nil {
		return err
	}

	if err := db.UnassignStakeholder(database, p.ID, stakeholder.ID); err != nil {
		return fmt.Errorf("failed to unassign stakeholder: %w", err)
	}

	fmt.Printf("✓ Unassigned %s from %s\n", stakeholder.Name, p.Name)
	return nil
}

// HistoryCommand shows a stakeholder's influence/support change history.
func HistoryCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	name := fs.String("stakeholder", "", "Stakeholder name or fragment (omit for recent changes across all stakeholders)")
	limit := fs.Int("limit", 20, "Maximum entries")
	_ = fs.Parse(args)

	if *name == "" {
		return recentHistory(database, *limit)
	}

	stakeholder, err := findStakeholder(database, *name)
	if err != nil {
		return err
	}

	history, err := db.ListHistoryByStakeholder(database, stakeholder.ID, *limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	if len(history) == 0 {
		fmt.Printf("No level changes recorded for %s\n", stakeholder.Name)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tFIELD\tFROM\tTO")
	_, _ = fmt.Fprintln(w, "----\t-----\t----\t--")
	for _, h := range history {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", h.ChangedAt.Format("2006-01-02"), h.Field, h.OldValue, h.NewValue)
	}
	return w.Flush()
}

func recentHistory(database *sql.DB, limit int) error {
	history, err := db.ListRecentHistory(database, limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	if len(history) == 0 {
		fmt.Println("No level changes recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tSTAKEHOLDER\tFIELD\tFROM\tTO")
	_, _ = fmt.Fprintln(w, "----\t-----------\t-----\t----\t--")
	for _, h := range history {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", h.ChangedAt.Format("2006-01-02"), h.StakeholderName, h.Field, h.OldValue, h.NewValue)
	}
	return w.Flush()
}

// findStakeholder resolves a name fragment to one stakeholder, lexicographic
// first match.
func findStakeholder(database *sql.DB, fragment string) (*models.Stakeholder, error) {
	if fragment == "" {
		return nil, fmt.Errorf("stakeholder name is required")
	}
	matches, err := db.FindStakeholders(database, fragment, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup stakeholder: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("stakeholder not found: %s", fragment)
	}
	return &matches[0], nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
