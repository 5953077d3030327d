// ABOUTME: Project CLI commands
// ABOUTME: Human-friendly commands for managing projects and workstreams
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

// resolveProject looks up a project by name and errors when it is missing.
// Nearly every command is project-scoped, so the error text points at
// list-projects.
func resolveProject(database *sql.DB, name string) (*models.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("--project is required")
	}
	project, err := db.FindProjectByName(database, name)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("project not found: %s (try 'stakeholdr pm list-projects')", name)
	}
	return project, nil
}

// AddProjectCommand creates a new project.
func AddProjectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-project", flag.ExitOnError)
	name := fs.String("name", "", "Project name (required)")
	description := fs.String("description", "", "Project description")
	status := fs.String("status", models.StatusActive, "Status: active, planning, or archived")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	project := &models.Project{
		Name:        *name,
		Description: *description,
		Status:      *status,
	}
	if err := db.CreateProject(database, project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("✓ Project created: %s (ID: %s)\n", project.Name, project.ID)
	return nil
}

// ListProjectsCommand lists all projects.
func ListProjectsCommand(database *sql.DB, args []string) error {
	projects, err := db.ListProjects(database)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSTATUS\tCREATED\tID")
	_, _ = fmt.Fprintln(w, "----\t------\t-------\t--")
	for _, p := range projects {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Status, p.CreatedAt.Format("2006-01-02"), p.ID)
	}
	return w.Flush()
}

// UpdateProjectCommand updates a project's description or status.
func UpdateProjectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-project", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	name := fs.String("name", "", "New project name")
	description := fs.String("description", "", "New description")
	status := fs.String("status", "", "New status: active, planning, or archived")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	if *name != "" {
		p.Name = *name
	}
	if *description != "" {
		p.Description = *description
	}
	if *status != "" {
		p.Status = *status
	}

	if err := db.UpdateProject(database, p); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	fmt.Printf("✓ Project updated: %s\n", p.Name)
	return nil
}

// DeleteProjectCommand deletes a project and everything scoped to it.
// Stakeholders themselves survive, since they are shared across projects.
func DeleteProjectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-project", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	if err := db.DeleteProject(database, p.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	fmt.Printf("✓ Project deleted: %s\n", p.Name)
	return nil
}

// AddWorkstreamCommand adds a workstream to a project.
func AddWorkstreamCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-workstream", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	name := fs.String("name", "", "Workstream name (required)")
	description := fs.String("description", "", "Workstream description")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	ws := &models.Workstream{
		ProjectID:   p.ID,
		Name:        *name,
		Description: *description,
	}
	if err := db.CreateWorkstream(database, ws); err != nil {
		return fmt.Errorf("failed to create workstream: %w", err)
	}

	fmt.Printf("✓ Workstream created: %s (ID: %s)\n", ws.Name, ws.ID)
	return nil
}

// ListWorkstreamsCommand lists a project's workstreams.
func ListWorkstreamsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-workstreams", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	workstreams, err := db.ListWorkstreams(database, p.ID)
	if err != nil {
		return fmt.Errorf("failed to list workstreams: %w", err)
	}

	if len(workstreams) == 0 {
		fmt.Println("No workstreams found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDESCRIPTION\tID")
	_, _ = fmt.Fprintln(w, "----\t-----------\t--")
	for _, ws := range workstreams {
		desc := ws.Description
		if desc == "" {
			desc = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", ws.Name, desc, ws.ID)
	}
	return w.Flush()
}

// DeleteWorkstreamCommand removes a workstream and its RACI rows.
func DeleteWorkstreamCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-workstream", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	name := fs.String("name", "", "Workstream name (required)")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	ws, err := db.FindWorkstreamByName(database, p.ID, *name)
	if err != nil {
		return fmt.Errorf("failed to lookup workstream: %w", err)
	}
	if ws == nil {
		return fmt.Errorf("workstream not found: %s", *name)
	}

	if err := db.DeleteWorkstream(database, ws.ID); err != nil {
		return fmt.Errorf("failed to delete workstream: %w", err)
	}

	fmt.Printf("✓ Workstream deleted: %s\n", ws.Name)
	return nil
}
