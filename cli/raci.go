// ABOUTME: RACI CLI commands
// ABOUTME: Commands for assigning roles, printing the matrix, and gap checks
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/metrics"
	"github.com/harperreed/stakeholdr/models"
)

// RACICommand sets or clears a RACI role for a stakeholder on a workstream.
// Setting a role that already exists overwrites it.
func RACICommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("raci", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	stakeholder := fs.String("stakeholder", "", "Stakeholder name or fragment (required)")
	workstream := fs.String("workstream", "", "Workstream name (required)")
	role := fs.String("role", "", "RACI role: R, A, C, or I")
	remove := fs.Bool("remove", false, "Remove the role instead of setting one")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	target, err := db.FindProjectStakeholderByName(database, p.ID, *stakeholder)
	if err != nil {
		return fmt.Errorf("failed to lookup stakeholder: %w", err)
	}
	if target == nil {
		return fmt.Errorf("stakeholder not found in project: %s", *stakeholder)
	}

	ws, err := db.FindWorkstreamByName(database, p.ID, *workstream)
	if err != nil {
		return fmt.Errorf("failed to lookup workstream: %w", err)
	}
	if ws == nil {
		return fmt.Errorf("workstream not found: %s", *workstream)
	}

	if *remove {
		if err := db.RemoveRACIRole(database, target.ProjectStakeholderID, ws.ID); err != nil {
			return fmt.Errorf("failed to remove RACI role: %w", err)
		}
		fmt.Printf("✓ Removed %s's role on %s\n", target.Name, ws.Name)
		return nil
	}

	normalized := strings.ToUpper(strings.TrimSpace(*role))
	switch normalized {
	case models.RoleResponsible, models.RoleAccountable, models.RoleConsulted, models.RoleInformed:
	default:
		return fmt.Errorf("invalid role %q: must be R, A, C, or I", *role)
	}

	if err := db.SetRACIRole(database, target.ProjectStakeholderID, ws.ID, normalized); err != nil {
		return fmt.Errorf("failed to set RACI role: %w", err)
	}

	fmt.Printf("✓ %s is now %s for %s\n", target.Name, models.RACILabel(normalized), ws.Name)
	return nil
}

// RACIMatrixCommand prints the project's RACI matrix: one row per
// stakeholder, one column per workstream.
func RACIMatrixCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("raci-matrix", flag.ExitOnError)
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
	raci, err := db.ListRACIByProject(database, p.ID)
	if err != nil {
		return fmt.Errorf("failed to list RACI assignments: %w", err)
	}

	if len(raci) == 0 {
		fmt.Println("No RACI assignments found")
		return nil
	}

	// stakeholder → workstream → role
	cells := make(map[string]map[string]string)
	for _, r := range raci {
		if cells[r.StakeholderName] == nil {
			cells[r.StakeholderName] = make(map[string]string)
		}
		cells[r.StakeholderName][r.WorkstreamName] = r.Role
	}

	names := make([]string, 0, len(cells))
	for name := range cells {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "STAKEHOLDER"
	for _, ws := range workstreams {
		header += "\t" + strings.ToUpper(ws.Name)
	}
	_, _ = fmt.Fprintln(w, header)
	for _, name := range names {
		row := name
		for _, ws := range workstreams {
			role := cells[name][ws.Name]
			if role == "" {
				role = "-"
			}
			row += "\t" + role
		}
		_, _ = fmt.Fprintln(w, row)
	}
	return w.Flush()
}

// RACIGapsCommand reports workstreams missing a Responsible or Accountable.
func RACIGapsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("raci-gaps", flag.ExitOnError)
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
	raci, err := db.ListRACIByProject(database, p.ID)
	if err != nil {
		return fmt.Errorf("failed to list RACI assignments: %w", err)
	}

	gaps := metrics.RACICoverageGaps(workstreams, raci)
	if len(gaps) == 0 {
		fmt.Println("✓ No gaps: every workstream has a Responsible and an Accountable")
		return nil
	}

	for _, gap := range gaps {
		fmt.Printf("⚠ %s is missing a %s\n", gap.WorkstreamName, models.RACILabel(gap.MissingRole))
	}
	return nil
}
