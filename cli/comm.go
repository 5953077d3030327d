// ABOUTME: Communication plan CLI commands
// ABOUTME: Commands for setting cadences and listing plan status
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

// CommPlanCommand sets or updates a stakeholder's communication plan.
// Updating an existing plan keeps its last-contact date.
func CommPlanCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("comm-plan", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	stakeholder := fs.String("stakeholder", "", "Stakeholder name or fragment (required)")
	channel := fs.String("channel", models.ChannelEmail, "Channel: email, slack, jira, briefing, meeting, or other")
	frequency := fs.String("frequency", models.FrequencyMonthly, "Frequency: daily, weekly, biweekly, monthly, quarterly, or as-needed")
	notes := fs.String("notes", "", "Plan notes")
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

	plan := &models.CommunicationPlan{
		ProjectStakeholderID: target.ProjectStakeholderID,
		Channel:              *channel,
		Frequency:            *frequency,
		Notes:                *notes,
	}
	if err := db.SetCommPlan(database, plan); err != nil {
		return fmt.Errorf("failed to set communication plan: %w", err)
	}

	fmt.Printf("✓ Communication plan set: %s via %s, %s\n", target.Name, plan.Channel, plan.Frequency)
	return nil
}

// ListCommPlansCommand lists a project's communication plans with their
// last-contact dates.
func ListCommPlansCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-comm-plans", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	plans, err := db.ListCommPlansByProject(database, p.ID)
	if err != nil {
		return fmt.Errorf("failed to list communication plans: %w", err)
	}
	if len(plans) == 0 {
		fmt.Println("No communication plans found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STAKEHOLDER\tCHANNEL\tFREQUENCY\tLAST CONTACT")
	_, _ = fmt.Fprintln(w, "-----------\t-------\t---------\t------------")
	for _, plan := range plans {
		lastContact := "never"
		if plan.LastContactDate != nil {
			lastContact = plan.LastContactDate.Format("2006-01-02")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", plan.StakeholderName, plan.Channel, plan.Frequency, lastContact)
	}
	return w.Flush()
}
