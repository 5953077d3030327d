// ABOUTME: Engagement log CLI commands
// ABOUTME: Commands for recording and reviewing stakeholder interactions
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/models"
)

// LogCommand records an engagement. The stakeholder's communication plan
// last-contact date moves forward in the same transaction.
func LogCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	stakeholder := fs.String("stakeholder", "", "Stakeholder name or fragment (required)")
	engagementType := fs.String("type", models.EngagementNote, "Type: meeting, email, call, decision, or note")
	summary := fs.String("summary", "", "What happened")
	sentiment := fs.String("sentiment", models.SentimentNeutral, "Sentiment: positive, neutral, or negative")
	date := fs.String("date", "", "Engagement date (YYYY-MM-DD, defaults to today)")
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

	when := time.Now()
	if *date != "" {
		parsed, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return fmt.Errorf("invalid date (use YYYY-MM-DD): %w", err)
		}
		when = parsed
	}

	entry := &models.EngagementLog{
		ProjectStakeholderID: target.ProjectStakeholderID,
		Date:                 when,
		Type:                 *engagementType,
		Summary:              *summary,
		Sentiment:            *sentiment,
	}
	if err := db.AddEngagementLog(database, entry); err != nil {
		return fmt.Errorf("failed to log engagement: %w", err)
	}

	fmt.Printf("✓ Logged %s with %s on %s\n", entry.Type, target.Name, entry.Date.Format("2006-01-02"))
	return nil
}

// ListEngagementsCommand lists recent engagements, optionally for one
// stakeholder.
func ListEngagementsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-engagements", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	stakeholder := fs.String("stakeholder", "", "Limit to one stakeholder")
	limit := fs.Int("limit", 20, "Maximum entries")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if *stakeholder != "" {
		target, err := db.FindProjectStakeholderByName(database, p.ID, *stakeholder)
		if err != nil {
			return fmt.Errorf("failed to lookup stakeholder: %w", err)
		}
		if target == nil {
			return fmt.Errorf("stakeholder not found in project: %s", *stakeholder)
		}

		logs, err := db.ListEngagementsByAssignment(database, target.ProjectStakeholderID, *limit)
		if err != nil {
			return fmt.Errorf("failed to list engagements: %w", err)
		}
		if len(logs) == 0 {
			fmt.Printf("No engagements logged for %s\n", target.Name)
			return nil
		}

		_, _ = fmt.Fprintln(w, "DATE\tTYPE\tSENTIMENT\tSUMMARY")
		_, _ = fmt.Fprintln(w, "----\t----\t---------\t-------")
		for _, e := range logs {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date.Format("2006-01-02"), e.Type, e.Sentiment, dash(e.Summary))
		}
		return w.Flush()
	}

	logs, err := db.ListRecentEngagements(database, p.ID, *limit)
	if err != nil {
		return fmt.Errorf("failed to list engagements: %w", err)
	}
	if len(logs) == 0 {
		fmt.Println("No engagements logged")
		return nil
	}

	_, _ = fmt.Fprintln(w, "DATE\tSTAKEHOLDER\tTYPE\tSENTIMENT\tSUMMARY")
	_, _ = fmt.Fprintln(w, "----\t-----------\t----\t---------\t-------")
	for _, e := range logs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Date.Format("2006-01-02"), e.StakeholderName, e.Type, e.Sentiment, dash(e.Summary))
	}
	return w.Flush()
}
