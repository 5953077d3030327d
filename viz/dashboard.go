// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides an ASCII project health overview
package viz

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/metrics"
	"github.com/harperreed/stakeholdr/models"
)

type DashboardStats struct {
	ProjectName string

	// Support breakdown
	SupportCounts map[string]int

	// Overall stats
	TotalStakeholders int
	TotalWorkstreams  int

	// Needs attention
	Blockers []models.AssignedStakeholder
	Overdue  []metrics.OverdueStakeholder
	Gaps     []metrics.CoverageGap
}

func GenerateDashboardStats(database *sql.DB, projectID uuid.UUID) (*DashboardStats, error) {
	project, err := db.GetProject(database, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("project %s not found", projectID)
	}

	stats := &DashboardStats{
		ProjectName:   project.Name,
		SupportCounts: make(map[string]int),
	}

	stakeholders, err := db.ListProjectStakeholders(database, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stakeholders: %w", err)
	}
	stats.TotalStakeholders = len(stakeholders)
	for _, s := range stakeholders {
		stats.SupportCounts[s.SupportLevel]++
	}

	workstreams, err := db.ListWorkstreams(database, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workstreams: %w", err)
	}
	stats.TotalWorkstreams = len(workstreams)

	plans, err := db.ListCommPlansByProject(database, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comm plans: %w", err)
	}

	raci, err := db.ListRACIByProject(database, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch raci: %w", err)
	}

	stats.Blockers = metrics.Blockers(stakeholders)
	stats.Overdue = metrics.Overdue(stakeholders, plans, time.Now())
	stats.Gaps = metrics.RACICoverageGaps(workstreams, raci)

	return stats, nil
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString(fmt.Sprintf("  %s — STAKEHOLDER DASHBOARD\n", strings.ToUpper(stats.ProjectName)))
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("SUPPORT BREAKDOWN\n")
	renderSupport(&out, stats.SupportCounts)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  👥 %d stakeholders  🔀 %d workstreams\n\n",
		stats.TotalStakeholders, stats.TotalWorkstreams))

	if len(stats.Blockers) > 0 || len(stats.Overdue) > 0 || len(stats.Gaps) > 0 {
		out.WriteString("NEEDS ATTENTION\n")

		if len(stats.Blockers) > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d potential blocker(s) - high influence, not supportive\n", len(stats.Blockers)))
		}
		if len(stats.Overdue) > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d stakeholder(s) overdue for contact\n", len(stats.Overdue)))
		}
		for _, gap := range stats.Gaps {
			out.WriteString(fmt.Sprintf("  ⚠️  %s - missing %s\n", gap.WorkstreamName, models.RACILabel(gap.MissingRole)))
		}
	}

	return out.String()
}

func renderSupport(out *strings.Builder, counts map[string]int) {
	levels := []string{
		models.SupportChampion,
		models.SupportSupporter,
		models.SupportNeutral,
		models.SupportResistant,
	}

	maxCount := 0
	for _, level := range levels {
		if counts[level] > maxCount {
			maxCount = counts[level]
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, level := range levels {
		count := counts[level]
		barLength := (count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-10s %s  %2d\n", level, bar, count))
	}
}
