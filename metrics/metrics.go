// ABOUTME: Derived stakeholder metrics computed from in-memory rows
// ABOUTME: Overdue contacts, blockers, and RACI coverage gaps
package metrics

import (
	"sort"
	"time"

	"github.com/harperreed/stakeholdr/models"
)

// NeverContactedDays is the sentinel for plans with no last-contact date.
// It sorts as most overdue; formatting code should label it "never contacted"
// rather than print it.
const NeverContactedDays = 999

// DefaultIntervalDays is the expected contact interval for the "as-needed"
// frequency. Treating as-needed as monthly is a product policy choice, kept
// in one place so every overdue computation agrees.
const DefaultIntervalDays = 30

// ExpectedIntervalDays maps a communication frequency to the number of days
// after which a contact counts as overdue.
func ExpectedIntervalDays(frequency string) int {
	switch frequency {
	case models.FrequencyDaily:
		return 1
	case models.FrequencyWeekly:
		return 7
	case models.FrequencyBiweekly:
		return 14
	case models.FrequencyMonthly:
		return 30
	case models.FrequencyQuarterly:
		return 90
	default:
		return DefaultIntervalDays
	}
}

// OverdueStakeholder is a project-assigned stakeholder whose communication
// plan interval has lapsed.
type OverdueStakeholder struct {
	models.AssignedStakeholder
	Frequency        string `json:"frequency"`
	DaysSinceContact int    `json:"days_since_contact"`
	NeverContacted   bool   `json:"never_contacted"`
}

// CoverageGap flags a workstream missing a Responsible or Accountable role.
type CoverageGap struct {
	WorkstreamID   string `json:"workstream_id"`
	WorkstreamName string `json:"workstream_name"`
	MissingRole    string `json:"missing_role"`
}

// Overdue returns stakeholders with a communication plan whose last contact
// is strictly older than the plan frequency's expected interval, sorted most
// overdue first. Never-contacted plans use the sentinel and sort to the top.
func Overdue(stakeholders []models.AssignedStakeholder, plans []models.CommPlanRow, now time.Time) []OverdueStakeholder {
	plansByAssignment := make(map[string]models.CommPlanRow, len(plans))
	for _, p := range plans {
		plansByAssignment[p.CommunicationPlan.ProjectStakeholderID.String()] = p
	}

	var overdue []OverdueStakeholder
	for _, s := range stakeholders {
		plan, ok := plansByAssignment[s.ProjectStakeholderID.String()]
		if !ok {
			continue
		}

		if plan.LastContactDate == nil {
			overdue = append(overdue, OverdueStakeholder{
				AssignedStakeholder: s,
				Frequency:           plan.Frequency,
				DaysSinceContact:    NeverContactedDays,
				NeverContacted:      true,
			})
			continue
		}

		expected := ExpectedIntervalDays(plan.Frequency)
		actual := daysBetween(*plan.LastContactDate, now)
		if actual > expected {
			overdue = append(overdue, OverdueStakeholder{
				AssignedStakeholder: s,
				Frequency:           plan.Frequency,
				DaysSinceContact:    actual,
			})
		}
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].DaysSinceContact > overdue[j].DaysSinceContact
	})

	return overdue
}

// Blockers returns high-influence stakeholders whose support is resistant or
// neutral.
func Blockers(stakeholders []models.AssignedStakeholder) []models.AssignedStakeholder {
	var blockers []models.AssignedStakeholder
	for _, s := range stakeholders {
		if IsBlocker(s.Stakeholder) {
			blockers = append(blockers, s)
		}
	}
	return blockers
}

// IsBlocker reports whether a stakeholder can block progress: high influence
// combined with resistant or neutral support.
func IsBlocker(s models.Stakeholder) bool {
	if s.InfluenceLevel != models.InfluenceHigh {
		return false
	}
	return s.SupportLevel == models.SupportResistant || s.SupportLevel == models.SupportNeutral
}

// RACICoverageGaps flags each workstream missing a Responsible and,
// independently, missing an Accountable. A workstream can contribute zero,
// one, or two gaps.
func RACICoverageGaps(workstreams []models.Workstream, raci []models.RACIRow) []CoverageGap {
	var gaps []CoverageGap
	for _, ws := range workstreams {
		hasR := false
		hasA := false
		for _, r := range raci {
			if r.WorkstreamID != ws.ID {
				continue
			}
			switch r.Role {
			case models.RoleResponsible:
				hasR = true
			case models.RoleAccountable:
				hasA = true
			}
		}

		if !hasR {
			gaps = append(gaps, CoverageGap{
				WorkstreamID:   ws.ID.String(),
				WorkstreamName: ws.Name,
				MissingRole:    "Responsible",
			})
		}
		if !hasA {
			gaps = append(gaps, CoverageGap{
				WorkstreamID:   ws.ID.String(),
				WorkstreamName: ws.Name,
				MissingRole:    "Accountable",
			})
		}
	}

	return gaps
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
