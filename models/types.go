// ABOUTME: Data models for stakeholder-management entities
// ABOUTME: Defines Project, Stakeholder, Workstream, RACI, and communication structs
package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type Stakeholder struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	JobTitle       string    `json:"job_title,omitempty"`
	Department     string    `json:"department,omitempty"`
	Email          string    `json:"email,omitempty"`
	Slack          string    `json:"slack,omitempty"`
	InfluenceLevel string    `json:"influence_level"`
	SupportLevel   string    `json:"support_level"`
	Notes          string    `json:"notes,omitempty"`
}

type Workstream struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// ProjectStakeholder assigns one stakeholder to one project. At most one
// assignment exists per (project, stakeholder) pair; RACI rows, comm plans,
// and engagement logs all hang off the assignment id, not the stakeholder id.
type ProjectStakeholder struct {
	ID              uuid.UUID `json:"id"`
	ProjectID       uuid.UUID `json:"project_id"`
	StakeholderID   uuid.UUID `json:"stakeholder_id"`
	ProjectFunction string    `json:"project_function,omitempty"`
}

type RACIAssignment struct {
	ID                   uuid.UUID `json:"id"`
	ProjectStakeholderID uuid.UUID `json:"project_stakeholder_id"`
	WorkstreamID         uuid.UUID `json:"workstream_id"`
	Role                 string    `json:"role"`
}

type CommunicationPlan struct {
	ID                   uuid.UUID  `json:"id"`
	ProjectStakeholderID uuid.UUID  `json:"project_stakeholder_id"`
	Channel              string     `json:"channel"`
	Frequency            string     `json:"frequency"`
	Notes                string     `json:"notes,omitempty"`
	LastContactDate      *time.Time `json:"last_contact_date,omitempty"`
}

type EngagementLog struct {
	ID                   uuid.UUID `json:"id"`
	ProjectStakeholderID uuid.UUID `json:"project_stakeholder_id"`
	Date                 time.Time `json:"date"`
	Type                 string    `json:"type"`
	Summary              string    `json:"summary,omitempty"`
	Sentiment            string    `json:"sentiment"`
	CreatedAt            time.Time `json:"created_at"`
}

// StakeholderHistory is an append-only audit row recording an influence or
// support level transition.
type StakeholderHistory struct {
	ID            uuid.UUID `json:"id"`
	StakeholderID uuid.UUID `json:"stakeholder_id"`
	Field         string    `json:"field"`
	OldValue      string    `json:"old_value"`
	NewValue      string    `json:"new_value"`
	ChangedAt     time.Time `json:"changed_at"`
	Notes         string    `json:"notes,omitempty"`
}

type Tag struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

type Relationship struct {
	ID                uuid.UUID `json:"id"`
	FromStakeholderID uuid.UUID `json:"from_stakeholder_id"`
	ToStakeholderID   uuid.UUID `json:"to_stakeholder_id"`
	Type              string    `json:"type"`
	Strength          string    `json:"strength"`
	Notes             string    `json:"notes,omitempty"`
}

// ProjectStatus constants.
const (
	StatusActive   = "active"
	StatusPlanning = "planning"
	StatusArchived = "archived"
)

// InfluenceLevel constants.
const (
	InfluenceHigh   = "high"
	InfluenceMedium = "medium"
	InfluenceLow    = "low"
)

// SupportLevel constants.
const (
	SupportChampion  = "champion"
	SupportSupporter = "supporter"
	SupportNeutral   = "neutral"
	SupportResistant = "resistant"
)

// RACI role constants.
const (
	RoleResponsible = "R"
	RoleAccountable = "A"
	RoleConsulted   = "C"
	RoleInformed    = "I"
)

// CommunicationChannel constants.
const (
	ChannelEmail    = "email"
	ChannelSlack    = "slack"
	ChannelJira     = "jira"
	ChannelBriefing = "briefing"
	ChannelMeeting  = "meeting"
	ChannelOther    = "other"
)

// CommunicationFrequency constants.
const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyBiweekly  = "biweekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyAsNeeded  = "as-needed"
)

// EngagementType constants.
const (
	EngagementMeeting  = "meeting"
	EngagementEmail    = "email"
	EngagementCall     = "call"
	EngagementDecision = "decision"
	EngagementNote     = "note"
)

// Sentiment constants.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// RelationshipType constants.
const (
	RelationReportsTo     = "reports_to"
	RelationInfluences    = "influences"
	RelationAlliedWith    = "allied_with"
	RelationConflictsWith = "conflicts_with"
)

// RelationshipStrength constants.
const (
	StrengthStrong   = "strong"
	StrengthModerate = "moderate"
	StrengthWeak     = "weak"
)

// History field constants.
const (
	FieldInfluenceLevel = "influence_level"
	FieldSupportLevel   = "support_level"
)

// RACILabel expands a single-letter RACI role to its full name.
func RACILabel(role string) string {
	switch role {
	case RoleResponsible:
		return "Responsible"
	case RoleAccountable:
		return "Accountable"
	case RoleConsulted:
		return "Consulted"
	case RoleInformed:
		return "Informed"
	}
	return role
}

// AssignedStakeholder combines a stakeholder with its project assignment for
// project-scoped views.
type AssignedStakeholder struct {
	Stakeholder
	ProjectStakeholderID uuid.UUID `json:"project_stakeholder_id"`
	ProjectFunction      string    `json:"project_function,omitempty"`
}

// RACIRow is a RACI assignment joined with workstream and stakeholder names.
type RACIRow struct {
	RACIAssignment
	WorkstreamName  string    `json:"workstream_name"`
	StakeholderName string    `json:"stakeholder_name"`
	StakeholderID   uuid.UUID `json:"stakeholder_id"`
}

// CommPlanRow is a communication plan joined with the stakeholder it covers.
type CommPlanRow struct {
	CommunicationPlan
	StakeholderName string    `json:"stakeholder_name"`
	StakeholderID   uuid.UUID `json:"stakeholder_id"`
}

// EngagementRow is an engagement log joined with the stakeholder name.
type EngagementRow struct {
	EngagementLog
	StakeholderName string    `json:"stakeholder_name"`
	StakeholderID   uuid.UUID `json:"stakeholder_id"`
}

// HistoryRow is a history entry joined with the stakeholder name.
type HistoryRow struct {
	StakeholderHistory
	StakeholderName string `json:"stakeholder_name"`
}

// RelationshipRow is a relationship joined with both endpoint names.
type RelationshipRow struct {
	Relationship
	FromName string `json:"from_name"`
	ToName   string `json:"to_name"`
}
