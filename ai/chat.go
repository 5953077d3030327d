// ABOUTME: Chat orchestrator that routes user questions to help text,
// ABOUTME: special-command handlers, or the intent parser plus Ollama
package ai

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/metrics"
	"github.com/harperreed/stakeholdr/models"
)

// ChatResponse is the orchestrator's answer to one user message. Results
// carries the structured query rows backing the narrative, and survives even
// when narrative generation fails. ErrorNote is set when the response was
// produced in degraded (no-service) mode.
type ChatResponse struct {
	Content   string           `json:"content"`
	Results   []map[string]any `json:"results,omitempty"`
	ErrorNote string           `json:"error_note,omitempty"`
}

// ProjectContext scopes a conversation to one project.
type ProjectContext struct {
	ProjectID        uuid.UUID
	ProjectName      string
	StakeholderCount int
	WorkstreamCount  int
}

// Service answers chat questions against a project database, using an Ollama
// client for narrative synthesis when it is reachable.
type Service struct {
	db     *sql.DB
	client *Client
}

func NewService(database *sql.DB, client *Client) *Service {
	return &Service{db: database, client: client}
}

const serviceUnavailableMsg = "I couldn't reach the assistant service and have no data to show for that question. Check that Ollama is running, or try a more specific question like \"who is responsible for design?\"."

var (
	briefPattern   = regexp.MustCompile(`(?i)(?:prepare|generate|create)\s+(?:a\s+)?brief\s+for\s+(.+)`)
	emailPattern   = regexp.MustCompile(`(?i)draft\s+(?:an\s+)?email\s+(?:for|to)\s+(.+)`)
	blockerPattern = regexp.MustCompile(`(?i)blocker|at[- ]risk|concern`)
	neglectPattern = regexp.MustCompile(`(?i)neglect|overdue|haven'?t\s+(?:been\s+)?contact`)
)

// ProcessQuery is the single entry point for a chat turn. Dispatch order:
// help questions, then the four special commands, then intent parse plus
// synthesis. Service failures never lose structured results.
func (s *Service) ProcessQuery(ctx context.Context, text string, project ProjectContext, model string) ChatResponse {
	text = strings.TrimSpace(text)

	if isHelpQuestion(text) {
		return ChatResponse{Content: helpAnswer(text)}
	}

	if m := briefPattern.FindStringSubmatch(text); m != nil {
		return s.meetingBrief(ctx, strings.TrimSpace(m[1]), project, model)
	}
	if m := emailPattern.FindStringSubmatch(text); m != nil {
		return s.draftEmail(ctx, strings.TrimSpace(m[1]), project, model)
	}
	if blockerPattern.MatchString(text) {
		return s.analyzeBlockers(ctx, project, model)
	}
	if neglectPattern.MatchString(text) {
		return s.findNeglected(project)
	}

	return s.answerQuestion(ctx, text, project, model)
}

// answerQuestion is the default path: parse the question into an intent, run
// its query, and ask the model to narrate the rows.
func (s *Service) answerQuestion(ctx context.Context, text string, project ProjectContext, model string) ChatResponse {
	intent := ParseIntent(text)

	var results []map[string]any
	if intent.Query != "" {
		rows, err := db.ExecuteQuery(s.db, intent.Query, intent.Params)
		if err != nil {
			// Query failures keep the conversation usable: log and
			// continue with no rows.
			log.Printf("chat: intent query failed: %v", err)
		} else {
			results = rows
		}
	}

	prompt := buildPrompt(text, project, results)
	content, err := s.client.Generate(ctx, model, prompt)
	if err == nil {
		return ChatResponse{Content: content, Results: results}
	}

	log.Printf("chat: generation failed, using fallback: %v", err)
	if len(results) == 0 {
		return ChatResponse{Content: serviceUnavailableMsg, ErrorNote: err.Error()}
	}
	return ChatResponse{
		Content:   fallbackContent(intent, results),
		Results:   results,
		ErrorNote: err.Error(),
	}
}

// meetingBrief assembles profile, RACI, engagement, and history data for one
// stakeholder and narrates it, or renders it as bullets when the service is
// down.
func (s *Service) meetingBrief(ctx context.Context, fragment string, project ProjectContext, model string) ChatResponse {
	target, err := db.FindProjectStakeholderByName(s.db, project.ProjectID, fragment)
	if err != nil {
		log.Printf("chat: brief lookup failed: %v", err)
	}
	if target == nil {
		return ChatResponse{Content: fmt.Sprintf("I couldn't find a stakeholder matching %q in %s. Try part of their name, or list stakeholders to check the spelling.", fragment, project.ProjectName)}
	}

	raci, err := db.ListRACIByAssignment(s.db, target.ProjectStakeholderID)
	if err != nil {
		log.Printf("chat: brief raci lookup failed: %v", err)
	}
	engagements, err := db.ListEngagementsByAssignment(s.db, target.ProjectStakeholderID, 5)
	if err != nil {
		log.Printf("chat: brief engagement lookup failed: %v", err)
	}
	history, err := db.ListHistoryByStakeholder(s.db, target.ID, 3)
	if err != nil {
		log.Printf("chat: brief history lookup failed: %v", err)
	}

	results := briefResults(target, raci, engagements, history)

	var b strings.Builder
	fmt.Fprintf(&b, "Prepare a concise meeting brief for this stakeholder on project %q.\n\n", project.ProjectName)
	fmt.Fprintf(&b, "Profile: %s, %s, %s. Influence: %s. Support: %s.\n", target.Name, orUnknown(target.JobTitle), orUnknown(target.Department), target.InfluenceLevel, target.SupportLevel)
	if target.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", target.Notes)
	}
	if len(raci) > 0 {
		b.WriteString("RACI roles:\n")
		for _, r := range raci {
			fmt.Fprintf(&b, "- %s for %s\n", models.RACILabel(r.Role), r.WorkstreamName)
		}
	}
	if len(engagements) > 0 {
		b.WriteString("Recent engagements:\n")
		for _, e := range engagements {
			fmt.Fprintf(&b, "- %s %s (%s): %s\n", e.Date.Format("2006-01-02"), e.Type, e.Sentiment, e.Summary)
		}
	}
	if len(history) > 0 {
		b.WriteString("Recent level changes:\n")
		for _, h := range history {
			fmt.Fprintf(&b, "- %s: %s changed from %s to %s\n", h.ChangedAt.Format("2006-01-02"), h.Field, h.OldValue, h.NewValue)
		}
	}
	b.WriteString("\nCover: who they are, what they own, how the relationship is trending, and what to raise in the meeting.")

	content, err := s.client.Generate(ctx, model, b.String())
	if err == nil {
		return ChatResponse{Content: content, Results: results}
	}

	log.Printf("chat: brief generation failed, using fallback: %v", err)
	return ChatResponse{
		Content:   renderBrief(target, raci, engagements, history),
		Results:   results,
		ErrorNote: err.Error(),
	}
}

// draftEmail finds up to 10 recipients whose name, department, or support
// level matches the fragment and asks the model to draft an email to them.
func (s *Service) draftEmail(ctx context.Context, fragment string, project ProjectContext, model string) ChatResponse {
	recipients, err := db.FindStakeholders(s.db, fragment, 10)
	if err != nil {
		log.Printf("chat: email recipient lookup failed: %v", err)
	}
	if len(recipients) == 0 {
		return ChatResponse{Content: fmt.Sprintf("No stakeholders match %q by name, department, or support level, so there's nobody to address the email to.", fragment)}
	}

	results := make([]map[string]any, len(recipients))
	for i, r := range recipients {
		results[i] = map[string]any{
			"name":            r.Name,
			"job_title":       r.JobTitle,
			"department":      r.Department,
			"email":           r.Email,
			"influence_level": r.InfluenceLevel,
			"support_level":   r.SupportLevel,
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Draft a short, professional project update email for project %q addressed to these stakeholders:\n", project.ProjectName)
	for _, r := range recipients {
		fmt.Fprintf(&b, "- %s, %s, %s (influence: %s, support: %s)\n", r.Name, orUnknown(r.JobTitle), orUnknown(r.Department), r.InfluenceLevel, r.SupportLevel)
	}
	b.WriteString("\nMatch the tone to the audience's seniority and support level. Include a subject line.")

	content, err := s.client.Generate(ctx, model, b.String())
	if err == nil {
		return ChatResponse{Content: content, Results: results}
	}

	log.Printf("chat: email generation failed: %v", err)
	return ChatResponse{
		Content:   fmt.Sprintf("Found %d potential recipient(s) matching %q, but the draft couldn't be produced because the assistant service is unreachable. The recipient list is attached.", len(recipients), fragment),
		Results:   results,
		ErrorNote: err.Error(),
	}
}

const blockersQuery = `
	SELECT s.name, s.job_title, s.department, s.influence_level, s.support_level, s.notes
	FROM stakeholders s
	JOIN project_stakeholders ps ON s.id = ps.stakeholder_id
	WHERE ps.project_id = ?
	AND s.influence_level = 'high'
	AND s.support_level IN ('resistant', 'neutral')
	ORDER BY s.name`

// analyzeBlockers lists high-influence stakeholders who are resistant or
// neutral. An empty result is good news, not an error.
func (s *Service) analyzeBlockers(ctx context.Context, project ProjectContext, model string) ChatResponse {
	results, err := db.ExecuteQuery(s.db, blockersQuery, []any{project.ProjectID.String()})
	if err != nil {
		log.Printf("chat: blocker query failed: %v", err)
	}
	if len(results) == 0 {
		return ChatResponse{Content: "No blockers right now: every high-influence stakeholder is a supporter or champion."}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "These high-influence stakeholders on project %q are resistant or neutral and may block progress:\n", project.ProjectName)
	for _, row := range results {
		fmt.Fprintf(&b, "- %s, %s, %s (support: %s)\n", str(row, "name"), orUnknown(str(row, "job_title")), orUnknown(str(row, "department")), str(row, "support_level"))
	}
	b.WriteString("\nFor each, suggest one concrete engagement step to reduce the risk.")

	content, err := s.client.Generate(ctx, model, b.String())
	if err == nil {
		return ChatResponse{Content: content, Results: results}
	}

	log.Printf("chat: blocker narration failed, using fallback: %v", err)
	var fb strings.Builder
	fmt.Fprintf(&fb, "%d potential blocker(s) found:\n", len(results))
	for _, row := range results {
		fmt.Fprintf(&fb, "- %s (%s, %s): high influence, %s. Plan a one-on-one to understand their concerns.\n",
			str(row, "name"), orUnknown(str(row, "job_title")), orUnknown(str(row, "department")), str(row, "support_level"))
	}
	return ChatResponse{Content: fb.String(), Results: results, ErrorNote: err.Error()}
}

// findNeglected reports overdue communication plans. This path is fully
// local: the interval math is deterministic and needs no narration.
func (s *Service) findNeglected(project ProjectContext) ChatResponse {
	stakeholders, err := db.ListProjectStakeholders(s.db, project.ProjectID)
	if err != nil {
		log.Printf("chat: neglected stakeholder lookup failed: %v", err)
	}
	plans, err := db.ListCommPlansByProject(s.db, project.ProjectID)
	if err != nil {
		log.Printf("chat: neglected plan lookup failed: %v", err)
	}

	overdue := metrics.Overdue(stakeholders, plans, time.Now())
	if len(overdue) == 0 {
		return ChatResponse{Content: "Nobody is overdue: every stakeholder with a communication plan has been contacted within their expected interval."}
	}

	results := make([]map[string]any, len(overdue))
	var b strings.Builder
	fmt.Fprintf(&b, "%d stakeholder(s) are overdue for contact:\n", len(overdue))
	for i, o := range overdue {
		if o.NeverContacted {
			fmt.Fprintf(&b, "- %s (%s plan): never contacted\n", o.Name, o.Frequency)
		} else {
			fmt.Fprintf(&b, "- %s (%s plan): last contact %d days ago\n", o.Name, o.Frequency, o.DaysSinceContact)
		}
		results[i] = map[string]any{
			"name":               o.Name,
			"frequency":          o.Frequency,
			"days_since_contact": o.DaysSinceContact,
			"never_contacted":    o.NeverContacted,
		}
	}
	return ChatResponse{Content: b.String(), Results: results}
}

// buildPrompt combines project context, domain vocabulary, and serialized
// query rows into one generation prompt.
func buildPrompt(question string, project ProjectContext, results []map[string]any) string {
	var b strings.Builder
	b.WriteString("You are an assistant for a stakeholder-management tool used by program managers.\n")
	b.WriteString("Vocabulary: RACI roles are R=Responsible, A=Accountable, C=Consulted, I=Informed. ")
	b.WriteString("Influence levels: high, medium, low. Support levels: champion, supporter, neutral, resistant. ")
	b.WriteString("Communication channels: email, slack, jira, briefing, meeting, other. ")
	b.WriteString("Frequencies: daily, weekly, biweekly, monthly, quarterly, as-needed.\n\n")
	fmt.Fprintf(&b, "Current project: %q (%d stakeholders, %d workstreams).\n\n", project.ProjectName, project.StakeholderCount, project.WorkstreamCount)

	if len(results) > 0 {
		b.WriteString("Query results for the user's question:\n")
		if data, err := json.MarshalIndent(results, "", "  "); err == nil {
			b.Write(data)
		}
		b.WriteString("\n\nAnswer the question using only these results. Be concise.\n\n")
	} else {
		b.WriteString("No stored data matched the question; answer from general stakeholder-management knowledge and say so.\n\n")
	}
	fmt.Fprintf(&b, "Question: %s", question)
	return b.String()
}

// fallbackContent renders query rows as bullet text when the model is
// unreachable, keyed by intent type.
func fallbackContent(intent Intent, results []map[string]any) string {
	var b strings.Builder
	switch intent.Type {
	case IntentRACI:
		fmt.Fprintf(&b, "%d stakeholder(s) with the %s role:\n", len(results), models.RACILabel(strings.ToUpper(intent.Filters["role"])))
		for _, row := range results {
			fmt.Fprintf(&b, "- %s (%s) — %s for %s\n", str(row, "name"), orUnknown(str(row, "job_title")), models.RACILabel(str(row, "role")), str(row, "workstream"))
		}
	case IntentCommunication:
		fmt.Fprintf(&b, "%d stakeholder(s) on that communication cadence:\n", len(results))
		for _, row := range results {
			fmt.Fprintf(&b, "- %s <%s> — %s, %s\n", str(row, "name"), orUnknown(str(row, "email")), str(row, "channel"), str(row, "frequency"))
		}
	case IntentInfluence:
		fmt.Fprintf(&b, "%d matching stakeholder(s):\n", len(results))
		for _, row := range results {
			fmt.Fprintf(&b, "- %s (%s, %s) — influence: %s, support: %s\n",
				str(row, "name"), orUnknown(str(row, "job_title")), orUnknown(str(row, "department")),
				str(row, "influence_level"), str(row, "support_level"))
		}
	case IntentDepartment:
		fmt.Fprintf(&b, "%d stakeholder(s) in that department:\n", len(results))
		for _, row := range results {
			fmt.Fprintf(&b, "- %s (%s), %s\n", str(row, "name"), orUnknown(str(row, "job_title")), str(row, "department"))
		}
	default:
		fmt.Fprintf(&b, "%d result(s):\n", len(results))
		for _, row := range results {
			var parts []string
			for k, v := range row {
				parts = append(parts, fmt.Sprintf("%s: %v", k, v))
			}
			fmt.Fprintf(&b, "- %s\n", strings.Join(parts, ", "))
		}
	}
	return b.String()
}

// renderBrief is the deterministic meeting brief used when generation fails.
func renderBrief(target *models.AssignedStakeholder, raci []models.RACIRow, engagements []models.EngagementLog, history []models.StakeholderHistory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Meeting brief: %s\n", target.Name)
	fmt.Fprintf(&b, "- Role: %s, %s\n", orUnknown(target.JobTitle), orUnknown(target.Department))
	fmt.Fprintf(&b, "- Influence: %s, support: %s\n", target.InfluenceLevel, target.SupportLevel)
	if target.ProjectFunction != "" {
		fmt.Fprintf(&b, "- Project function: %s\n", target.ProjectFunction)
	}
	if target.Notes != "" {
		fmt.Fprintf(&b, "- Notes: %s\n", target.Notes)
	}
	if len(raci) > 0 {
		b.WriteString("RACI:\n")
		for _, r := range raci {
			fmt.Fprintf(&b, "- %s for %s\n", models.RACILabel(r.Role), r.WorkstreamName)
		}
	}
	if len(engagements) > 0 {
		b.WriteString("Recent engagements:\n")
		for _, e := range engagements {
			fmt.Fprintf(&b, "- %s %s (%s): %s\n", e.Date.Format("2006-01-02"), e.Type, e.Sentiment, e.Summary)
		}
	}
	if len(history) > 0 {
		b.WriteString("Recent changes:\n")
		for _, h := range history {
			fmt.Fprintf(&b, "- %s: %s %s → %s\n", h.ChangedAt.Format("2006-01-02"), h.Field, h.OldValue, h.NewValue)
		}
	}
	return b.String()
}

func briefResults(target *models.AssignedStakeholder, raci []models.RACIRow, engagements []models.EngagementLog, history []models.StakeholderHistory) []map[string]any {
	roles := make([]string, len(raci))
	for i, r := range raci {
		roles[i] = fmt.Sprintf("%s: %s", r.Role, r.WorkstreamName)
	}
	return []map[string]any{{
		"name":             target.Name,
		"job_title":        target.JobTitle,
		"department":       target.Department,
		"influence_level":  target.InfluenceLevel,
		"support_level":    target.SupportLevel,
		"raci_roles":       strings.Join(roles, "; "),
		"engagement_count": len(engagements),
		"history_count":    len(history),
	}}
}

func str(row map[string]any, key string) string {
	if v, ok := row[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
