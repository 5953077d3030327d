// ABOUTME: Test suite for MCP tool handlers
// ABOUTME: Verifies upsert, RACI validation, engagement logging, and gaps
package handlers

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/models"
)

func setupHandlerDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	database.SetMaxOpenConns(1)
	if err := db.InitSchema(database); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	return database
}

func seedHandlerProject(t *testing.T, database *sql.DB, name string) *models.Project {
	t.Helper()
	project := &models.Project{Name: name}
	if err := db.CreateProject(database, project); err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	return project
}

func TestManageStakeholderCreateAndAssign(t *testing.T) {
	database := setupHandlerDB(t)
	defer database.Close()
	seedHandlerProject(t, database, "Migration")

	h := NewStakeholderHandlers(database)
	_, out, err := h.ManageStakeholder(context.Background(), nil, ManageStakeholderInput{
		Name:           "Alice Chen",
		JobTitle:       "VP Engineering",
		InfluenceLevel: models.InfluenceHigh,
		SupportLevel:   models.SupportChampion,
		Project:        "Migration",
		Function:       "Sponsor",
	})
	if err != nil {
		t.Fatalf("ManageStakeholder failed: %v", err)
	}
	if !out.Created {
		t.Error("Expected created=true for a new stakeholder")
	}
	if !out.Assigned {
		t.Error("Expected assigned=true for a new assignment")
	}
	if out.Stakeholder.InfluenceLevel != models.InfluenceHigh {
		t.Errorf("Expected high influence, got %s", out.Stakeholder.InfluenceLevel)
	}
}

func TestManageStakeholderUpsertByName(t *testing.T) {
	database := setupHandlerDB(t)
	defer database.Close()

	h := NewStakeholderHandlers(database)
	if _, _, err := h.ManageStakeholder(context.Background(), nil, ManageStakeholderInput{
		Name:         "Alice Chen",
		SupportLevel: models.SupportNeutral,
	}); err != nil {
		t.Fatalf("First ManageStakeholder failed: %v", err)
	}

	_, out, err := h.ManageStakeholder(context.Background(), nil, ManageStakeholderInput{
		Name:         "Alice Chen",
		SupportLevel: models.SupportChampion,
	})
	if err != nil {
		t.Fatalf("Second ManageStakeholder failed: %v", err)
	}
	if out.Created {
		t.Error("Expected update, not create, for an existing name")
	}

	var people int
	if err := database.QueryRow("SELECT COUNT(*) FROM stakeholders").Scan(&people); err != nil {
		t.Fatalf("Failed to count stakeholders: %v", err)
	}
	if people != 1 {
		t.Errorf("Expected 1 stakeholder after upsert, got %d", people)
	}

	// The support change went through the history log.
	stakeholders, err := db.FindStakeholders(database, "alice", 1)
	if err != nil || len(stakeholders) != 1 {
		t.Fatalf("Failed to find stakeholder: %v", err)
	}
	history, err := db.ListHistoryByStakeholder(database, stakeholders[0].ID, 10)
	if err != nil {
		t.Fatalf("Failed to list history: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("Expected 1 history entry for the support change, got %d", len(history))
	}
}

func TestManageStakeholderRequiresName(t *testing.T) {
	database := setupHandlerDB(t)
	defer database.Close()

	h := NewStakeholderHandlers(database)
	if _, _, err := h.ManageStakeholder(context.Background(), nil, ManageStakeholderInput{}); err == nil {
		t.Error("Expected error for missing name")
	}
}

func TestSetRACIValidatesRole(t *testing.T) {
	database := setupHandlerDB(t)
	defer database.Close()

	h := NewRACIHandlers(database)
	if _, _, err := h.SetRACI(context.Background(), nil, SetRACIInput{
		Project: "Migration", Stakeholder: "Alice", Workstream: "Design", Role: "X",
	}); err == nil {
		t.Error("Expected error for invalid role")
	}
}

func TestSetRACILowercaseRole(t *testing.T) {
	database := setupHandlerDB(t)
	defer database.Close()
	project := seedHandlerProject(t, database, "Migration")

	s := &models.Stakeholder{Name: "Alice Chen"}
	if err := db.CreateStakeholder(database, s); err != nil {
		t.Fatalf("Failed to create stakeholder: %v", err)
	}
	if err := db.AssignStakeholder(database, &models.ProjectStakeholder{ProjectID: project.ID, StakeholderID: s.ID}); err != nil {
		t.Fatalf("Failed to assign stakeholder: %v", err)
	}
	if err := db.CreateWorkstream(database, &models.Workstream{ProjectID: project.ID, Name: "Design"}); err != nil {
		t.Fatalf("Failed to create workstream: %v", err)
	}

	h := NewRACIHandlers(database)
	_, out, err := h.SetRACI(context.Background(), nil, SetRACIInput{
		Project: "Migration", Stakeholder: "alice", Workstream: "Design", Role: "a",
	})
	if err != nil {
		t.Fatalf("SetRACI failed: %v", err)
	}
	if out.Role != models.RoleAccountable {
		t.Errorf("Expected role uppercased to A, got %s", out.Role)
	}
	if out.Stakeholder != "Alice Chen" {
		t.Errorf("Expected resolved stakeholder name, got %s", out.Stakeholder)
	}
}

func TestSetRACIMissingWorkstream(t *testing.T) {
	database := setupHandlerDB(t)
	defer database.Close()
	project := seedHandlerProject(t, database, "Migration")

	s := &models.Stakeholder{Name: "Alice Chen"}
	if err := db.CreateStakeholder(database, s); err != nil {
		t.Fatalf("Failed to create stakeholder: %v", err)
	}
	if err := db.AssignStakeholder(database, &models.ProjectStakeholder{ProjectID: project.ID, StakeholderID: s.ID}); err != nil {
		t.Fatalf("Failed to assign stakeholder: %v", err)
	}

	h := NewRACIHandlers(database)
	if _, _, err := h.SetRACI(context.Background(), nil, SetRACIInput{
		Project: "Migration", Stakeholder: "alice", Workstream: "Nope", Role: "R",
	}); err == nil {
		t.Error("Expected error for missing workstream")
	}
}

func TestRACIGaps(t *testing.T) {
	database := setupHandlerDB(t)
	defer database.Close()
	project := seedHandlerProject(t, database, "Migration")

	if err := db.CreateWorkstream(database, &models.Workstream{ProjectID: project.ID, Name: "Design"}); err != nil {
		t.Fatalf("Failed to create workstream: %v", err)
	}

	h := NewRACIHandlers(database)
	_, out, err := h.RACIGaps(context.Background(), nil, RACIGapsInput{Project: "Migration"})
	if err != nil {
		t.Fatalf("RACIGaps failed: %v", err)
	}
	if len(out.Gaps) != 2 {
		t.Fatalf("Expected 2 gaps for an empty workstream, got %d", len(out.Gaps))
	}
	roles := map[string]bool{}
	for _, g := range out.Gaps {
		if g.Workstream != "Design" {
			t.Errorf("Expected Design workstream, got %s", g.Workstream)
		}
		roles[g.MissingRole] = true
	}
	if !roles["Responsible"] || !roles["Accountable"] {
		t.Errorf("Expected Responsible and Accountable gaps, got %v", roles)
	}
}

func TestLogEngagementUpdatesLastContact(t *testing.T) {
	database := setupHandlerDB(t)
	defer database.Close()
	project := seedHandlerProject(t, database, "Migration")

	s := &models.Stakeholder{Name: "Alice Chen"}
	if err := db.CreateStakeholder(database, s); err != nil {
		t.Fatalf("Failed to create stakeholder: %v", err)
	}
	assignment := &models.ProjectStakeholder{ProjectID: project.ID, StakeholderID: s.ID}
	if err := db.AssignStakeholder(database, assignment); err != nil {
		t.Fatalf("Failed to assign stakeholder: %v", err)
	}
	if err := db.SetCommPlan(database, &models.CommunicationPlan{ProjectStakeholderID: assignment.ID}); err != nil {
		t.Fatalf("Failed to set comm plan: %v", err)
	}

	h := NewEngagementHandlers(database)
	date := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	_, out, err := h.LogEngagement(context.Background(), nil, LogEngagementInput{
		Project:     "Migration",
		Stakeholder: "alice",
		Type:        models.EngagementMeeting,
		Summary:     "Roadmap review",
		Date:        date.Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("LogEngagement failed: %v", err)
	}
	if out.Sentiment != models.SentimentNeutral {
		t.Errorf("Expected default neutral sentiment, got %s", out.Sentiment)
	}

	plan, err := db.GetCommPlan(database, assignment.ID)
	if err != nil {
		t.Fatalf("Failed to get comm plan: %v", err)
	}
	if plan.LastContactDate == nil || !plan.LastContactDate.Equal(date) {
		t.Errorf("Expected last contact %v, got %v", date, plan.LastContactDate)
	}
}

func TestLogEngagementRejectsBadDate(t *testing.T) {
	database := setupHandlerDB(t)
	defer database.Close()
	project := seedHandlerProject(t, database, "Migration")

	s := &models.Stakeholder{Name: "Alice Chen"}
	if err := db.CreateStakeholder(database, s); err != nil {
		t.Fatalf("Failed to create stakeholder: %v", err)
	}
	if err := db.AssignStakeholder(database, &models.ProjectStakeholder{ProjectID: project.ID, StakeholderID: s.ID}); err != nil {
		t.Fatalf("Failed to assign stakeholder: %v", err)
	}

	h := NewEngagementHandlers(database)
	if _, _, err := h.LogEngagement(context.Background(), nil, LogEngagementInput{
		Project:     "Migration",
		Stakeholder: "alice",
		Date:        "June 1st",
	}); err == nil {
		t.Error("Expected error for a non-RFC3339 date")
	}
}

func TestQueryStakeholdersDefaultLimit(t *testing.T) {
	database := setupHandlerDB(t)
	defer database.Close()

	for _, name := range []string{"Alice Chen", "Bob Singh"} {
		if err := db.CreateStakeholder(database, &models.Stakeholder{Name: name, Department: "Engineering"}); err != nil {
			t.Fatalf("Failed to create stakeholder: %v", err)
		}
	}

	h := NewStakeholderHandlers(database)
	_, out, err := h.QueryStakeholders(context.Background(), nil, QueryStakeholdersInput{Query: "engineering"})
	if err != nil {
		t.Fatalf("QueryStakeholders failed: %v", err)
	}
	if len(out.Stakeholders) != 2 {
		t.Errorf("Expected 2 matches, got %d", len(out.Stakeholders))
	}
}
