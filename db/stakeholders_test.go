// ABOUTME: Test suite for stakeholder database operations
// ABOUTME: Verifies CRUD, name lookups, level history, and cascade deletes
package db

import (
	"testing"

	"github.com/harperreed/stakeholdr/models"
)

func TestCreateStakeholderDefaults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	stakeholder := &models.Stakeholder{Name: "Alice Chen"}
	if err := CreateStakeholder(db, stakeholder); err != nil {
		t.Fatalf("Failed to create stakeholder: %v", err)
	}

	loaded, err := GetStakeholder(db, stakeholder.ID)
	if err != nil {
		t.Fatalf("Failed to get stakeholder: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected stakeholder, got nil")
	}
	if loaded.InfluenceLevel != models.InfluenceMedium {
		t.Errorf("Expected default influence medium, got %s", loaded.InfluenceLevel)
	}
	if loaded.SupportLevel != models.SupportNeutral {
		t.Errorf("Expected default support neutral, got %s", loaded.SupportLevel)
	}
}

func TestGetStakeholderNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	stakeholder := &models.Stakeholder{Name: "Alice Chen"}
	if err := CreateStakeholder(db, stakeholder); err != nil {
		t.Fatalf("Failed to create stakeholder: %v", err)
	}
	if err := DeleteStakeholder(db, stakeholder.ID); err != nil {
		t.Fatalf("Failed to delete stakeholder: %v", err)
	}

	loaded, err := GetStakeholder(db, stakeholder.ID)
	if err != nil {
		t.Fatalf("Expected nil error for missing stakeholder, got %v", err)
	}
	if loaded != nil {
		t.Error("Expected nil for missing stakeholder")
	}
}

func TestUpdateStakeholderRecordsHistory(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	stakeholder := &models.Stakeholder{
		Name:           "Alice Chen",
		InfluenceLevel: models.InfluenceMedium,
		SupportLevel:   models.SupportNeutral,
	}
	if err := CreateStakeholder(db, stakeholder); err != nil {
		t.Fatalf("Failed to create stakeholder: %v", err)
	}

	// Influence and support both change: two history rows.
	stakeholder.InfluenceLevel = models.InfluenceHigh
	stakeholder.SupportLevel = models.SupportResistant
	if err := UpdateStakeholder(db, stakeholder); err != nil {
		t.Fatalf("Failed to update stakeholder: %v", err)
	}

	history, err := ListHistoryByStakeholder(db, stakeholder.ID, 10)
	if err != nil {
		t.Fatalf("Failed to list history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 history entries, got %d", len(history))
	}

	fields := map[string]bool{}
	for _, h := range history {
		fields[h.Field] = true
		if h.Field == models.FieldInfluenceLevel {
			if h.OldValue != models.InfluenceMedium || h.NewValue != models.InfluenceHigh {
				t.Errorf("Influence history wrong: %s → %s", h.OldValue, h.NewValue)
			}
		}
	}
	if !fields[models.FieldInfluenceLevel] || !fields[models.FieldSupportLevel] {
		t.Errorf("Expected influence and support history entries, got %v", fields)
	}

	// Updating without a level change adds nothing.
	stakeholder.Notes = "met at the offsite"
	if err := UpdateStakeholder(db, stakeholder); err != nil {
		t.Fatalf("Failed to update stakeholder: %v", err)
	}
	history, err = ListHistoryByStakeholder(db, stakeholder.ID, 10)
	if err != nil {
		t.Fatalf("Failed to list history: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("Expected history unchanged at 2 entries, got %d", len(history))
	}
}

func TestFindProjectStakeholderByName(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	project, _, _ := seedAssignment(t, db, "Migration", "Dana Torres")

	// A second matching stakeholder sorts after "Dana" lexicographically.
	second := &models.Stakeholder{Name: "Jordana Lee"}
	if err := CreateStakeholder(db, second); err != nil {
		t.Fatalf("Failed to create stakeholder: %v", err)
	}
	if err := AssignStakeholder(db, &models.ProjectStakeholder{ProjectID: project.ID, StakeholderID: second.ID}); err != nil {
		t.Fatalf("Failed to assign stakeholder: %v", err)
	}

	found, err := FindProjectStakeholderByName(db, project.ID, "dana")
	if err != nil {
		t.Fatalf("FindProjectStakeholderByName failed: %v", err)
	}
	if found == nil {
		t.Fatal("Expected a match, got nil")
	}
	if found.Name != "Dana Torres" {
		t.Errorf("Expected lexicographic first match Dana Torres, got %s", found.Name)
	}

	missing, err := FindProjectStakeholderByName(db, project.ID, "nobody")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for no match")
	}
}

func TestFindStakeholdersDisjunctive(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	stakeholders := []*models.Stakeholder{
		{Name: "Alice Chen", Department: "Engineering"},
		{Name: "Bob Singh", Department: "Finance"},
		{Name: "Carol Diaz", SupportLevel: models.SupportResistant},
	}
	for _, s := range stakeholders {
		if err := CreateStakeholder(db, s); err != nil {
			t.Fatalf("Failed to create stakeholder: %v", err)
		}
	}

	// Match by department fragment.
	byDept, err := FindStakeholders(db, "engineer", 10)
	if err != nil {
		t.Fatalf("FindStakeholders failed: %v", err)
	}
	if len(byDept) != 1 || byDept[0].Name != "Alice Chen" {
		t.Errorf("Expected Alice Chen by department, got %v", byDept)
	}

	// Match by support level.
	bySupport, err := FindStakeholders(db, "resistant", 10)
	if err != nil {
		t.Fatalf("FindStakeholders failed: %v", err)
	}
	if len(bySupport) != 1 || bySupport[0].Name != "Carol Diaz" {
		t.Errorf("Expected Carol Diaz by support level, got %v", bySupport)
	}
}

func TestDeleteStakeholderCascades(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	project, stakeholder, assignment := seedAssignment(t, db, "Migration", "Alice Chen")

	ws := &models.Workstream{ProjectID: project.ID, Name: "Design"}
	if err := CreateWorkstream(db, ws); err != nil {
		t.Fatalf("Failed to create workstream: %v", err)
	}
	if err := SetRACIRole(db, assignment.ID, ws.ID, models.RoleResponsible); err != nil {
		t.Fatalf("Failed to set RACI role: %v", err)
	}
	if err := SetCommPlan(db, &models.CommunicationPlan{ProjectStakeholderID: assignment.ID}); err != nil {
		t.Fatalf("Failed to set comm plan: %v", err)
	}

	if err := DeleteStakeholder(db, stakeholder.ID); err != nil {
		t.Fatalf("Failed to delete stakeholder: %v", err)
	}

	counts := map[string]string{
		"project_stakeholders": "SELECT COUNT(*) FROM project_stakeholders",
		"raci_assignments":     "SELECT COUNT(*) FROM raci_assignments",
		"comm_plans":           "SELECT COUNT(*) FROM comm_plans",
	}
	for table, query := range counts {
		var count int
		if err := db.QueryRow(query).Scan(&count); err != nil {
			t.Fatalf("Failed to count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("Expected %s to be empty after cascade, got %d rows", table, count)
		}
	}

	// The project itself survives.
	loaded, err := GetProject(db, project.ID)
	if err != nil {
		t.Fatalf("Failed to get project: %v", err)
	}
	if loaded == nil {
		t.Error("Project should survive stakeholder deletion")
	}
}
