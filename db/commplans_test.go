// ABOUTME: Test suite for communication plan operations
// ABOUTME: Verifies upsert semantics, defaults, and last-contact preservation
package db

import (
	"testing"
	"time"

	"github.com/harperreed/stakeholdr/models"
)

func TestSetCommPlanDefaults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, _, assignment := seedAssignment(t, db, "Migration", "Alice Chen")

	if err := SetCommPlan(db, &models.CommunicationPlan{ProjectStakeholderID: assignment.ID}); err != nil {
		t.Fatalf("Failed to set comm plan: %v", err)
	}

	plan, err := GetCommPlan(db, assignment.ID)
	if err != nil {
		t.Fatalf("Failed to get comm plan: %v", err)
	}
	if plan == nil {
		t.Fatal("Expected comm plan, got nil")
	}
	if plan.Channel != models.ChannelEmail {
		t.Errorf("Expected default channel email, got %s", plan.Channel)
	}
	if plan.Frequency != models.FrequencyWeekly {
		t.Errorf("Expected default frequency weekly, got %s", plan.Frequency)
	}
}

func TestSetCommPlanPreservesLastContact(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, _, assignment := seedAssignment(t, db, "Migration", "Alice Chen")

	if err := SetCommPlan(db, &models.CommunicationPlan{
		ProjectStakeholderID: assignment.ID,
		Channel:              models.ChannelSlack,
		Frequency:            models.FrequencyWeekly,
	}); err != nil {
		t.Fatalf("Failed to set comm plan: %v", err)
	}

	contact := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	if err := UpdateLastContact(db, assignment.ID, contact); err != nil {
		t.Fatalf("Failed to update last contact: %v", err)
	}

	// Re-setting the plan changes cadence but never clears the contact date.
	if err := SetCommPlan(db, &models.CommunicationPlan{
		ProjectStakeholderID: assignment.ID,
		Channel:              models.ChannelEmail,
		Frequency:            models.FrequencyMonthly,
	}); err != nil {
		t.Fatalf("Failed to re-set comm plan: %v", err)
	}

	plan, err := GetCommPlan(db, assignment.ID)
	if err != nil {
		t.Fatalf("Failed to get comm plan: %v", err)
	}
	if plan.Frequency != models.FrequencyMonthly {
		t.Errorf("Expected frequency monthly after re-set, got %s", plan.Frequency)
	}
	if plan.LastContactDate == nil {
		t.Fatal("Last contact date lost on plan re-set")
	}
	if !plan.LastContactDate.Equal(contact) {
		t.Errorf("Expected last contact %v, got %v", contact, plan.LastContactDate)
	}

	// One plan row per assignment.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM comm_plans WHERE project_stakeholder_id = ?", assignment.ID.String()).Scan(&count); err != nil {
		t.Fatalf("Failed to count comm plans: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 comm plan row after upsert, got %d", count)
	}
}

func TestListCommPlansByProject(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	project, _, assignment := seedAssignment(t, db, "Migration", "Alice Chen")
	if err := SetCommPlan(db, &models.CommunicationPlan{ProjectStakeholderID: assignment.ID}); err != nil {
		t.Fatalf("Failed to set comm plan: %v", err)
	}

	rows, err := ListCommPlansByProject(db, project.ID)
	if err != nil {
		t.Fatalf("Failed to list comm plans: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 comm plan row, got %d", len(rows))
	}
	if rows[0].StakeholderName != "Alice Chen" {
		t.Errorf("Expected joined stakeholder name, got %s", rows[0].StakeholderName)
	}
}
