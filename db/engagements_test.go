// ABOUTME: Test suite for engagement log operations
// ABOUTME: Verifies last-contact advancement, ordering, and defaults
package db

import (
	"testing"
	"time"

	"github.com/harperreed/stakeholdr/models"
)

func TestAddEngagementLogUpdatesLastContact(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, _, assignment := seedAssignment(t, db, "Migration", "Alice Chen")
	if err := SetCommPlan(db, &models.CommunicationPlan{ProjectStakeholderID: assignment.ID}); err != nil {
		t.Fatalf("Failed to set comm plan: %v", err)
	}

	logDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	entry := &models.EngagementLog{
		ProjectStakeholderID: assignment.ID,
		Date:                 logDate,
		Type:                 models.EngagementMeeting,
		Summary:              "Kickoff sync",
	}
	if err := AddEngagementLog(db, entry); err != nil {
		t.Fatalf("Failed to add engagement log: %v", err)
	}

	plan, err := GetCommPlan(db, assignment.ID)
	if err != nil {
		t.Fatalf("Failed to get comm plan: %v", err)
	}
	if plan == nil {
		t.Fatal("Expected comm plan, got nil")
	}
	if plan.LastContactDate == nil {
		t.Fatal("Expected last contact date set after logging")
	}
	if !plan.LastContactDate.Equal(logDate) {
		t.Errorf("Expected last contact %v, got %v", logDate, plan.LastContactDate)
	}
}

func TestAddEngagementLogDefaults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, _, assignment := seedAssignment(t, db, "Migration", "Alice Chen")

	entry := &models.EngagementLog{
		ProjectStakeholderID: assignment.ID,
		Date:                 time.Now(),
		Type:                 models.EngagementNote,
	}
	if err := AddEngagementLog(db, entry); err != nil {
		t.Fatalf("Failed to add engagement log: %v", err)
	}

	logs, err := ListEngagementsByAssignment(db, assignment.ID, 10)
	if err != nil {
		t.Fatalf("Failed to list engagements: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(logs))
	}
	if logs[0].Sentiment != models.SentimentNeutral {
		t.Errorf("Expected default sentiment neutral, got %s", logs[0].Sentiment)
	}
}

func TestUpdateAndDeleteEngagementLog(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, _, assignment := seedAssignment(t, db, "Migration", "Alice Chen")

	entry := &models.EngagementLog{
		ProjectStakeholderID: assignment.ID,
		Date:                 time.Now(),
		Type:                 models.EngagementNote,
		Summary:              "quick hallway chat",
	}
	if err := AddEngagementLog(db, entry); err != nil {
		t.Fatalf("Failed to add engagement log: %v", err)
	}

	entry.Type = models.EngagementMeeting
	entry.Summary = "turned into a full sync"
	entry.Sentiment = models.SentimentPositive
	if err := UpdateEngagementLog(db, entry); err != nil {
		t.Fatalf("Failed to update engagement log: %v", err)
	}

	logs, err := ListEngagementsByAssignment(db, assignment.ID, 10)
	if err != nil {
		t.Fatalf("Failed to list engagements: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(logs))
	}
	if logs[0].Type != models.EngagementMeeting || logs[0].Sentiment != models.SentimentPositive {
		t.Errorf("Update not applied: %+v", logs[0])
	}

	if err := DeleteEngagementLog(db, entry.ID); err != nil {
		t.Fatalf("Failed to delete engagement log: %v", err)
	}
	logs, err = ListEngagementsByAssignment(db, assignment.ID, 10)
	if err != nil {
		t.Fatalf("Failed to list engagements: %v", err)
	}
	if len(logs) != 0 {
		t.Errorf("Expected no entries after delete, got %d", len(logs))
	}
}

func TestListEngagementsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, _, assignment := seedAssignment(t, db, "Migration", "Alice Chen")

	dates := []time.Time{
		time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range dates {
		entry := &models.EngagementLog{
			ProjectStakeholderID: assignment.ID,
			Date:                 d,
			Type:                 models.EngagementEmail,
			Summary:              "check-in",
		}
		if err := AddEngagementLog(db, entry); err != nil {
			t.Fatalf("Failed to add log %d: %v", i, err)
		}
	}

	logs, err := ListEngagementsByAssignment(db, assignment.ID, 10)
	if err != nil {
		t.Fatalf("Failed to list engagements: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("Expected 3 log entries, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].Date.After(logs[i-1].Date) {
			t.Errorf("Expected newest first, got %v before %v", logs[i-1].Date, logs[i].Date)
		}
	}

	// Limit caps the result set.
	capped, err := ListEngagementsByAssignment(db, assignment.ID, 2)
	if err != nil {
		t.Fatalf("Failed to list engagements: %v", err)
	}
	if len(capped) != 2 {
		t.Errorf("Expected limit of 2 entries, got %d", len(capped))
	}
}
