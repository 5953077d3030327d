// ABOUTME: Test suite for RACI assignment operations
// ABOUTME: Verifies idempotent upsert, joined listings, and workstream cleanup
package db

import (
	"testing"

	"github.com/harperreed/stakeholdr/models"
)

func TestSetRACIRoleUpsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	project, _, assignment := seedAssignment(t, db, "Migration", "Alice Chen")
	ws := &models.Workstream{ProjectID: project.ID, Name: "Design"}
	if err := CreateWorkstream(db, ws); err != nil {
		t.Fatalf("Failed to create workstream: %v", err)
	}

	if err := SetRACIRole(db, assignment.ID, ws.ID, models.RoleResponsible); err != nil {
		t.Fatalf("Failed to set RACI role: %v", err)
	}
	// Same pair again with a different role overwrites, never duplicates.
	if err := SetRACIRole(db, assignment.ID, ws.ID, models.RoleAccountable); err != nil {
		t.Fatalf("Failed to overwrite RACI role: %v", err)
	}

	rows, err := ListRACIByAssignment(db, assignment.ID)
	if err != nil {
		t.Fatalf("Failed to list RACI rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 RACI row after upsert, got %d", len(rows))
	}
	if rows[0].Role != models.RoleAccountable {
		t.Errorf("Expected role A after overwrite, got %s", rows[0].Role)
	}
	if rows[0].WorkstreamName != "Design" {
		t.Errorf("Expected joined workstream name Design, got %s", rows[0].WorkstreamName)
	}
}

func TestRemoveRACIRole(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	project, _, assignment := seedAssignment(t, db, "Migration", "Alice Chen")
	ws := &models.Workstream{ProjectID: project.ID, Name: "Design"}
	if err := CreateWorkstream(db, ws); err != nil {
		t.Fatalf("Failed to create workstream: %v", err)
	}
	if err := SetRACIRole(db, assignment.ID, ws.ID, models.RoleConsulted); err != nil {
		t.Fatalf("Failed to set RACI role: %v", err)
	}

	if err := RemoveRACIRole(db, assignment.ID, ws.ID); err != nil {
		t.Fatalf("Failed to remove RACI role: %v", err)
	}

	rows, err := ListRACIByAssignment(db, assignment.ID)
	if err != nil {
		t.Fatalf("Failed to list RACI rows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no RACI rows after removal, got %d", len(rows))
	}
}

func TestListRACIByProject(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	project, _, assignment := seedAssignment(t, db, "Migration", "Alice Chen")

	other := &models.Stakeholder{Name: "Bob Singh"}
	if err := CreateStakeholder(db, other); err != nil {
		t.Fatalf("Failed to create stakeholder: %v", err)
	}
	otherAssignment := &models.ProjectStakeholder{ProjectID: project.ID, StakeholderID: other.ID}
	if err := AssignStakeholder(db, otherAssignment); err != nil {
		t.Fatalf("Failed to assign stakeholder: %v", err)
	}

	design := &models.Workstream{ProjectID: project.ID, Name: "Design"}
	rollout := &models.Workstream{ProjectID: project.ID, Name: "Rollout"}
	for _, ws := range []*models.Workstream{design, rollout} {
		if err := CreateWorkstream(db, ws); err != nil {
			t.Fatalf("Failed to create workstream: %v", err)
		}
	}

	if err := SetRACIRole(db, assignment.ID, design.ID, models.RoleAccountable); err != nil {
		t.Fatalf("Failed to set RACI role: %v", err)
	}
	if err := SetRACIRole(db, otherAssignment.ID, rollout.ID, models.RoleInformed); err != nil {
		t.Fatalf("Failed to set RACI role: %v", err)
	}

	rows, err := ListRACIByProject(db, project.ID)
	if err != nil {
		t.Fatalf("Failed to list project RACI: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 RACI rows, got %d", len(rows))
	}
	names := map[string]string{}
	for _, row := range rows {
		names[row.StakeholderName] = row.Role
	}
	if names["Alice Chen"] != models.RoleAccountable {
		t.Errorf("Expected Alice Chen accountable, got %q", names["Alice Chen"])
	}
	if names["Bob Singh"] != models.RoleInformed {
		t.Errorf("Expected Bob Singh informed, got %q", names["Bob Singh"])
	}
}

func TestDeleteWorkstreamRemovesRACI(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	project, _, assignment := seedAssignment(t, db, "Migration", "Alice Chen")
	ws := &models.Workstream{ProjectID: project.ID, Name: "Design"}
	if err := CreateWorkstream(db, ws); err != nil {
		t.Fatalf("Failed to create workstream: %v", err)
	}
	if err := SetRACIRole(db, assignment.ID, ws.ID, models.RoleResponsible); err != nil {
		t.Fatalf("Failed to set RACI role: %v", err)
	}

	if err := DeleteWorkstream(db, ws.ID); err != nil {
		t.Fatalf("Failed to delete workstream: %v", err)
	}

	rows, err := ListRACIByAssignment(db, assignment.ID)
	if err != nil {
		t.Fatalf("Failed to list RACI rows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected RACI rows removed with workstream, got %d", len(rows))
	}
}
