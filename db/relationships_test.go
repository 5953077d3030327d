// ABOUTME: Test suite for stakeholder relationship operations
// ABOUTME: Verifies creation, joined listings, and per-stakeholder filtering
package db

import (
	"testing"

	"github.com/harperreed/stakeholdr/models"
)

func TestListRelationshipsByStakeholder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	alice := &models.Stakeholder{Name: "Alice Chen"}
	bob := &models.Stakeholder{Name: "Bob Singh"}
	carol := &models.Stakeholder{Name: "Carol Diaz"}
	for _, s := range []*models.Stakeholder{alice, bob, carol} {
		if err := CreateStakeholder(db, s); err != nil {
			t.Fatalf("Failed to create stakeholder: %v", err)
		}
	}

	if err := CreateRelationship(db, &models.Relationship{
		FromStakeholderID: bob.ID,
		ToStakeholderID:   alice.ID,
		Type:              models.RelationReportsTo,
		Strength:          models.StrengthStrong,
	}); err != nil {
		t.Fatalf("Failed to create relationship: %v", err)
	}
	if err := CreateRelationship(db, &models.Relationship{
		FromStakeholderID: bob.ID,
		ToStakeholderID:   carol.ID,
		Type:              models.RelationAlliedWith,
		Strength:          models.StrengthModerate,
	}); err != nil {
		t.Fatalf("Failed to create relationship: %v", err)
	}

	all, err := ListRelationships(db)
	if err != nil {
		t.Fatalf("Failed to list relationships: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 relationships, got %d", len(all))
	}

	// Alice appears in exactly one relationship, on the receiving end.
	forAlice, err := ListRelationshipsByStakeholder(db, alice.ID)
	if err != nil {
		t.Fatalf("Failed to list by stakeholder: %v", err)
	}
	if len(forAlice) != 1 {
		t.Fatalf("Expected 1 relationship for Alice, got %d", len(forAlice))
	}
	if forAlice[0].FromName != "Bob Singh" || forAlice[0].ToName != "Alice Chen" {
		t.Errorf("Expected Bob reports_to Alice, got %s -> %s", forAlice[0].FromName, forAlice[0].ToName)
	}
	if forAlice[0].Type != models.RelationReportsTo {
		t.Errorf("Expected reports_to, got %s", forAlice[0].Type)
	}
}

func TestUpdateRelationship(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	alice := &models.Stakeholder{Name: "Alice Chen"}
	bob := &models.Stakeholder{Name: "Bob Singh"}
	for _, s := range []*models.Stakeholder{alice, bob} {
		if err := CreateStakeholder(db, s); err != nil {
			t.Fatalf("Failed to create stakeholder: %v", err)
		}
	}

	rel := &models.Relationship{
		FromStakeholderID: alice.ID,
		ToStakeholderID:   bob.ID,
		Type:              models.RelationAlliedWith,
		Strength:          models.StrengthModerate,
	}
	if err := CreateRelationship(db, rel); err != nil {
		t.Fatalf("Failed to create relationship: %v", err)
	}

	rel.Type = models.RelationConflictsWith
	rel.Strength = models.StrengthStrong
	if err := UpdateRelationship(db, rel); err != nil {
		t.Fatalf("Failed to update relationship: %v", err)
	}

	all, err := ListRelationships(db)
	if err != nil {
		t.Fatalf("Failed to list relationships: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 relationship, got %d", len(all))
	}
	if all[0].Type != models.RelationConflictsWith || all[0].Strength != models.StrengthStrong {
		t.Errorf("Update not applied: type=%s strength=%s", all[0].Type, all[0].Strength)
	}
}

func TestDeleteRelationship(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	alice := &models.Stakeholder{Name: "Alice Chen"}
	bob := &models.Stakeholder{Name: "Bob Singh"}
	for _, s := range []*models.Stakeholder{alice, bob} {
		if err := CreateStakeholder(db, s); err != nil {
			t.Fatalf("Failed to create stakeholder: %v", err)
		}
	}

	rel := &models.Relationship{
		FromStakeholderID: alice.ID,
		ToStakeholderID:   bob.ID,
		Type:              models.RelationInfluences,
		Strength:          models.StrengthWeak,
	}
	if err := CreateRelationship(db, rel); err != nil {
		t.Fatalf("Failed to create relationship: %v", err)
	}

	if err := DeleteRelationship(db, rel.ID); err != nil {
		t.Fatalf("Failed to delete relationship: %v", err)
	}

	all, err := ListRelationships(db)
	if err != nil {
		t.Fatalf("Failed to list relationships: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("Expected no relationships after delete, got %d", len(all))
	}
}
