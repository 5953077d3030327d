// ABOUTME: Test suite for tag operations
// ABOUTME: Verifies tagging, untagging, and tag deletion cleanup
package db

import (
	"testing"

	"github.com/harperreed/stakeholdr/models"
)

func TestTagAndUntagStakeholder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	stakeholder := &models.Stakeholder{Name: "Alice Chen"}
	if err := CreateStakeholder(db, stakeholder); err != nil {
		t.Fatalf("Failed to create stakeholder: %v", err)
	}
	tag := &models.Tag{Name: "executive"}
	if err := CreateTag(db, tag); err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}

	if err := TagStakeholder(db, stakeholder.ID, tag.ID); err != nil {
		t.Fatalf("Failed to tag stakeholder: %v", err)
	}
	// Tagging twice is a no-op, not an error.
	if err := TagStakeholder(db, stakeholder.ID, tag.ID); err != nil {
		t.Fatalf("Re-tagging failed: %v", err)
	}

	tags, err := ListTagsByStakeholder(db, stakeholder.ID)
	if err != nil {
		t.Fatalf("Failed to list tags: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "executive" {
		t.Errorf("Expected one executive tag, got %v", tags)
	}

	if err := UntagStakeholder(db, stakeholder.ID, tag.ID); err != nil {
		t.Fatalf("Failed to untag stakeholder: %v", err)
	}
	tags, err = ListTagsByStakeholder(db, stakeholder.ID)
	if err != nil {
		t.Fatalf("Failed to list tags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("Expected no tags after untag, got %v", tags)
	}
}

func TestDeleteTagRemovesAttachments(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	stakeholder := &models.Stakeholder{Name: "Alice Chen"}
	if err := CreateStakeholder(db, stakeholder); err != nil {
		t.Fatalf("Failed to create stakeholder: %v", err)
	}
	tag := &models.Tag{Name: "executive"}
	if err := CreateTag(db, tag); err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}
	if err := TagStakeholder(db, stakeholder.ID, tag.ID); err != nil {
		t.Fatalf("Failed to tag stakeholder: %v", err)
	}

	if err := DeleteTag(db, tag.ID); err != nil {
		t.Fatalf("Failed to delete tag: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM stakeholder_tags").Scan(&count); err != nil {
		t.Fatalf("Failed to count attachments: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected attachments removed with tag, got %d", count)
	}
}

func TestUpdateTag(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tag := &models.Tag{Name: "executive", Color: "#cc0000"}
	if err := CreateTag(db, tag); err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}

	tag.Name = "leadership"
	tag.Color = "#0066cc"
	if err := UpdateTag(db, tag); err != nil {
		t.Fatalf("Failed to update tag: %v", err)
	}

	found, err := FindTagByName(db, "leadership")
	if err != nil {
		t.Fatalf("FindTagByName failed: %v", err)
	}
	if found == nil {
		t.Fatal("Expected renamed tag, got nil")
	}
	if found.Color != "#0066cc" {
		t.Errorf("Expected updated color, got %s", found.Color)
	}

	old, err := FindTagByName(db, "executive")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if old != nil {
		t.Error("Old tag name should no longer resolve")
	}
}

func TestFindTagByName(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := CreateTag(db, &models.Tag{Name: "executive"}); err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}

	found, err := FindTagByName(db, "executive")
	if err != nil {
		t.Fatalf("FindTagByName failed: %v", err)
	}
	if found == nil {
		t.Fatal("Expected tag match, got nil")
	}

	missing, err := FindTagByName(db, "nope")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for missing tag")
	}
}
