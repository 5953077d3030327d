// ABOUTME: Relationship CLI commands
// ABOUTME: Commands for recording who reports to, influences, or conflicts with whom
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/models"
)

// RelateCommand records a directed relationship between two stakeholders.
func RelateCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("relate", flag.ExitOnError)
	from := fs.String("from", "", "Source stakeholder name or fragment (required)")
	to := fs.String("to", "", "Target stakeholder name or fragment (required)")
	relType := fs.String("type", "", "Type: reports_to, influences, allied_with, or conflicts_with (required)")
	strength := fs.String("strength", models.StrengthModerate, "Strength: strong, moderate, or weak")
	notes := fs.String("notes", "", "Notes about the relationship")
	_ = fs.Parse(args)

	switch *relType {
	case models.RelationReportsTo, models.RelationInfluences, models.RelationAlliedWith, models.RelationConflictsWith:
	default:
		return fmt.Errorf("invalid type %q: must be reports_to, influences, allied_with, or conflicts_with", *relType)
	}

	fromStakeholder, err := findStakeholder(database, *from)
	if err != nil {
		return err
	}
	toStakeholder, err := findStakeholder(database, *to)
	if err != nil {
		return err
	}
	if fromStakeholder.ID == toStakeholder.ID {
		return fmt.Errorf("a stakeholder cannot relate to themselves")
	}

	rel := &models.Relationship{
		FromStakeholderID: fromStakeholder.ID,
		ToStakeholderID:   toStakeholder.ID,
		Type:              *relType,
		Strength:          *strength,
		Notes:             *notes,
	}
	if err := db.CreateRelationship(database, rel); err != nil {
		return fmt.Errorf("failed to create relationship: %w", err)
	}

	fmt.Printf("✓ %s %s %s (%s)\n", fromStakeholder.Name, *relType, toStakeholder.Name, *strength)
	return nil
}

// ListRelationshipsCommand lists relationships, optionally for one
// stakeholder.
func ListRelationshipsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-relationships", flag.ExitOnError)
	stakeholder := fs.String("stakeholder", "", "Limit to one stakeholder's relationships")
	_ = fs.Parse(args)

	var relationships []models.RelationshipRow
	var err error
	if *stakeholder != "" {
		target, findErr := findStakeholder(database, *stakeholder)
		if findErr != nil {
			return findErr
		}
		relationships, err = db.ListRelationshipsByStakeholder(database, target.ID)
	} else {
		relationships, err = db.ListRelationships(database)
	}
	if err != nil {
		return fmt.Errorf("failed to list relationships: %w", err)
	}

	if len(relationships) == 0 {
		fmt.Println("No relationships found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FROM\tTYPE\tTO\tSTRENGTH\tID")
	_, _ = fmt.Fprintln(w, "----\t----\t--\t--------\t--")
	for _, rel := range relationships {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", rel.FromName, rel.Type, rel.ToName, rel.Strength, rel.ID)
	}
	return w.Flush()
}

// DeleteRelationshipCommand removes a relationship by ID.
func DeleteRelationshipCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-relationship", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("relationship ID required")
	}

	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("invalid relationship ID: %w", err)
	}

	if err := db.DeleteRelationship(database, id); err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}

	fmt.Printf("✓ Relationship deleted: %s\n", id)
	return nil
}
