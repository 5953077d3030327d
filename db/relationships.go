// ABOUTME: Stakeholder relationship database operations
// ABOUTME: Handles directed edges between stakeholders for the network graph
package db

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/harperreed/stakeholdr/models"
)

func CreateRelationship(db *sql.DB, rel *models.Relationship) error {
	rel.ID = uuid.New()
	if rel.Strength == "" {
		rel.Strength = models.StrengthModerate
	}

	_, err := db.Exec(`
		INSERT INTO relationships (id, from_stakeholder_id, to_stakeholder_id, type, strength, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rel.ID.String(), rel.FromStakeholderID.String(), rel.ToStakeholderID.String(), rel.Type, rel.Strength, rel.Notes)

	return err
}

func UpdateRelationship(db *sql.DB, rel *models.Relationship) error {
	_, err := db.Exec(`
		UPDATE relationships SET type = ?, strength = ?, notes = ? WHERE id = ?
	`, rel.Type, rel.Strength, rel.Notes, rel.ID.String())

	return err
}

func DeleteRelationship(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM relationships WHERE id = ?`, id.String())
	return err
}

// ListRelationships returns all directed edges joined with endpoint names.
func ListRelationships(db *sql.DB) ([]models.RelationshipRow, error) {
	rows, err := db.Query(`
		SELECT r.id, r.from_stakeholder_id, r.to_stakeholder_id, r.type, r.strength, r.notes,
		       s1.name, s2.name
		FROM relationships r
		JOIN stakeholders s1 ON r.from_stakeholder_id = s1.id
		JOIN stakeholders s2 ON r.to_stakeholder_id = s2.id
		ORDER BY s1.name, s2.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRelationshipRows(rows)
}

// ListRelationshipsByStakeholder returns edges touching a stakeholder in
// either direction.
func ListRelationshipsByStakeholder(db *sql.DB, stakeholderID uuid.UUID) ([]models.RelationshipRow, error) {
	rows, err := db.Query(`
		SELECT r.id, r.from_stakeholder_id, r.to_stakeholder_id, r.type, r.strength, r.notes,
		       s1.name, s2.name
		FROM relationships r
		JOIN stakeholders s1 ON r.from_stakeholder_id = s1.id
		JOIN stakeholders s2 ON r.to_stakeholder_id = s2.id
		WHERE r.from_stakeholder_id = ? OR r.to_stakeholder_id = ?
		ORDER BY s1.name, s2.name
	`, stakeholderID.String(), stakeholderID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRelationshipRows(rows)
}

func scanRelationshipRows(rows *sql.Rows) ([]models.RelationshipRow, error) {
	var rels []models.RelationshipRow
	for rows.Next() {
		var r models.RelationshipRow
		if err := rows.Scan(&r.ID, &r.FromStakeholderID, &r.ToStakeholderID, &r.Type, &r.Strength,
			&r.Notes, &r.FromName, &r.ToName); err != nil {
			return nil, err
		}
		rels = append(rels, r)
	}
	return rels, rows.Err()
}
