// ABOUTME: RACI assignment database operations
// ABOUTME: Handles idempotent role upserts and project-wide matrix reads
package db

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/harperreed/stakeholdr/models"
)

// SetRACIRole assigns a role for the (assignment, workstream) pair.
// Setting again overwrites the prior role; the pair never duplicates.
func SetRACIRole(db *sql.DB, projectStakeholderID, workstreamID uuid.UUID, role string) error {
	_, err := db.Exec(`
		INSERT INTO raci_assignments (id, project_stakeholder_id, workstream_id, role)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(project_stakeholder_id, workstream_id) DO UPDATE SET
			role = excluded.role
	`, uuid.New().String(), projectStakeholderID.String(), workstreamID.String(), role)

	return err
}

func RemoveRACIRole(db *sql.DB, projectStakeholderID, workstreamID uuid.UUID) error {
	_, err := db.Exec(`
		DELETE FROM raci_assignments WHERE project_stakeholder_id = ? AND workstream_id = ?
	`, projectStakeholderID.String(), workstreamID.String())

	return err
}

// ListRACIByProject returns every RACI row in a project joined with
// workstream and stakeholder names.
func ListRACIByProject(db *sql.DB, projectID uuid.UUID) ([]models.RACIRow, error) {
	rows, err := db.Query(`
		SELECT r.id, r.project_stakeholder_id, r.workstream_id, r.role,
		       w.name, s.name, s.id
		FROM raci_assignments r
		JOIN project_stakeholders ps ON r.project_stakeholder_id = ps.id
		JOIN workstreams w ON r.workstream_id = w.id
		JOIN stakeholders s ON ps.stakeholder_id = s.id
		WHERE ps.project_id = ?
		ORDER BY w.name, s.name
	`, projectID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.RACIRow
	for rows.Next() {
		var r models.RACIRow
		if err := rows.Scan(&r.ID, &r.ProjectStakeholderID, &r.WorkstreamID, &r.Role,
			&r.WorkstreamName, &r.StakeholderName, &r.StakeholderID); err != nil {
			return nil, err
		}
		result = append(result, r)
	}

	return result, rows.Err()
}

// ListRACIByAssignment returns a single stakeholder-assignment's roles across
// workstreams, for briefs.
func ListRACIByAssignment(db *sql.DB, projectStakeholderID uuid.UUID) ([]models.RACIRow, error) {
	rows, err := db.Query(`
		SELECT r.id, r.project_stakeholder_id, r.workstream_id, r.role,
		       w.name, s.name, s.id
		FROM raci_assignments r
		JOIN project_stakeholders ps ON r.project_stakeholder_id = ps.id
		JOIN workstreams w ON r.workstream_id = w.id
		JOIN stakeholders s ON ps.stakeholder_id = s.id
		WHERE r.project_stakeholder_id = ?
		ORDER BY w.name
	`, projectStakeholderID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.RACIRow
	for rows.Next() {
		var r models.RACIRow
		if err := rows.Scan(&r.ID, &r.ProjectStakeholderID, &r.WorkstreamID, &r.Role,
			&r.WorkstreamName, &r.StakeholderName, &r.StakeholderID); err != nil {
			return nil, err
		}
		result = append(result, r)
	}

	return result, rows.Err()
}
