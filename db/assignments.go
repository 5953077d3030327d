// ABOUTME: Project-stakeholder assignment operations
// ABOUTME: Handles the join entity that RACI, comm plans, and logs hang off
package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/stakeholdr/models"
)

// AssignStakeholder creates the (project, stakeholder) assignment. The UNIQUE
// constraint rejects a second assignment for the same pair.
func AssignStakeholder(db *sql.DB, a *models.ProjectStakeholder) error {
	a.ID = uuid.New()

	_, err := db.Exec(`
		INSERT INTO project_stakeholders (id, project_id, stakeholder_id, project_function)
		VALUES (?, ?, ?, ?)
	`, a.ID.String(), a.ProjectID.String(), a.StakeholderID.String(), a.ProjectFunction)

	return err
}

func GetAssignment(db *sql.DB, id uuid.UUID) (*models.ProjectStakeholder, error) {
	a := &models.ProjectStakeholder{}
	err := db.QueryRow(`
		SELECT id, project_id, stakeholder_id, project_function
		FROM project_stakeholders WHERE id = ?
	`, id.String()).Scan(&a.ID, &a.ProjectID, &a.StakeholderID, &a.ProjectFunction)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return a, nil
}

func GetAssignmentByPair(db *sql.DB, projectID, stakeholderID uuid.UUID) (*models.ProjectStakeholder, error) {
	a := &models.ProjectStakeholder{}
	err := db.QueryRow(`
		SELECT id, project_id, stakeholder_id, project_function
		FROM project_stakeholders WHERE project_id = ? AND stakeholder_id = ?
	`, projectID.String(), stakeholderID.String()).Scan(&a.ID, &a.ProjectID, &a.StakeholderID, &a.ProjectFunction)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return a, nil
}

func UpdateAssignmentFunction(db *sql.DB, id uuid.UUID, projectFunction string) error {
	_, err := db.Exec(`
		UPDATE project_stakeholders SET project_function = ? WHERE id = ?
	`, projectFunction, id.String())

	return err
}

// UnassignStakeholder removes the assignment and everything attached to it.
func UnassignStakeholder(db *sql.DB, projectID, stakeholderID uuid.UUID) error {
	assignment, err := GetAssignmentByPair(db, projectID, stakeholderID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	psID := assignment.ID.String()

	_, err = tx.Exec(`DELETE FROM raci_assignments WHERE project_stakeholder_id = ?`, psID)
	if err != nil {
		return fmt.Errorf("failed to delete raci assignments: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM comm_plans WHERE project_stakeholder_id = ?`, psID)
	if err != nil {
		return fmt.Errorf("failed to delete comm plan: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM engagement_logs WHERE project_stakeholder_id = ?`, psID)
	if err != nil {
		return fmt.Errorf("failed to delete engagement logs: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM project_stakeholders WHERE id = ?`, psID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	return tx.Commit()
}
