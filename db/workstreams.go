// ABOUTME: Workstream database operations
// ABOUTME: Handles project-scoped CRUD for RACI matrix columns
package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/stakeholdr/models"
)

func CreateWorkstream(db *sql.DB, ws *models.Workstream) error {
	ws.ID = uuid.New()

	_, err := db.Exec(`
		INSERT INTO workstreams (id, project_id, name, description)
		VALUES (?, ?, ?, ?)
	`, ws.ID.String(), ws.ProjectID.String(), ws.Name, ws.Description)

	return err
}

func GetWorkstream(db *sql.DB, id uuid.UUID) (*models.Workstream, error) {
	ws := &models.Workstream{}
	err := db.QueryRow(`
		SELECT id, project_id, name, description FROM workstreams WHERE id = ?
	`, id.String()).Scan(&ws.ID, &ws.ProjectID, &ws.Name, &ws.Description)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ws, nil
}

func ListWorkstreams(db *sql.DB, projectID uuid.UUID) ([]models.Workstream, error) {
	rows, err := db.Query(`
		SELECT id, project_id, name, description
		FROM workstreams WHERE project_id = ? ORDER BY name
	`, projectID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workstreams []models.Workstream
	for rows.Next() {
		var ws models.Workstream
		if err := rows.Scan(&ws.ID, &ws.ProjectID, &ws.Name, &ws.Description); err != nil {
			return nil, err
		}
		workstreams = append(workstreams, ws)
	}

	return workstreams, rows.Err()
}

func FindWorkstreamByName(db *sql.DB, projectID uuid.UUID, name string) (*models.Workstream, error) {
	ws := &models.Workstream{}
	err := db.QueryRow(`
		SELECT id, project_id, name, description
		FROM workstreams WHERE project_id = ? AND LOWER(name) = LOWER(?)
	`, projectID.String(), name).Scan(&ws.ID, &ws.ProjectID, &ws.Name, &ws.Description)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ws, nil
}

func UpdateWorkstream(db *sql.DB, ws *models.Workstream) error {
	_, err := db.Exec(`
		UPDATE workstreams SET name = ?, description = ? WHERE id = ?
	`, ws.Name, ws.Description, ws.ID.String())

	return err
}

// DeleteWorkstream removes a workstream and its RACI rows.
func DeleteWorkstream(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(`DELETE FROM raci_assignments WHERE workstream_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete raci assignments: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM workstreams WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete workstream: %w", err)
	}

	return tx.Commit()
}
