// ABOUTME: Project database operations
// ABOUTME: Handles CRUD and cascading project deletion
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/stakeholdr/models"
)

func CreateProject(db *sql.DB, project *models.Project) error {
	project.ID = uuid.New()
	project.CreatedAt = time.Now()
	if project.Status == "" {
		project.Status = models.StatusActive
	}

	_, err := db.Exec(`
		INSERT INTO projects (id, name, description, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, project.ID.String(), project.Name, project.Description, project.Status, project.CreatedAt)

	return err
}

func GetProject(db *sql.DB, id uuid.UUID) (*models.Project, error) {
	project := &models.Project{}
	err := db.QueryRow(`
		SELECT id, name, description, status, created_at
		FROM projects WHERE id = ?
	`, id.String()).Scan(&project.ID, &project.Name, &project.Description, &project.Status, &project.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return project, nil
}

func ListProjects(db *sql.DB) ([]models.Project, error) {
	rows, err := db.Query(`
		SELECT id, name, description, status, created_at
		FROM projects ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func FindProjectByName(db *sql.DB, name string) (*models.Project, error) {
	project := &models.Project{}
	err := db.QueryRow(`
		SELECT id, name, description, status, created_at
		FROM projects WHERE LOWER(name) = LOWER(?)
	`, name).Scan(&project.ID, &project.Name, &project.Description, &project.Status, &project.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return project, nil
}

func UpdateProject(db *sql.DB, project *models.Project) error {
	_, err := db.Exec(`
		UPDATE projects SET name = ?, description = ?, status = ? WHERE id = ?
	`, project.Name, project.Description, project.Status, project.ID.String())

	return err
}

// DeleteProject removes a project together with its workstreams, assignments,
// and everything hanging off those assignments. Stakeholders are
// project-independent and survive.
func DeleteProject(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	idStr := id.String()

	_, err = tx.Exec(`DELETE FROM raci_assignments WHERE project_stakeholder_id IN
		(SELECT id FROM project_stakeholders WHERE project_id = ?)`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete raci assignments: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM comm_plans WHERE project_stakeholder_id IN
		(SELECT id FROM project_stakeholders WHERE project_id = ?)`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete comm plans: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM engagement_logs WHERE project_stakeholder_id IN
		(SELECT id FROM project_stakeholders WHERE project_id = ?)`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete engagement logs: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM project_stakeholders WHERE project_id = ?`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM workstreams WHERE project_id = ?`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete workstreams: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM projects WHERE id = ?`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return tx.Commit()
}
