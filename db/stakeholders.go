// ABOUTME: Stakeholder database operations
// ABOUTME: Handles CRUD, fragment lookup, and level-change history tracking
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/stakeholdr/models"
)

func CreateStakeholder(db *sql.DB, s *models.Stakeholder) error {
	s.ID = uuid.New()
	if s.InfluenceLevel == "" {
		s.InfluenceLevel = models.InfluenceMedium
	}
	if s.SupportLevel == "" {
		s.SupportLevel = models.SupportNeutral
	}

	_, err := db.Exec(`
		INSERT INTO stakeholders (id, name, job_title, department, email, slack, influence_level, support_level, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID.String(), s.Name, s.JobTitle, s.Department, s.Email, s.Slack, s.InfluenceLevel, s.SupportLevel, s.Notes)

	return err
}

func GetStakeholder(db *sql.DB, id uuid.UUID) (*models.Stakeholder, error) {
	s := &models.Stakeholder{}
	err := db.QueryRow(`
		SELECT id, name, job_title, department, email, slack, influence_level, support_level, notes
		FROM stakeholders WHERE id = ?
	`, id.String()).Scan(&s.ID, &s.Name, &s.JobTitle, &s.Department, &s.Email, &s.Slack,
		&s.InfluenceLevel, &s.SupportLevel, &s.Notes)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}

func ListStakeholders(db *sql.DB) ([]models.Stakeholder, error) {
	rows, err := db.Query(`
		SELECT id, name, job_title, department, email, slack, influence_level, support_level, notes
		FROM stakeholders ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStakeholders(rows)
}

// ListProjectStakeholders returns all stakeholders assigned to a project,
// joined with their assignment id and project function.
func ListProjectStakeholders(db *sql.DB, projectID uuid.UUID) ([]models.AssignedStakeholder, error) {
	rows, err := db.Query(`
		SELECT s.id, s.name, s.job_title, s.department, s.email, s.slack,
		       s.influence_level, s.support_level, s.notes,
		       ps.id, ps.project_function
		FROM stakeholders s
		JOIN project_stakeholders ps ON s.id = ps.stakeholder_id
		WHERE ps.project_id = ?
		ORDER BY s.name
	`, projectID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assigned []models.AssignedStakeholder
	for rows.Next() {
		var a models.AssignedStakeholder
		var psID string
		if err := rows.Scan(&a.ID, &a.Name, &a.JobTitle, &a.Department, &a.Email, &a.Slack,
			&a.InfluenceLevel, &a.SupportLevel, &a.Notes, &psID, &a.ProjectFunction); err != nil {
			return nil, err
		}
		a.ProjectStakeholderID, err = uuid.Parse(psID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse assignment ID: %w", err)
		}
		assigned = append(assigned, a)
	}

	return assigned, rows.Err()
}

// FindProjectStakeholderByName finds the first project-assigned stakeholder
// whose name contains the fragment, case-insensitively. Candidates are
// ordered by name so an ambiguous fragment resolves deterministically.
func FindProjectStakeholderByName(db *sql.DB, projectID uuid.UUID, fragment string) (*models.AssignedStakeholder, error) {
	pattern := "%" + strings.ToLower(fragment) + "%"
	a := &models.AssignedStakeholder{}
	var psID string

	err := db.QueryRow(`
		SELECT s.id, s.name, s.job_title, s.department, s.email, s.slack,
		       s.influence_level, s.support_level, s.notes,
		       ps.id, ps.project_function
		FROM stakeholders s
		JOIN project_stakeholders ps ON s.id = ps.stakeholder_id
		WHERE ps.project_id = ? AND LOWER(s.name) LIKE ?
		ORDER BY s.name
		LIMIT 1
	`, projectID.String(), pattern).Scan(&a.ID, &a.Name, &a.JobTitle, &a.Department, &a.Email, &a.Slack,
		&a.InfluenceLevel, &a.SupportLevel, &a.Notes, &psID, &a.ProjectFunction)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.ProjectStakeholderID, err = uuid.Parse(psID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse assignment ID: %w", err)
	}

	return a, nil
}

// FindStakeholders searches name, department, and support level with a
// disjunctive case-insensitive substring match.
func FindStakeholders(db *sql.DB, fragment string, limit int) ([]models.Stakeholder, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + strings.ToLower(fragment) + "%"

	rows, err := db.Query(`
		SELECT id, name, job_title, department, email, slack, influence_level, support_level, notes
		FROM stakeholders
		WHERE LOWER(name) LIKE ? OR LOWER(department) LIKE ? OR LOWER(support_level) LIKE ?
		ORDER BY name
		LIMIT ?
	`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStakeholders(rows)
}

// UpdateStakeholder persists all fields and appends history rows when the
// influence or support level changed.
func UpdateStakeholder(db *sql.DB, s *models.Stakeholder) error {
	existing, err := GetStakeholder(db, s.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("stakeholder %s not found", s.ID)
	}

	if existing.InfluenceLevel != s.InfluenceLevel {
		if err := appendHistory(db, s.ID, models.FieldInfluenceLevel, existing.InfluenceLevel, s.InfluenceLevel); err != nil {
			return fmt.Errorf("failed to record influence change: %w", err)
		}
	}
	if existing.SupportLevel != s.SupportLevel {
		if err := appendHistory(db, s.ID, models.FieldSupportLevel, existing.SupportLevel, s.SupportLevel); err != nil {
			return fmt.Errorf("failed to record support change: %w", err)
		}
	}

	_, err = db.Exec(`
		UPDATE stakeholders
		SET name = ?, job_title = ?, department = ?, email = ?, slack = ?,
		    influence_level = ?, support_level = ?, notes = ?
		WHERE id = ?
	`, s.Name, s.JobTitle, s.Department, s.Email, s.Slack, s.InfluenceLevel, s.SupportLevel, s.Notes, s.ID.String())

	return err
}

func appendHistory(db *sql.DB, stakeholderID uuid.UUID, field, oldValue, newValue string) error {
	_, err := db.Exec(`
		INSERT INTO stakeholder_history (id, stakeholder_id, field, old_value, new_value, changed_at, notes)
		VALUES (?, ?, ?, ?, ?, ?, '')
	`, uuid.New().String(), stakeholderID.String(), field, oldValue, newValue, time.Now())
	return err
}

// DeleteStakeholder removes a stakeholder and cascades through its
// assignments: RACI rows, comm plans, engagement logs, tag links,
// relationships, and history.
func DeleteStakeholder(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	idStr := id.String()

	_, err = tx.Exec(`DELETE FROM raci_assignments WHERE project_stakeholder_id IN
		(SELECT id FROM project_stakeholders WHERE stakeholder_id = ?)`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete raci assignments: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM comm_plans WHERE project_stakeholder_id IN
		(SELECT id FROM project_stakeholders WHERE stakeholder_id = ?)`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete comm plans: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM engagement_logs WHERE project_stakeholder_id IN
		(SELECT id FROM project_stakeholders WHERE stakeholder_id = ?)`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete engagement logs: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM project_stakeholders WHERE stakeholder_id = ?`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete assignments: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM stakeholder_tags WHERE stakeholder_id = ?`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete tag links: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM relationships WHERE from_stakeholder_id = ? OR to_stakeholder_id = ?`, idStr, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete relationships: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM stakeholder_history WHERE stakeholder_id = ?`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete history: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM stakeholders WHERE id = ?`, idStr)
	if err != nil {
		return fmt.Errorf("failed to delete stakeholder: %w", err)
	}

	return tx.Commit()
}

func scanStakeholders(rows *sql.Rows) ([]models.Stakeholder, error) {
	var stakeholders []models.Stakeholder
	for rows.Next() {
		var s models.Stakeholder
		if err := rows.Scan(&s.ID, &s.Name, &s.JobTitle, &s.Department, &s.Email, &s.Slack,
			&s.InfluenceLevel, &s.SupportLevel, &s.Notes); err != nil {
			return nil, err
		}
		stakeholders = append(stakeholders, s)
	}
	return stakeholders, rows.Err()
}
