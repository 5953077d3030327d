// ABOUTME: Communication plan database operations
// ABOUTME: Handles per-assignment plan upserts and last-contact tracking
package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/stakeholdr/models"
)

// SetCommPlan creates or updates the one plan an assignment may carry.
// An existing plan keeps its last-contact date.
func SetCommPlan(db *sql.DB, plan *models.CommunicationPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	if plan.Channel == "" {
		plan.Channel = models.ChannelEmail
	}
	if plan.Frequency == "" {
		plan.Frequency = models.FrequencyWeekly
	}

	_, err := db.Exec(`
		INSERT INTO comm_plans (id, project_stakeholder_id, channel, frequency, notes, last_contact_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_stakeholder_id) DO UPDATE SET
			channel = excluded.channel,
			frequency = excluded.frequency,
			notes = excluded.notes
	`, plan.ID.String(), plan.ProjectStakeholderID.String(), plan.Channel, plan.Frequency, plan.Notes, plan.LastContactDate)

	return err
}

func GetCommPlan(db *sql.DB, projectStakeholderID uuid.UUID) (*models.CommunicationPlan, error) {
	plan := &models.CommunicationPlan{}
	err := db.QueryRow(`
		SELECT id, project_stakeholder_id, channel, frequency, notes, last_contact_date
		FROM comm_plans WHERE project_stakeholder_id = ?
	`, projectStakeholderID.String()).Scan(&plan.ID, &plan.ProjectStakeholderID, &plan.Channel,
		&plan.Frequency, &plan.Notes, &plan.LastContactDate)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return plan, nil
}

func ListCommPlansByProject(db *sql.DB, projectID uuid.UUID) ([]models.CommPlanRow, error) {
	rows, err := db.Query(`
		SELECT c.id, c.project_stakeholder_id, c.channel, c.frequency, c.notes, c.last_contact_date,
		       s.name, s.id
		FROM comm_plans c
		JOIN project_stakeholders ps ON c.project_stakeholder_id = ps.id
		JOIN stakeholders s ON ps.stakeholder_id = s.id
		WHERE ps.project_id = ?
		ORDER BY s.name
	`, projectID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.CommPlanRow
	for rows.Next() {
		var p models.CommPlanRow
		if err := rows.Scan(&p.ID, &p.ProjectStakeholderID, &p.Channel, &p.Frequency, &p.Notes,
			&p.LastContactDate, &p.StakeholderName, &p.StakeholderID); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	return plans, rows.Err()
}

func UpdateLastContact(db *sql.DB, projectStakeholderID uuid.UUID, date time.Time) error {
	_, err := db.Exec(`
		UPDATE comm_plans SET last_contact_date = ? WHERE project_stakeholder_id = ?
	`, date, projectStakeholderID.String())

	return err
}
