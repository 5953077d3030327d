// ABOUTME: Engagement log database operations
// ABOUTME: Handles interaction records and the last-contact side effect
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/stakeholdr/models"
)

// AddEngagementLog records an interaction and advances the assignment's comm
// plan last-contact date to the log date in the same transaction.
func AddEngagementLog(db *sql.DB, log *models.EngagementLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = time.Now()
	if log.Sentiment == "" {
		log.Sentiment = models.SentimentNeutral
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(`
		INSERT INTO engagement_logs (id, project_stakeholder_id, date, type, summary, sentiment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, log.ID.String(), log.ProjectStakeholderID.String(), log.Date, log.Type, log.Summary, log.Sentiment, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert engagement log: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE comm_plans SET last_contact_date = ? WHERE project_stakeholder_id = ?
	`, log.Date, log.ProjectStakeholderID.String())
	if err != nil {
		return fmt.Errorf("failed to update last contact: %w", err)
	}

	return tx.Commit()
}

func UpdateEngagementLog(db *sql.DB, log *models.EngagementLog) error {
	_, err := db.Exec(`
		UPDATE engagement_logs SET date = ?, type = ?, summary = ?, sentiment = ? WHERE id = ?
	`, log.Date, log.Type, log.Summary, log.Sentiment, log.ID.String())

	return err
}

func DeleteEngagementLog(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`DELETE FROM engagement_logs WHERE id = ?`, id.String())
	return err
}

// ListEngagementsByAssignment returns an assignment's logs, newest first.
func ListEngagementsByAssignment(db *sql.DB, projectStakeholderID uuid.UUID, limit int) ([]models.EngagementLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, project_stakeholder_id, date, type, summary, sentiment, created_at
		FROM engagement_logs
		WHERE project_stakeholder_id = ?
		ORDER BY date DESC, created_at DESC
		LIMIT ?
	`, projectStakeholderID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.EngagementLog
	for rows.Next() {
		var l models.EngagementLog
		if err := rows.Scan(&l.ID, &l.ProjectStakeholderID, &l.Date, &l.Type, &l.Summary, &l.Sentiment, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}

// ListRecentEngagements returns the newest logs across a whole project.
func ListRecentEngagements(db *sql.DB, projectID uuid.UUID, limit int) ([]models.EngagementRow, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.Query(`
		SELECT e.id, e.project_stakeholder_id, e.date, e.type, e.summary, e.sentiment, e.created_at,
		       s.name, s.id
		FROM engagement_logs e
		JOIN project_stakeholders ps ON e.project_stakeholder_id = ps.id
		JOIN stakeholders s ON ps.stakeholder_id = s.id
		WHERE ps.project_id = ?
		ORDER BY e.date DESC, e.created_at DESC
		LIMIT ?
	`, projectID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.EngagementRow
	for rows.Next() {
		var l models.EngagementRow
		if err := rows.Scan(&l.ID, &l.ProjectStakeholderID, &l.Date, &l.Type, &l.Summary, &l.Sentiment,
			&l.CreatedAt, &l.StakeholderName, &l.StakeholderID); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
