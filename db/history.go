// ABOUTME: Stakeholder history database operations
// ABOUTME: Read side of the append-only level-change audit trail
package db

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/harperreed/stakeholdr/models"
)

// ListHistoryByStakeholder returns a stakeholder's level changes, newest first.
func ListHistoryByStakeholder(db *sql.DB, stakeholderID uuid.UUID, limit int) ([]models.StakeholderHistory, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, stakeholder_id, field, old_value, new_value, changed_at, notes
		FROM stakeholder_history
		WHERE stakeholder_id = ?
		ORDER BY changed_at DESC
		LIMIT ?
	`, stakeholderID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.StakeholderHistory
	for rows.Next() {
		var h models.StakeholderHistory
		if err := rows.Scan(&h.ID, &h.StakeholderID, &h.Field, &h.OldValue, &h.NewValue, &h.ChangedAt, &h.Notes); err != nil {
			return nil, err
		}
		history = append(history, h)
	}

	return history, rows.Err()
}

// ListRecentHistory returns the newest level changes across all stakeholders.
func ListRecentHistory(db *sql.DB, limit int) ([]models.HistoryRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT h.id, h.stakeholder_id, h.field, h.old_value, h.new_value, h.changed_at, h.notes, s.name
		FROM stakeholder_history h
		JOIN stakeholders s ON h.stakeholder_id = s.id
		ORDER BY h.changed_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.HistoryRow
	for rows.Next() {
		var h models.HistoryRow
		if err := rows.Scan(&h.ID, &h.StakeholderID, &h.Field, &h.OldValue, &h.NewValue, &h.ChangedAt,
			&h.Notes, &h.StakeholderName); err != nil {
			return nil, err
		}
		history = append(history, h)
	}

	return history, rows.Err()
}
