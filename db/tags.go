// ABOUTME: Tag database operations
// ABOUTME: Handles label CRUD and stakeholder tag links
package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/stakeholdr/models"
)

const defaultTagColor = "#6366f1"

func CreateTag(db *sql.DB, tag *models.Tag) error {
	tag.ID = uuid.New()
	if tag.Color == "" {
		tag.Color = defaultTagColor
	}

	_, err := db.Exec(`
		INSERT INTO tags (id, name, color) VALUES (?, ?, ?)
	`, tag.ID.String(), tag.Name, tag.Color)

	return err
}

func ListTags(db *sql.DB) ([]models.Tag, error) {
	rows, err := db.Query(`SELECT id, name, color FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTags(rows)
}

func FindTagByName(db *sql.DB, name string) (*models.Tag, error) {
	tag := &models.Tag{}
	err := db.QueryRow(`
		SELECT id, name, color FROM tags WHERE LOWER(name) = LOWER(?)
	`, name).Scan(&tag.ID, &tag.Name, &tag.Color)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return tag, nil
}

func UpdateTag(db *sql.DB, tag *models.Tag) error {
	_, err := db.Exec(`UPDATE tags SET name = ?, color = ? WHERE id = ?`,
		tag.Name, tag.Color, tag.ID.String())

	return err
}

func DeleteTag(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(`DELETE FROM stakeholder_tags WHERE tag_id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete tag links: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM tags WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	return tx.Commit()
}

// TagStakeholder links a tag to a stakeholder. Linking twice is a no-op.
func TagStakeholder(db *sql.DB, stakeholderID, tagID uuid.UUID) error {
	_, err := db.Exec(`
		INSERT OR IGNORE INTO stakeholder_tags (stakeholder_id, tag_id) VALUES (?, ?)
	`, stakeholderID.String(), tagID.String())

	return err
}

func UntagStakeholder(db *sql.DB, stakeholderID, tagID uuid.UUID) error {
	_, err := db.Exec(`
		DELETE FROM stakeholder_tags WHERE stakeholder_id = ? AND tag_id = ?
	`, stakeholderID.String(), tagID.String())

	return err
}

func ListTagsByStakeholder(db *sql.DB, stakeholderID uuid.UUID) ([]models.Tag, error) {
	rows, err := db.Query(`
		SELECT t.id, t.name, t.color
		FROM tags t
		JOIN stakeholder_tags st ON t.id = st.tag_id
		WHERE st.stakeholder_id = ?
		ORDER BY t.name
	`, stakeholderID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTags(rows)
}

func scanTags(rows *sql.Rows) ([]models.Tag, error) {
	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
