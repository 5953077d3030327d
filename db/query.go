// ABOUTME: Raw parameterized query execution for the assistant layer
// ABOUTME: Returns rows as ordered column/value maps
package db

import (
	"database/sql"
	"time"
)

// ExecuteQuery runs a read query with bound parameters and returns each row
// as a column-name map. Callers must never interpolate user input into the
// SQL text; fragments travel through params.
func ExecuteQuery(db *sql.DB, query string, params []any) ([]map[string]any, error) {
	rows, err := db.Query(query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}

		if err := rows.Scan(scanTargets...); err != nil {
			return nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			case time.Time:
				row[col] = v.Format(time.RFC3339)
			default:
				row[col] = v
			}
		}
		results = append(results, row)
	}

	return results, rows.Err()
}
