package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"
)

// loadFormsJSONL reads forms.jsonl from dataDir into the database in one
// transaction and returns the number of records loaded. Malformed lines and
// records without an ID or with bad timestamps are skipped. Unknown fields
// are ignored. A later line for the same ID replaces an earlier one.
func loadFormsJSONL(db *sql.DB, dataDir string) (int, error) {
	records, err := readJSONL(filepath.Join(dataDir, formsJSONL))
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	loaded := make(map[string]bool)
	for _, raw := range records {
		var rec formJSONLRecord
		if err := json.Unmarshal(raw, &rec); err != nil || rec.FormID == "" {
			continue
		}
		if !validTimestamp(rec.CreatedAt) || !validTimestamp(rec.UpdatedAt) {
			continue
		}
		if err := writeForm(tx, rec); err != nil {
			return 0, fmt.Errorf("loading form %s: %w", rec.FormID, err)
		}
		loaded[rec.FormID] = true
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return len(loaded), nil
}

func validTimestamp(s string) bool {
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

// writeForm upserts a form row and replaces its values.
func writeForm(tx *sql.Tx, rec formJSONLRecord) error {
	_, err := tx.Exec(
		`INSERT INTO forms (form_id, name, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(form_id) DO UPDATE SET name = excluded.name, created_at = excluded.created_at, updated_at = excluded.updated_at`,
		rec.FormID, rec.Name, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("writing form row: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM form_values WHERE form_id = ?", rec.FormID); err != nil {
		return fmt.Errorf("clearing form values: %w", err)
	}
	if len(rec.Values) == 0 {
		return nil
	}

	stmt, err := tx.Prepare("INSERT INTO form_values (form_id, field_key, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing value insert: %w", err)
	}
	defer stmt.Close()
	for key, value := range rec.Values {
		if _, err := stmt.Exec(rec.FormID, key, value); err != nil {
			return fmt.Errorf("writing value %s: %w", key, err)
		}
	}
	return nil
}
