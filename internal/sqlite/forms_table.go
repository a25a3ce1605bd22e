package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// FilterName selects records by name in Fetch; every other filter key
// selects by field value.
const FilterName = "name"

// timestampLayout is fixed-width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Get retrieves a form record by ID.
func (s *Store) Get(id string) (*types.FormRecord, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, types.ErrStoreDetached
	}

	rec, err := hydrateForm(s.db.QueryRow(
		"SELECT form_id, name, created_at, updated_at FROM forms WHERE form_id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting form %s: %w", id, err)
	}
	if rec.Values, err = s.values(id); err != nil {
		return nil, err
	}
	return rec, nil
}

// Set persists a form record. If id is empty, a UUID v7 is generated and the
// record is created. Otherwise the record with that ID is created or
// replaced, keeping its original creation time. The record's ID and
// timestamps are updated in place. Returns the ID used.
func (s *Store) Set(id string, record *types.FormRecord) (string, error) {
	if record == nil {
		return "", types.ErrInvalidData
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return "", types.ErrStoreDetached
	}

	now := time.Now().UTC()
	createdAt := now
	if id == "" {
		newID, err := newFormID()
		if err != nil {
			return "", err
		}
		id = newID
	} else {
		var stored string
		err := s.db.QueryRow("SELECT created_at FROM forms WHERE form_id = ?", id).Scan(&stored)
		switch {
		case err == nil:
			if createdAt, err = time.Parse(time.RFC3339Nano, stored); err != nil {
				return "", fmt.Errorf("parsing created_at: %w", err)
			}
		case !errors.Is(err, sql.ErrNoRows):
			return "", fmt.Errorf("checking form existence: %w", err)
		}
	}

	values := make(map[string]string, len(record.Values))
	for k, v := range record.Values {
		values[k] = v
	}
	row := formJSONLRecord{
		FormID:    id,
		Name:      record.Name,
		Values:    values,
		CreatedAt: createdAt.Format(timestampLayout),
		UpdatedAt: now.Format(timestampLayout),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()
	if err := writeForm(tx, row); err != nil {
		return "", fmt.Errorf("persisting form: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing form: %w", err)
	}

	if err := s.persistFormsJSONL(); err != nil {
		return "", fmt.Errorf("persisting %s: %w", formsJSONL, err)
	}

	record.FormID = id
	record.Values = values
	record.CreatedAt = createdAt
	record.UpdatedAt = now
	s.log.Debug("form saved", "form_id", id, "fields", len(values))
	return id, nil
}

// Delete removes a form record and its values.
func (s *Store) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return types.ErrStoreDetached
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM form_values WHERE form_id = ?", id); err != nil {
		return fmt.Errorf("deleting form values: %w", err)
	}
	res, err := tx.Exec("DELETE FROM forms WHERE form_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting form: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("deleting form: %w", err)
	} else if n == 0 {
		return types.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing form deletion: %w", err)
	}

	if err := s.persistFormsJSONL(); err != nil {
		return fmt.Errorf("persisting %s: %w", formsJSONL, err)
	}
	s.log.Debug("form deleted", "form_id", id)
	return nil
}

// Fetch returns the records matching every filter entry, newest first.
// The result is never nil.
func (s *Store) Fetch(filter map[string]string) ([]*types.FormRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT form_id, name, created_at, updated_at FROM forms"
	var conditions []string
	var args []any

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == FilterName {
			conditions = append(conditions, "name = ?")
			args = append(args, filter[k])
			continue
		}
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM form_values v WHERE v.form_id = forms.form_id AND v.field_key = ? AND v.value = ?)")
		args = append(args, k, filter[k])
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, form_id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching forms: %w", err)
	}
	results := []*types.FormRecord{}
	for rows.Next() {
		rec, err := hydrateForm(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("hydrating form: %w", err)
		}
		results = append(results, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating forms: %w", err)
	}

	for _, rec := range results {
		if rec.Values, err = s.values(rec.FormID); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// values loads the field values of one form.
func (s *Store) values(id string) (map[string]string, error) {
	rows, err := s.db.Query("SELECT field_key, value FROM form_values WHERE form_id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("querying form values: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning form value: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating form values: %w", err)
	}
	return values, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydrateForm converts a forms row into a record without values.
func hydrateForm(row scanner) (*types.FormRecord, error) {
	var rec types.FormRecord
	var createdAt, updatedAt string
	if err := row.Scan(&rec.FormID, &rec.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &rec, nil
}

// persistFormsJSONL writes every form to forms.jsonl, oldest first. The
// caller holds s.mu.
func (s *Store) persistFormsJSONL() error {
	rows, err := s.db.Query("SELECT form_id, name, created_at, updated_at FROM forms ORDER BY created_at ASC, form_id ASC")
	if err != nil {
		return fmt.Errorf("querying forms for JSONL: %w", err)
	}
	var forms []formJSONLRecord
	for rows.Next() {
		var rec formJSONLRecord
		if err := rows.Scan(&rec.FormID, &rec.Name, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scanning form for JSONL: %w", err)
		}
		forms = append(forms, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating forms for JSONL: %w", err)
	}

	records := make([]json.RawMessage, 0, len(forms))
	for _, rec := range forms {
		if rec.Values, err = s.values(rec.FormID); err != nil {
			return err
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling form for JSONL: %w", err)
		}
		records = append(records, data)
	}
	return writeJSONL(filepath.Join(s.config.DataDir, formsJSONL), records)
}
