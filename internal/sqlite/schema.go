package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL.
const (
	createForms = `CREATE TABLE forms (
    form_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createFormValues = `CREATE TABLE form_values (
    form_id TEXT NOT NULL,
    field_key TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (form_id, field_key),
    FOREIGN KEY (form_id) REFERENCES forms(form_id) ON DELETE CASCADE
);`
)

// Index DDL for Fetch filters.
const (
	idxFormsName       = `CREATE INDEX idx_forms_name ON forms(name);`
	idxFormsCreated    = `CREATE INDEX idx_forms_created ON forms(created_at);`
	idxFormValuesField = `CREATE INDEX idx_form_values_field ON form_values(field_key, value);`
)

// schemaDDL lists all statements in dependency order.
var schemaDDL = []string{
	"PRAGMA foreign_keys = ON;",
	createForms,
	createFormValues,
	idxFormsName,
	idxFormsCreated,
	idxFormValuesField,
}

func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
