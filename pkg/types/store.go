package types

import "time"

// FormRecord is a persisted snapshot of one form session's values.
type FormRecord struct {
	FormID    string            `json:"form_id"`
	Name      string            `json:"name"`
	Values    map[string]string `json:"values"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Data returns the record's values as a FormData.
func (r *FormRecord) Data() *FormData {
	return NewFormData(r.Values)
}

// FormStore persists FormRecords. Callers attach to a backend, work with
// records, and detach when done.
type FormStore interface {
	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	// After Detach, operations return ErrStoreDetached.
	Detach() error

	// Get retrieves the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Get(id string) (*FormRecord, error)

	// Set creates or updates a record. When id is empty a new UUID v7 is
	// generated. Returns the ID used.
	Set(id string, record *FormRecord) (string, error)

	// Delete removes the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Delete(id string) error

	// Fetch returns the records matching every filter entry. The "name"
	// key matches the record name; any other key matches a field value.
	// An empty filter returns every record.
	Fetch(filter map[string]string) ([]*FormRecord, error)
}
