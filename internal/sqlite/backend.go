// Package sqlite implements the SQLite form record store.
//
// forms.jsonl in the data directory is the source of truth. Attach rebuilds a
// fresh SQLite database from it; every mutation is applied to SQLite and then
// the whole file is rewritten atomically.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// File names inside the data directory.
const (
	formsJSONL = "forms.jsonl"
	databaseDB = "forms.db"
)

var _ types.FormStore = (*Store)(nil)

// Store implements types.FormStore on SQLite with a JSONL file as the
// source of truth.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	log      *slog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore creates a new store. It is not attached; call Attach with a
// Config to initialize.
func NewStore(opts ...Option) *Store {
	s := &Store{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach creates DataDir if needed, builds a fresh database and loads
// forms.jsonl into it.
// Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	config = config.WithDefaults()
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is a cache of the JSONL file; start from scratch.
	dbPath := filepath.Join(config.DataDir, databaseDB)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}
	if err := initJSONL(filepath.Join(config.DataDir, formsJSONL)); err != nil {
		db.Close()
		return err
	}
	loaded, err := loadFormsJSONL(db, config.DataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	s.db = db
	s.config = config
	s.attached = true
	s.log.Debug("form store attached", "data_dir", config.DataDir, "records", loaded)
	return nil
}

// Detach closes the database. After Detach, all operations return
// ErrStoreDetached. Detach is idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	s.db = nil
	s.attached = false
	s.log.Debug("form store detached", "data_dir", s.config.DataDir)
	return nil
}

// newFormID generates a UUID v7 for new records.
func newFormID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}
