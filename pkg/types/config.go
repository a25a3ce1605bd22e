package types

import (
	"errors"
	"fmt"
)

// Config selects the FormStore backend and where it keeps its files.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// BackendSQLite is the JSONL-backed SQLite store.
const BackendSQLite = "sqlite"

// DefaultDataDir is used when Config.DataDir is empty.
const DefaultDataDir = "."

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Validate reports ErrBackendEmpty or ErrBackendUnknown for a backend the
// store cannot attach to. An empty DataDir is allowed.
func (c Config) Validate() error {
	switch c.Backend {
	case "":
		return ErrBackendEmpty
	case BackendSQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrBackendUnknown, c.Backend)
	}
}

// WithDefaults returns a copy with empty fields filled in.
func (c Config) WithDefaults() Config {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	return c
}
