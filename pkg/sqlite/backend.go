// Package sqlite exposes the SQLite form record store while keeping its
// implementation internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/formkit/internal/sqlite"
	"github.com/mesh-intelligence/formkit/pkg/types"
)

// NewStore creates a SQLite form store. It is not attached; call Attach
// with a Config to initialize. A nil logger discards log output.
//
// Example:
//
//	store := sqlite.NewStore(nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".formkit-db",
//	})
//	defer store.Detach()
func NewStore(log *slog.Logger) types.FormStore {
	return sqlite.NewStore(sqlite.WithLogger(log))
}
