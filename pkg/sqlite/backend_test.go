package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

func TestNewStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	store := NewStore(nil)
	require.NoError(t, store.Attach(cfg))
	id, err := store.Set("", &types.FormRecord{Name: "visit", Values: map[string]string{"who": "Anna"}})
	require.NoError(t, err)
	require.NoError(t, store.Detach())

	reopened := NewStore(nil)
	require.NoError(t, reopened.Attach(cfg))
	defer reopened.Detach()

	rec, err := reopened.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "visit", rec.Name)
	value, ok := rec.Data().TryGet("who")
	assert.True(t, ok)
	assert.Equal(t, "Anna", value)
}
