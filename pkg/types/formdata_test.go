package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormDataTryGet(t *testing.T) {
	d := NewFormData(map[string]string{
		"startTime": "11/7/2018",
		"empty":     "",
	})

	tests := []struct {
		key       string
		wantValue string
		wantOK    bool
	}{
		{"startTime", "11/7/2018", true},
		{"empty", "", true},
		{"StartTime", "", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := d.TryGet(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantValue, got)
		})
	}
}

func TestFormDataNilIsEmpty(t *testing.T) {
	var d *FormData
	_, ok := d.TryGet("any")
	assert.False(t, ok)
	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.Keys())
	assert.NotNil(t, d.Values())
}

func TestFormDataCopiesInput(t *testing.T) {
	src := map[string]string{"a": "1"}
	d := NewFormData(src)
	src["a"] = "changed"

	got, _ := d.TryGet("a")
	assert.Equal(t, "1", got)

	values := d.Values()
	values["a"] = "mutated"
	got, _ = d.TryGet("a")
	assert.Equal(t, "1", got, "Values must return a copy")
}

func TestFormDataSetDelete(t *testing.T) {
	d := &FormData{}
	d.Set("b", "2")
	d.Set("a", "1")
	assert.Equal(t, []string{"a", "b"}, d.Keys())

	d.Delete("a")
	d.Delete("not-there")
	assert.Equal(t, []string{"b"}, d.Keys())
	assert.Equal(t, 1, d.Len())
}

func TestFormDataJSON(t *testing.T) {
	d := NewFormData(map[string]string{"login": "anna"})
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"login":"anna"}`, string(data))

	var back FormData
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d.Values(), back.Values())
}
