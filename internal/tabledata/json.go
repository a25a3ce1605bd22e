// Package tabledata implements the codec for datatable field values. One
// FormData entry holds the cells of a repeating group as a JSON object keyed
// by "<column>__<row>".
package tabledata

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// JSONSerializer implements types.TableDataSerializer with a flat JSON object
// of string values. It is stateless and safe for concurrent use.
type JSONSerializer struct{}

// NewJSONSerializer returns a JSONSerializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

// Serialize encodes values as a JSON object with keys in ascending order.
// A nil or empty mapping encodes as "{}".
func (JSONSerializer) Serialize(values map[string]string) string {
	if len(values) == 0 {
		return "{}"
	}
	// encoding/json sorts map keys, so equal mappings give equal blobs.
	data, err := json.Marshal(values)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Deserialize decodes a blob into a cell mapping. Empty and malformed blobs
// yield an empty mapping. A blob missing its surrounding braces, such as
// `"col__1":"11:00"`, is accepted. Non-string values keep their JSON text;
// null values are dropped.
func (JSONSerializer) Deserialize(blob string) map[string]string {
	result := make(map[string]string)

	blob = strings.TrimSpace(blob)
	if blob == "" {
		return result
	}
	if !strings.HasPrefix(blob, "{") {
		blob = "{" + blob + "}"
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return result
	}
	for key, value := range raw {
		value = bytes.TrimSpace(value)
		switch {
		case bytes.Equal(value, []byte("null")):
			continue
		case len(value) > 0 && value[0] == '"':
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				continue
			}
			result[key] = s
		default:
			result[key] = string(value)
		}
	}
	return result
}

// Rows returns the distinct row indices present in a cell mapping, ascending.
// Keys that are not cell keys are ignored.
func Rows(cells map[string]string) []int {
	seen := make(map[int]bool)
	for key := range cells {
		if _, row, ok := types.SplitTableCellKey(key); ok {
			seen[row] = true
		}
	}
	rows := make([]int, 0, len(seen))
	for row := range seen {
		rows = append(rows, row)
	}
	sort.Ints(rows)
	return rows
}

// Row returns the cells of one row keyed by column.
func Row(cells map[string]string, row int) map[string]string {
	result := make(map[string]string)
	for key, value := range cells {
		column, r, ok := types.SplitTableCellKey(key)
		if ok && r == row {
			result[column] = value
		}
	}
	return result
}
