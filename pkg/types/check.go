package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationResult is the outcome of one Check invocation. It is a value;
// a result never changes after it is returned.
type ValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}

// Valid is the success result. It carries no message.
var Valid = ValidationResult{IsValid: true}

// Invalid returns a failed result with the given message.
func Invalid(message string) ValidationResult {
	return ValidationResult{IsValid: false, Message: message}
}

// Check validates the raw value of a field. An absent value is passed as the
// empty string. fallback is a typed default a check may use when the raw
// value cannot be parsed; checks that do not parse ignore it.
// Validation failures are returned as results and never as errors.
type Check interface {
	Validate(value string, fallback any) ValidationResult
}

// CheckFunc adapts a plain function to the Check interface.
type CheckFunc func(value string, fallback any) ValidationResult

// Validate calls f.
func (f CheckFunc) Validate(value string, fallback any) ValidationResult {
	return f(value, fallback)
}

// DataFunc returns the current FormData snapshot of the session a check runs in.
type DataFunc func() *FormData

// TableDataSerializer converts the serialized blob stored under a datatable
// field key to a mapping from cell key (see TableCellKey) to value and back.
// Deserialize never fails: malformed or empty blobs yield an empty mapping.
type TableDataSerializer interface {
	Serialize(values map[string]string) string
	Deserialize(blob string) map[string]string
}

// tableCellSeparator joins a column key and a row index in a cell key.
const tableCellSeparator = "__"

// TableCellKey returns the cell key addressing column in row, e.g.
// "columnStopRow__1". Row indices are 1-based.
func TableCellKey(column string, row int) string {
	return fmt.Sprintf("%s%s%d", column, tableCellSeparator, row)
}

// SplitTableCellKey splits a cell key into its column key and row index.
// ok is false when key is not of the form "<column>__<row>".
func SplitTableCellKey(key string) (column string, row int, ok bool) {
	i := strings.LastIndex(key, tableCellSeparator)
	if i <= 0 {
		return "", 0, false
	}
	row, err := strconv.Atoi(key[i+len(tableCellSeparator):])
	if err != nil || row < 0 {
		return "", 0, false
	}
	return key[:i], row, true
}
