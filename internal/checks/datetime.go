package checks

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// Comparison operators for DateTimeComparisonCheck.
const (
	// OperatorAfter requires the value to be after the compared field.
	OperatorAfter = ">"
	// OperatorBefore requires the value to be before the compared field.
	OperatorBefore = "<"
)

// DateTimeComparisonOptions configures a DateTimeComparisonCheck.
type DateTimeComparisonOptions struct {
	// Description is reported as the message of a failed validation.
	Description string

	// Operator is OperatorAfter or OperatorBefore.
	Operator string

	// FieldToCompareWith is the key of the other field. Inside a table it
	// is the column key.
	FieldToCompareWith string

	// Data returns the current form values.
	Data types.DataFunc

	// Serializer decodes the blob stored under TableKey.
	// Required when TableKey is set.
	Serializer types.TableDataSerializer

	// TableKey, when set, names the datatable field holding the compared
	// value; RowIdx selects its row (1-based, the cell key suffix).
	TableKey string
	RowIdx   int

	// Formats are custom date/time patterns tried in order, e.g. "HH:mm".
	// Empty means the default layouts.
	Formats []string
}

// DateTimeComparisonCheck compares a date/time value with the value of
// another field, possibly a cell of a datatable row.
//
// The comparison is skipped, and the value valid, when there is nothing to
// compare: the other field is absent or unparseable, or the value is
// unparseable and the fallback is not a non-zero time.Time.
type DateTimeComparisonCheck struct {
	description string
	operator    string
	field       string
	data        types.DataFunc
	serializer  types.TableDataSerializer
	tableKey    string
	rowIdx      int
	layouts     []string
}

// NewDateTimeComparisonCheck validates opts and builds the check.
func NewDateTimeComparisonCheck(opts DateTimeComparisonOptions) (*DateTimeComparisonCheck, error) {
	if opts.Operator != OperatorAfter && opts.Operator != OperatorBefore {
		return nil, fmt.Errorf("%w: operator %q", types.ErrInvalidCheckConfig, opts.Operator)
	}
	if opts.FieldToCompareWith == "" {
		return nil, fmt.Errorf("%w: no field to compare with", types.ErrInvalidCheckConfig)
	}
	if opts.Data == nil {
		return nil, types.ErrNilDataFunc
	}
	if opts.TableKey != "" && opts.Serializer == nil {
		return nil, types.ErrNilSerializer
	}
	if opts.RowIdx < 0 {
		return nil, fmt.Errorf("%w: row index %d", types.ErrInvalidCheckConfig, opts.RowIdx)
	}

	layouts := ConvertLayouts(opts.Formats)
	if len(layouts) == 0 {
		layouts = defaultLayouts
	}

	return &DateTimeComparisonCheck{
		description: opts.Description,
		operator:    opts.Operator,
		field:       opts.FieldToCompareWith,
		data:        opts.Data,
		serializer:  opts.Serializer,
		tableKey:    opts.TableKey,
		rowIdx:      opts.RowIdx,
		layouts:     layouts,
	}, nil
}

// Validate implements types.Check. fallback is used as the value when value
// does not parse and fallback is a non-zero time.Time.
func (c *DateTimeComparisonCheck) Validate(value string, fallback any) types.ValidationResult {
	other, ok := c.resolveTarget()
	if !ok {
		return types.Valid
	}
	target, ok := parseTime(other, c.layouts)
	if !ok {
		return types.Valid
	}

	input, ok := parseTime(value, c.layouts)
	if !ok {
		t, isTime := fallback.(time.Time)
		if !isTime || t.IsZero() {
			return types.Valid
		}
		input = t
	}

	if c.compare(input, target) {
		return types.Valid
	}
	return types.Invalid(c.description)
}

// compare applies the operator. Equal instants fail both operators.
func (c *DateTimeComparisonCheck) compare(input, target time.Time) bool {
	switch c.operator {
	case OperatorAfter:
		return input.After(target)
	case OperatorBefore:
		return input.Before(target)
	}
	return false
}

// resolveTarget returns the raw value of the compared field, reading the
// table row when a table key is configured.
func (c *DateTimeComparisonCheck) resolveTarget() (string, bool) {
	data := c.data()
	if c.tableKey == "" {
		return data.TryGet(c.field)
	}
	blob, ok := data.TryGet(c.tableKey)
	if !ok {
		return "", false
	}
	cells := c.serializer.Deserialize(blob)
	v, ok := cells[types.TableCellKey(c.field, c.rowIdx)]
	return v, ok
}
