// Package validate runs the checks of a whole form against its data.
//
// Top-level fields are validated against their FormData value. A datatable
// field's columns are validated once per row found in the field's blob,
// with the row's table key and index passed to the column checks.
package validate

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/formkit/internal/checks"
	"github.com/mesh-intelligence/formkit/internal/tabledata"
	"github.com/mesh-intelligence/formkit/pkg/types"
)

// FieldResult is the outcome of one field, or one table cell.
type FieldResult struct {
	Key string `json:"key"`

	// Table and Row are set for table cells. Row is 1-based.
	Table string `json:"table,omitempty"`
	Row   int    `json:"row,omitempty"`

	types.ValidationResult
}

// Report lists the result of every validated field in form order.
type Report struct {
	Results []FieldResult `json:"results"`
}

// IsValid reports whether every field passed.
func (r Report) IsValid() bool {
	for _, res := range r.Results {
		if !res.IsValid {
			return false
		}
	}
	return true
}

// Failures returns the failed results.
func (r Report) Failures() []FieldResult {
	var out []FieldResult
	for _, res := range r.Results {
		if !res.IsValid {
			out = append(out, res)
		}
	}
	return out
}

// Validator builds checks from field definitions and runs them.
type Validator struct {
	factory    *checks.Factory
	serializer types.TableDataSerializer
	log        *slog.Logger
}

// New returns a Validator. A nil factory means the built-in check types; a
// nil serializer means the JSON table format.
func New(factory *checks.Factory, serializer types.TableDataSerializer, log *slog.Logger) *Validator {
	if factory == nil {
		factory = checks.NewFactory()
	}
	if serializer == nil {
		serializer = tabledata.NewJSONSerializer()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Validator{factory: factory, serializer: serializer, log: log}
}

// Validate checks every field of form against data. Validation failures are
// reported in the Report; an error means a field's checks could not be built.
func (v *Validator) Validate(form types.FormDefinition, data *types.FormData) (Report, error) {
	if data == nil {
		data = types.NewFormData(nil)
	}
	env := checks.Env{
		Data:       func() *types.FormData { return data },
		Serializer: v.serializer,
	}

	var report Report
	for _, field := range form.Fields {
		if field.Type == types.FieldTypeLabel {
			continue
		}
		res, err := v.field(field, data, env)
		if err != nil {
			return Report{}, err
		}
		report.Results = append(report.Results, res)

		if field.Type == types.FieldTypeDataTable {
			rows, err := v.table(field, data, env)
			if err != nil {
				return Report{}, err
			}
			report.Results = append(report.Results, rows...)
		}
	}
	v.log.Debug("form validated", "fields", len(form.Fields), "results", len(report.Results), "valid", report.IsValid())
	return report, nil
}

func (v *Validator) field(field types.FieldDefinition, data *types.FormData, env checks.Env) (FieldResult, error) {
	check, err := v.factory.CreateAggregate(field, env)
	if err != nil {
		return FieldResult{}, err
	}
	value, _ := data.TryGet(field.Key)
	return FieldResult{Key: field.Key, ValidationResult: check.Validate(value, nil)}, nil
}

func (v *Validator) table(field types.FieldDefinition, data *types.FormData, env checks.Env) ([]FieldResult, error) {
	blob, _ := data.TryGet(field.Key)
	cells := v.serializer.Deserialize(blob)

	var results []FieldResult
	for _, row := range tabledata.Rows(cells) {
		rowEnv := env
		rowEnv.TableKey = field.Key
		rowEnv.RowIdx = row
		for _, column := range field.Fields {
			if column.Type == types.FieldTypeLabel {
				continue
			}
			check, err := v.factory.CreateAggregate(column, rowEnv)
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", field.Key, err)
			}
			value := cells[types.TableCellKey(column.Key, row)]
			results = append(results, FieldResult{
				Key:              column.Key,
				Table:            field.Key,
				Row:              row,
				ValidationResult: check.Validate(value, nil),
			})
		}
	}
	return results, nil
}
