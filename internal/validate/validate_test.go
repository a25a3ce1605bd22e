package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/formkit/internal/checks"
	"github.com/mesh-intelligence/formkit/internal/tabledata"
	"github.com/mesh-intelligence/formkit/pkg/types"
)

func shiftForm() types.FormDefinition {
	return types.FormDefinition{
		Title: "Shift report",
		Fields: []types.FieldDefinition{
			{Key: "caption", Type: types.FieldTypeLabel, Prompt: "Report"},
			{
				Key:  "name",
				Type: types.FieldTypeString,
				Checks: []types.CheckDefinition{
					{Type: checks.TypeRequired, Settings: map[string]string{checks.SettingHint: "name is required"}},
				},
			},
			{
				Key:  "shifts",
				Type: types.FieldTypeDataTable,
				Fields: []types.FieldDefinition{
					{Key: "start", Type: types.FieldTypeDate, Settings: map[string]string{types.SettingFormat: "HH:mm"}},
					{
						Key:      "stop",
						Type:     types.FieldTypeDate,
						Settings: map[string]string{types.SettingFormat: "HH:mm"},
						Checks: []types.CheckDefinition{
							{Type: checks.TypeDateTime, Settings: map[string]string{
								checks.SettingHint:               "stop must be after start",
								checks.SettingCompareOperator:    checks.OperatorAfter,
								checks.SettingFieldToCompareWith: "start",
							}},
						},
					},
				},
			},
		},
	}
}

func TestValidateForm(t *testing.T) {
	s := tabledata.NewJSONSerializer()
	data := types.NewFormData(map[string]string{
		"name": "Anna",
		"shifts": s.Serialize(map[string]string{
			"start__1": "08:00", "stop__1": "12:00",
			"start__2": "13:00", "stop__2": "12:30",
		}),
	})

	report, err := New(nil, nil, nil).Validate(shiftForm(), data)
	require.NoError(t, err)
	assert.False(t, report.IsValid())

	assert.Equal(t, []FieldResult{
		{Key: "name", ValidationResult: types.Valid},
		{Key: "shifts", ValidationResult: types.Valid},
		{Key: "start", Table: "shifts", Row: 1, ValidationResult: types.Valid},
		{Key: "stop", Table: "shifts", Row: 1, ValidationResult: types.Valid},
		{Key: "start", Table: "shifts", Row: 2, ValidationResult: types.Valid},
		{Key: "stop", Table: "shifts", Row: 2, ValidationResult: types.Invalid("stop must be after start")},
	}, report.Results)

	assert.Equal(t, []FieldResult{
		{Key: "stop", Table: "shifts", Row: 2, ValidationResult: types.Invalid("stop must be after start")},
	}, report.Failures())
}

func TestValidateEmptyForm(t *testing.T) {
	report, err := New(nil, nil, nil).Validate(shiftForm(), nil)
	require.NoError(t, err)
	assert.False(t, report.IsValid())
	require.Len(t, report.Results, 2, "no rows in an absent table")
	assert.Equal(t, types.Invalid("name is required"), report.Results[0].ValidationResult)
}

func TestValidateMalformedTable(t *testing.T) {
	data := types.NewFormData(map[string]string{"name": "Anna", "shifts": "{{not json"})
	report, err := New(nil, nil, nil).Validate(shiftForm(), data)
	require.NoError(t, err)
	assert.True(t, report.IsValid())
	assert.Len(t, report.Results, 2)
}

func TestValidateBadCheckDefinition(t *testing.T) {
	form := shiftForm()
	form.Fields[2].Fields[1].Checks = append(form.Fields[2].Fields[1].Checks, types.CheckDefinition{Type: "nope"})
	data := types.NewFormData(map[string]string{
		"shifts": tabledata.NewJSONSerializer().Serialize(map[string]string{"stop__1": "10:00"}),
	})

	_, err := New(nil, nil, nil).Validate(form, data)
	assert.ErrorIs(t, err, types.ErrUnknownCheckType)
}

func TestValidateCustomFactory(t *testing.T) {
	f := checks.NewFactory()
	f.Register("never", func(types.CheckDefinition, checks.Env) (types.Check, error) {
		return types.CheckFunc(func(string, any) types.ValidationResult { return types.Invalid("never") }), nil
	})
	form := types.FormDefinition{Fields: []types.FieldDefinition{
		{Key: "x", Type: types.FieldTypeString, Checks: []types.CheckDefinition{{Type: "never"}}},
	}}

	report, err := New(f, nil, nil).Validate(form, types.NewFormData(nil))
	require.NoError(t, err)
	assert.Equal(t, []FieldResult{{Key: "x", ValidationResult: types.Invalid("never")}}, report.Failures())
}
