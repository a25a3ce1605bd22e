package checks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

var timeFormats = []string{"HHmm", "HHmmss", "HH:mm", "HH:mm:ss"}

// stubSerializer returns a fixed mapping for one known blob.
type stubSerializer struct {
	blob  string
	cells map[string]string
	calls int
}

func (s *stubSerializer) Serialize(map[string]string) string { return s.blob }

func (s *stubSerializer) Deserialize(blob string) map[string]string {
	s.calls++
	if blob != s.blob {
		return map[string]string{}
	}
	return s.cells
}

func dataOf(values map[string]string) types.DataFunc {
	d := types.NewFormData(values)
	return func() *types.FormData { return d }
}

func mustDateTimeCheck(t *testing.T, opts DateTimeComparisonOptions) *DateTimeComparisonCheck {
	t.Helper()
	if opts.Description == "" {
		opts.Description = "lorem ipsum"
	}
	if opts.Serializer == nil {
		opts.Serializer = &stubSerializer{}
	}
	c, err := NewDateTimeComparisonCheck(opts)
	require.NoError(t, err)
	return c
}

func TestDateTimeComparisonCheck(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]string
		operator string
		target   string
		input    string
		formats  []string
		want     bool
	}{
		{
			name:     "stop before start fails greater than",
			values:   map[string]string{"startTime": "11/7/2018", "stopTime": "9/7/2018"},
			operator: OperatorAfter, target: "startTime", input: "stopTime",
			want: false,
		},
		{
			name:     "start before stop passes greater than",
			values:   map[string]string{"startTime": "8/7/2018", "stopTime": "9/7/2018"},
			operator: OperatorAfter, target: "startTime", input: "stopTime",
			want: true,
		},
		{
			name:     "stop before start fails greater than with formats",
			values:   map[string]string{"startTime": "1300", "stopTime": "11:00"},
			operator: OperatorAfter, target: "startTime", input: "stopTime",
			formats: timeFormats,
			want:    false,
		},
		{
			name:     "start before stop passes greater than with formats",
			values:   map[string]string{"startTime": "11:00", "stopTime": "11:30"},
			operator: OperatorAfter, target: "startTime", input: "stopTime",
			formats: timeFormats,
			want:    true,
		},
		{
			name:     "stop before start fails less than",
			values:   map[string]string{"startTime": "11/7/2018", "stopTime": "9/7/2018"},
			operator: OperatorBefore, target: "stopTime", input: "startTime",
			want: false,
		},
		{
			name:     "start before stop passes less than",
			values:   map[string]string{"startTime": "8/7/2018", "stopTime": "9/7/2018"},
			operator: OperatorBefore, target: "stopTime", input: "startTime",
			want: true,
		},
		{
			name:     "stop before start fails less than with formats",
			values:   map[string]string{"startTime": "1300", "stopTime": "11:00"},
			operator: OperatorBefore, target: "stopTime", input: "startTime",
			formats: timeFormats,
			want:    false,
		},
		{
			name:     "start before stop passes less than with formats",
			values:   map[string]string{"startTime": "11:00", "stopTime": "11:30"},
			operator: OperatorBefore, target: "stopTime", input: "startTime",
			formats: timeFormats,
			want:    true,
		},
		{
			name:     "equal instants fail greater than",
			values:   map[string]string{"a": "2018-07-09", "b": "2018-07-09"},
			operator: OperatorAfter, target: "a", input: "b",
			want: false,
		},
		{
			name:     "equal instants fail less than",
			values:   map[string]string{"a": "2018-07-09", "b": "2018-07-09"},
			operator: OperatorBefore, target: "a", input: "b",
			want: false,
		},
		{
			name:     "custom day-first formats",
			values:   map[string]string{"from": "31.12.2018", "to": "01.01.2019"},
			operator: OperatorAfter, target: "from", input: "to",
			formats: []string{"dd.MM.yyyy"},
			want:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := dataOf(tt.values)
			c := mustDateTimeCheck(t, DateTimeComparisonOptions{
				Operator:           tt.operator,
				FieldToCompareWith: tt.target,
				Data:               data,
				Formats:            tt.formats,
			})
			value, _ := data().TryGet(tt.input)
			r := c.Validate(value, time.Time{})
			assert.Equal(t, tt.want, r.IsValid)
			if !tt.want {
				assert.Equal(t, "lorem ipsum", r.Message)
			} else {
				assert.Empty(t, r.Message)
			}
		})
	}
}

func TestDateTimeComparisonCheckAgreesWithTimeOrdering(t *testing.T) {
	instants := []string{"08:00", "08:01", "11:30", "23:59"}
	for _, a := range instants {
		for _, b := range instants {
			ta, err := time.Parse("15:04", a)
			require.NoError(t, err)
			tb, err := time.Parse("15:04", b)
			require.NoError(t, err)

			data := dataOf(map[string]string{"other": b})
			after := mustDateTimeCheck(t, DateTimeComparisonOptions{
				Operator: OperatorAfter, FieldToCompareWith: "other", Data: data, Formats: timeFormats,
			})
			before := mustDateTimeCheck(t, DateTimeComparisonOptions{
				Operator: OperatorBefore, FieldToCompareWith: "other", Data: data, Formats: timeFormats,
			})
			assert.Equal(t, ta.After(tb), after.Validate(a, nil).IsValid, "%s > %s", a, b)
			assert.Equal(t, ta.Before(tb), before.Validate(a, nil).IsValid, "%s < %s", a, b)
		}
	}
}

func TestDateTimeComparisonCheckWithinTable(t *testing.T) {
	const blob = `"columnStartRow__1":"11:00","columnStopRow__1":"12:00"`
	serializer := &stubSerializer{
		blob: blob,
		cells: map[string]string{
			"columnStartRow__1": "11:00",
			"columnStopRow__1":  "12:00",
		},
	}
	c := mustDateTimeCheck(t, DateTimeComparisonOptions{
		Operator:           OperatorBefore,
		FieldToCompareWith: "columnStopRow",
		Data:               dataOf(map[string]string{"tableKey": blob}),
		Serializer:         serializer,
		TableKey:           "tableKey",
		RowIdx:             1,
		Formats:            timeFormats,
	})

	assert.True(t, c.Validate("11:00", time.Time{}).IsValid)
	assert.False(t, c.Validate("12:30", time.Time{}).IsValid)
	assert.Equal(t, 2, serializer.calls, "the row blob is decoded on every validation")
}

func TestDateTimeComparisonCheckTableRowBoundaries(t *testing.T) {
	cells := map[string]string{
		"stop__1": "09:00",
		"stop__2": "12:00",
		"stop__3": "18:00",
	}
	serializer := &stubSerializer{blob: "rows", cells: cells}
	data := dataOf(map[string]string{"shifts": "rows"})

	tests := []struct {
		name string
		row  int
		want bool
	}{
		{"first row", 1, false},
		{"middle row", 2, true},
		{"last row", 3, true},
		{"row zero is not a row", 0, true},
		{"row past the end", 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustDateTimeCheck(t, DateTimeComparisonOptions{
				Operator:           OperatorBefore,
				FieldToCompareWith: "stop",
				Data:               data,
				Serializer:         serializer,
				TableKey:           "shifts",
				RowIdx:             tt.row,
				Formats:            timeFormats,
			})
			assert.Equal(t, tt.want, c.Validate("10:00", nil).IsValid)
		})
	}
}

func TestDateTimeComparisonCheckSkipsWithoutTarget(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
		input  string
	}{
		{"target absent", map[string]string{}, "11:00"},
		{"target unparseable", map[string]string{"other": "soon"}, "11:00"},
		{"target blank", map[string]string{"other": ""}, "11:00"},
		{"input unparseable without fallback", map[string]string{"other": "12:00"}, "later"},
		{"input blank without fallback", map[string]string{"other": "12:00"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustDateTimeCheck(t, DateTimeComparisonOptions{
				Operator: OperatorAfter, FieldToCompareWith: "other", Data: dataOf(tt.values), Formats: timeFormats,
			})
			assert.True(t, c.Validate(tt.input, time.Time{}).IsValid)
		})
	}
}

func TestDateTimeComparisonCheckUsesFallback(t *testing.T) {
	data := dataOf(map[string]string{"other": "2018-07-09"})
	c := mustDateTimeCheck(t, DateTimeComparisonOptions{
		Operator: OperatorAfter, FieldToCompareWith: "other", Data: data,
	})

	early := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, c.Validate("not a date", early).IsValid)
	assert.True(t, c.Validate("not a date", late).IsValid)
	assert.True(t, c.Validate("not a date", "not a time").IsValid)
}

func TestDateTimeComparisonCheckTableMissingBlob(t *testing.T) {
	c := mustDateTimeCheck(t, DateTimeComparisonOptions{
		Operator:           OperatorBefore,
		FieldToCompareWith: "stop",
		Data:               dataOf(map[string]string{}),
		TableKey:           "shifts",
		RowIdx:             1,
	})
	assert.True(t, c.Validate("10:00", nil).IsValid)
}

func TestNewDateTimeComparisonCheckErrors(t *testing.T) {
	data := dataOf(nil)
	tests := []struct {
		name    string
		opts    DateTimeComparisonOptions
		wantErr error
	}{
		{
			name:    "unknown operator",
			opts:    DateTimeComparisonOptions{Operator: ">=", FieldToCompareWith: "a", Data: data},
			wantErr: types.ErrInvalidCheckConfig,
		},
		{
			name:    "no field",
			opts:    DateTimeComparisonOptions{Operator: ">", Data: data},
			wantErr: types.ErrInvalidCheckConfig,
		},
		{
			name:    "no data accessor",
			opts:    DateTimeComparisonOptions{Operator: ">", FieldToCompareWith: "a"},
			wantErr: types.ErrNilDataFunc,
		},
		{
			name:    "table without serializer",
			opts:    DateTimeComparisonOptions{Operator: "<", FieldToCompareWith: "a", Data: data, TableKey: "t"},
			wantErr: types.ErrNilSerializer,
		},
		{
			name:    "negative row",
			opts:    DateTimeComparisonOptions{Operator: "<", FieldToCompareWith: "a", Data: data, RowIdx: -1},
			wantErr: types.ErrInvalidCheckConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDateTimeComparisonCheck(tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
