package checks

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// Check type tags accepted by CheckDefinition.Type.
const (
	TypeRequired = "required"
	TypeLength   = "length"
	TypeRange    = "range"
	TypeRegex    = "regex"
	TypeDateTime = "datetime"
)

// Check setting keys.
const (
	SettingHint                    = "Hint"
	SettingMin                     = "Min"
	SettingMax                     = "Max"
	SettingRegEx                   = "RegEx"
	SettingCompareOperator         = "CompareOperator"
	SettingFieldToCompareWith      = "FieldToCompareWith"
	SettingSpecificDateTimeFormats = "SpecificDateTimeFormats"
)

// Env carries what a check may need beyond its own definition.
type Env struct {
	// Data returns the current form values.
	Data types.DataFunc

	// Serializer decodes datatable blobs.
	Serializer types.TableDataSerializer

	// TableKey and RowIdx locate the table row a column check runs in.
	// They apply when the check definition does not set its own.
	TableKey string
	RowIdx   int

	// Formats are the field's own date/time patterns, used when a
	// datetime check has no specific formats.
	Formats []string
}

// Constructor builds a check from its definition.
type Constructor func(def types.CheckDefinition, env Env) (types.Check, error)

// Factory maps check type tags to constructors. The built-in types are
// registered by NewFactory; Register adds or replaces types. Factory is safe
// for concurrent use.
type Factory struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewFactory returns a Factory with the built-in check types.
func NewFactory() *Factory {
	f := &Factory{constructors: make(map[string]Constructor)}
	f.constructors[TypeRequired] = newRequired
	f.constructors[TypeLength] = newLength
	f.constructors[TypeRange] = newRange
	f.constructors[TypeRegex] = newRegex
	f.constructors[TypeDateTime] = newDateTime
	return f
}

// Register adds a check type, replacing any constructor of the same name.
func (f *Factory) Register(typ string, c Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[typ] = c
}

// Types returns the registered check type tags, sorted.
func (f *Factory) Types() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.constructors))
	for name := range f.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds the check described by def.
// Returns ErrUnknownCheckType if the type is not registered.
func (f *Factory) Create(def types.CheckDefinition, env Env) (types.Check, error) {
	f.mu.RLock()
	c, ok := f.constructors[def.Type]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownCheckType, def.Type)
	}
	return c(def, env)
}

// CreateAggregate builds all checks of a field into one AggregateCheck.
// The field's "Format" setting becomes the default date/time format.
func (f *Factory) CreateAggregate(field types.FieldDefinition, env Env) (*AggregateCheck, error) {
	if len(env.Formats) == 0 {
		if format, ok := field.Setting(types.SettingFormat); ok && format != "" {
			env.Formats = []string{format}
		}
	}
	built := make([]types.Check, 0, len(field.Checks))
	for i, def := range field.Checks {
		c, err := f.Create(def, env)
		if err != nil {
			return nil, fmt.Errorf("field %q check %d: %w", field.Key, i, err)
		}
		built = append(built, c)
	}
	return NewAggregateCheck(built...), nil
}

func newRequired(def types.CheckDefinition, _ Env) (types.Check, error) {
	return NewRequiredCheck(&def)
}

func newLength(def types.CheckDefinition, _ Env) (types.Check, error) {
	min, err := intSetting(def, SettingMin, 0)
	if err != nil {
		return nil, err
	}
	max, err := intSetting(def, SettingMax, 0)
	if err != nil {
		return nil, err
	}
	return NewStringLengthCheck(def.Settings[SettingHint], min, max)
}

func newRange(def types.CheckDefinition, _ Env) (types.Check, error) {
	min, err := floatSetting(def, SettingMin)
	if err != nil {
		return nil, err
	}
	max, err := floatSetting(def, SettingMax)
	if err != nil {
		return nil, err
	}
	return NewRangeCheck(def.Settings[SettingHint], min, max)
}

func newRegex(def types.CheckDefinition, _ Env) (types.Check, error) {
	var patterns []string
	for _, p := range strings.Split(def.Settings[SettingRegEx], "\n") {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return NewStringRegExCheck(def.Settings[SettingHint], patterns...)
}

func newDateTime(def types.CheckDefinition, env Env) (types.Check, error) {
	opts := DateTimeComparisonOptions{
		Description:        def.Settings[SettingHint],
		Operator:           def.Settings[SettingCompareOperator],
		FieldToCompareWith: def.Settings[SettingFieldToCompareWith],
		Data:               env.Data,
		Serializer:         env.Serializer,
		TableKey:           env.TableKey,
		RowIdx:             env.RowIdx,
		Formats:            env.Formats,
	}
	if tableKey, ok := def.Settings[types.SettingTableKey]; ok {
		opts.TableKey = tableKey
	}
	if _, ok := def.Settings[types.SettingRowIdx]; ok {
		row, err := intSetting(def, types.SettingRowIdx, 0)
		if err != nil {
			return nil, err
		}
		opts.RowIdx = row
	}
	if formats := def.Settings[SettingSpecificDateTimeFormats]; formats != "" {
		opts.Formats = strings.Split(formats, "|")
	}
	return NewDateTimeComparisonCheck(opts)
}

func intSetting(def types.CheckDefinition, key string, dflt int) (int, error) {
	raw, ok := def.Settings[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return dflt, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", types.ErrInvalidCheckConfig, key, raw)
	}
	return n, nil
}

func floatSetting(def types.CheckDefinition, key string) (float64, error) {
	raw, ok := def.Settings[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", types.ErrInvalidCheckConfig, key)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", types.ErrInvalidCheckConfig, key, raw)
	}
	return n, nil
}
