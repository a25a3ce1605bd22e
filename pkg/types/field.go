package types

// Field type tags carried by FieldDefinition.Type.
const (
	FieldTypeLabel       = "label"
	FieldTypeString      = "string"
	FieldTypeBool        = "bool"
	FieldTypeInt         = "int"
	FieldTypeDouble      = "double"
	FieldTypeDate        = "date"
	FieldTypeKeyedOption = "keyedoption"
	FieldTypeOption      = "option"
	FieldTypeDataTable   = "datatable"
	FieldTypeRichText    = "richtext"
)

// Field setting keys read by the checks and suggestion providers.
const (
	SettingFormat         = "Format"
	SettingDataConnection = "dataconnection"
	SettingTableKey       = "tableKey"
	SettingRowIdx         = "rowIdx"
)

// FieldDefinition declares one form field. Production and parsing of field
// definitions happen outside this module; the core only reads them.
type FieldDefinition struct {
	Key         string               `json:"key" yaml:"key"`
	Type        string               `json:"type" yaml:"type"`
	Prompt      string               `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Hint        string               `json:"hint,omitempty" yaml:"hint,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Settings    map[string]string    `json:"settings,omitempty" yaml:"settings,omitempty"`
	Checks      []CheckDefinition    `json:"checks,omitempty" yaml:"checks,omitempty"`
	Behaviors   []BehaviorDefinition `json:"behaviors,omitempty" yaml:"behaviors,omitempty"`

	// Fields holds the column definitions of a datatable field.
	Fields []FieldDefinition `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Setting returns the named setting and whether it is present.
func (f FieldDefinition) Setting(name string) (string, bool) {
	v, ok := f.Settings[name]
	return v, ok
}

// CheckDefinition names a check type and its settings.
type CheckDefinition struct {
	Type     string            `json:"type" yaml:"type"`
	Settings map[string]string `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// BehaviorDefinition names a registered behavior and its settings.
type BehaviorDefinition struct {
	Name     string            `json:"name" yaml:"name"`
	Settings map[string]string `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// FormDefinition is an ordered set of fields.
type FormDefinition struct {
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldDefinition `json:"fields" yaml:"fields"`
}
