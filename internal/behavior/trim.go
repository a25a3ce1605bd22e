package behavior

import (
	"strings"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// BehaviorTrim is the registry name of the Trim behavior.
const BehaviorTrim = "Trim"

// Trim removes leading and trailing whitespace from the field's value.
type Trim struct{}

// NewTrim returns a Trim behavior. It matches types.BehaviorFactory.
func NewTrim() types.Behavior { return Trim{} }

// Apply implements types.Behavior.
func (Trim) Apply(field types.FieldDefinition, data *types.FormData) {
	v, ok := data.TryGet(field.Key)
	if !ok {
		return
	}
	if t := strings.TrimSpace(v); t != v {
		data.Set(field.Key, t)
	}
}
