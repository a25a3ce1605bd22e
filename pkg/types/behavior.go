package types

// Behavior is a named unit of field logic beyond validation. The editing
// surface calls Apply after the field's value changed.
type Behavior interface {
	Apply(field FieldDefinition, data *FormData)
}

// BehaviorFactory creates a fresh Behavior instance.
type BehaviorFactory func() Behavior

// BehaviorEmpty is the name of the built-in no-op behavior.
const BehaviorEmpty = "Empty"

// EmptyBehavior does nothing.
type EmptyBehavior struct{}

// Apply implements Behavior.
func (EmptyBehavior) Apply(FieldDefinition, *FormData) {}
