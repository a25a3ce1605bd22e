// Package behavior holds the registry of named field behaviors.
//
// A field definition names its behaviors; the editing surface resolves the
// names through an Extender and applies the resulting instances after the
// field's value changes. The registry always knows "Empty", a no-op.
package behavior
