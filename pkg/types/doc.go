// Package types defines the form data model, the Check, Behavior, Provider
// and FormStore interfaces, and the standard error values shared by the
// formkit validation and suggestion engines.
//
// Forms are declared as data: a FieldDefinition carries a key, a type tag,
// display texts and a string settings map. The editing surface owns a
// FormData per form session, runs each field's checks against it, applies the
// field's behaviors after edits and asks a suggestion Provider for
// autocomplete candidates.
package types
