// Package checks implements the validation checks of the form engine and the
// factory that builds them from CheckDefinitions.
//
// Checks are constructed once per field definition and invoked on every
// edit. They hold no state besides their configuration, so one instance may
// serve concurrent callers as long as the FormData it reads is not mutated
// at the same time.
package checks
