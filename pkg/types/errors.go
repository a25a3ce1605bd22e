package types

import "errors"

// Configuration errors. They signal a wiring defect in the caller and are
// returned from constructors, never from Validate.
var (
	ErrNilCheckConfig     = errors.New("check configuration is nil")
	ErrInvalidCheckConfig = errors.New("invalid check configuration")
	ErrUnknownCheckType   = errors.New("unknown check type")
	ErrNilDataFunc        = errors.New("form data accessor is nil")
	ErrNilSerializer      = errors.New("table data serializer is nil")
)

// Behavior registry errors.
var (
	ErrInvalidBehaviorName = errors.New("behavior name must not be empty")
	ErrNilBehaviorFactory  = errors.New("behavior factory is nil")
	ErrBehaviorNotFound    = errors.New("behavior not registered")
)

// Suggestion errors.
var (
	ErrInvalidConnection = errors.New("invalid connection string")
	ErrBackendStatus     = errors.New("search backend returned an error status")
	ErrNilClient         = errors.New("rest client is nil")
	ErrSourceNotFound    = errors.New("suggestion source not found")
)

// Store errors.
var (
	ErrNotFound        = errors.New("form record not found")
	ErrInvalidID       = errors.New("invalid form record ID")
	ErrInvalidData     = errors.New("invalid form record data")
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
