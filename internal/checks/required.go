package checks

import (
	"strings"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// DefaultRequiredMessage is reported when a required check has no hint.
const DefaultRequiredMessage = "This field is required"

// RequiredCheck fails for blank values: empty or whitespace only.
type RequiredCheck struct {
	message string
}

// NewRequiredCheck builds a RequiredCheck from its definition. The optional
// "Hint" setting overrides the failure message.
// Returns ErrNilCheckConfig if def is nil.
func NewRequiredCheck(def *types.CheckDefinition) (*RequiredCheck, error) {
	if def == nil {
		return nil, types.ErrNilCheckConfig
	}
	message := def.Settings[SettingHint]
	if message == "" {
		message = DefaultRequiredMessage
	}
	return &RequiredCheck{message: message}, nil
}

// Validate implements types.Check.
func (c *RequiredCheck) Validate(value string, _ any) types.ValidationResult {
	if strings.TrimSpace(value) == "" {
		return types.Invalid(c.message)
	}
	return types.Valid
}
