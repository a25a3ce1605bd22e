package checks

import (
	"fmt"
	"regexp"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// StringRegExCheck passes values matching any of its patterns. Blank values
// pass.
type StringRegExCheck struct {
	message  string
	patterns []*regexp.Regexp
}

// NewStringRegExCheck compiles patterns and builds the check.
// Returns ErrInvalidCheckConfig when no pattern is given or one fails to compile.
func NewStringRegExCheck(message string, patterns ...string) (*StringRegExCheck, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no patterns", types.ErrInvalidCheckConfig)
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		rx, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", types.ErrInvalidCheckConfig, p, err)
		}
		compiled = append(compiled, rx)
	}
	if message == "" {
		message = "The value has an invalid format"
	}
	return &StringRegExCheck{message: message, patterns: compiled}, nil
}

// Validate implements types.Check.
func (c *StringRegExCheck) Validate(value string, _ any) types.ValidationResult {
	if value == "" {
		return types.Valid
	}
	for _, rx := range c.patterns {
		if rx.MatchString(value) {
			return types.Valid
		}
	}
	return types.Invalid(c.message)
}
