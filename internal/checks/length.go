package checks

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// StringLengthCheck fails for values whose length in characters is outside
// [min, max]. Blank values pass; RequiredCheck covers them.
type StringLengthCheck struct {
	message string
	min     int
	max     int
}

// NewStringLengthCheck builds a StringLengthCheck. A max of zero means no
// upper bound. Returns ErrInvalidCheckConfig for negative bounds or max < min.
func NewStringLengthCheck(message string, min, max int) (*StringLengthCheck, error) {
	if max == 0 {
		max = math.MaxInt
	}
	if min < 0 || max < min {
		return nil, fmt.Errorf("%w: length bounds [%d, %d]", types.ErrInvalidCheckConfig, min, max)
	}
	if message == "" {
		message = lengthMessage(min, max)
	}
	return &StringLengthCheck{message: message, min: min, max: max}, nil
}

func lengthMessage(min, max int) string {
	if max == math.MaxInt {
		return fmt.Sprintf("Enter at least %d characters", min)
	}
	return fmt.Sprintf("Enter between %d and %d characters", min, max)
}

// Validate implements types.Check.
func (c *StringLengthCheck) Validate(value string, _ any) types.ValidationResult {
	if value == "" {
		return types.Valid
	}
	n := utf8.RuneCountInString(value)
	if n < c.min || n > c.max {
		return types.Invalid(c.message)
	}
	return types.Valid
}
