package checks

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// RangeCheck fails for numbers outside [min, max] and for non-blank values
// that are not numbers. Blank values pass.
type RangeCheck struct {
	message string
	min     float64
	max     float64
}

// NewRangeCheck builds a RangeCheck.
// Returns ErrInvalidCheckConfig for NaN bounds or max < min.
func NewRangeCheck(message string, min, max float64) (*RangeCheck, error) {
	if math.IsNaN(min) || math.IsNaN(max) || max < min {
		return nil, fmt.Errorf("%w: range bounds [%v, %v]", types.ErrInvalidCheckConfig, min, max)
	}
	if message == "" {
		message = fmt.Sprintf("Enter a number between %v and %v", min, max)
	}
	return &RangeCheck{message: message, min: min, max: max}, nil
}

// Validate implements types.Check.
func (c *RangeCheck) Validate(value string, _ any) types.ValidationResult {
	value = strings.TrimSpace(value)
	if value == "" {
		return types.Valid
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || n < c.min || n > c.max {
		return types.Invalid(c.message)
	}
	return types.Valid
}
