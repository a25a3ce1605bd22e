package checks

import "github.com/mesh-intelligence/formkit/pkg/types"

// AggregateCheck runs its checks in order and reports the first failure.
type AggregateCheck struct {
	checks []types.Check
}

// NewAggregateCheck combines checks. Nil entries are skipped.
func NewAggregateCheck(checks ...types.Check) *AggregateCheck {
	kept := make([]types.Check, 0, len(checks))
	for _, c := range checks {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &AggregateCheck{checks: kept}
}

// Len returns the number of combined checks.
func (a *AggregateCheck) Len() int {
	return len(a.checks)
}

// Validate implements types.Check.
func (a *AggregateCheck) Validate(value string, fallback any) types.ValidationResult {
	for _, c := range a.checks {
		if r := c.Validate(value, fallback); !r.IsValid {
			return r
		}
	}
	return types.Valid
}
