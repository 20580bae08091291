package enums

import "fmt"

// PlanName identifies a subscription tier. Plan A is the free tier.
type PlanName string

const (
	PlanNameA PlanName = "A"
	PlanNameB PlanName = "B"
	PlanNameC PlanName = "C"
	PlanNameD PlanName = "D"
	PlanNameE PlanName = "E"
)

var validPlanNames = []PlanName{
	PlanNameA,
	PlanNameB,
	PlanNameC,
	PlanNameD,
	PlanNameE,
}

// IsValid reports whether the value matches the canonical plan name enum.
func (p PlanName) IsValid() bool {
	for _, candidate := range validPlanNames {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlanName converts the raw string to PlanName.
func ParsePlanName(value string) (PlanName, error) {
	for _, candidate := range validPlanNames {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plan name %q", value)
}
