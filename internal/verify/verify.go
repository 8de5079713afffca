package verify

import "fmt"

// Result lists the violations found by a validator.
type Result struct {
	// Valid is true when Findings is empty.
	Valid bool

	// Findings describes each violated law, in discovery order.
	Findings []string
}

// validator accumulates findings during traversal.
type validator struct {
	findings []string
}

func (v *validator) addFinding(format string, args ...any) {
	v.findings = append(v.findings, fmt.Sprintf(format, args...))
}

func (v *validator) result() Result {
	return Result{Valid: len(v.findings) == 0, Findings: v.findings}
}
