package inventory

import "fmt"

// Code identifies an analysis failure class.
type Code string

const (
	CodeMalformedGrid  Code = "MalformedGrid"
	CodeMissingLabel   Code = "MissingLabel"
	CodeAmbiguousLabel Code = "AmbiguousLabel"
)

// PlanError represents a floor plan analysis error.
type PlanError struct {
	Code    Code
	Message string
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
