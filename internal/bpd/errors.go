package bpd

import "fmt"

// Construction error codes (E200-E219).
const (
	ErrVarIndexOutOfRange = "E200" // variable link references a missing variable
	ErrNegativeVarIndex   = "E201" // explicit variable index below zero
	ErrBadBehaviorHandle  = "E202" // behavior handle outside the arena
	ErrBadEventIndex      = "E203" // event index outside the registry
	ErrEmptyLabel         = "E204" // behavior label is required
	ErrEmptyEventName     = "E205" // event name is required
)

// ValidationError represents a graph construction error. Construction errors
// are rejected at the call that builds the offending entity, never deferred
// to serialization.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

func errVarIndex(field string, idx, count int) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("variable index %d out of range (have %d variables)", idx, count),
		Code:    ErrVarIndexOutOfRange,
	}
}
