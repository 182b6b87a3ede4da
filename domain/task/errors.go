package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the target task does not exist or does not
	// belong to the caller.
	ErrNotFound = errors.New("task not found")
	// ErrUnauthorized indicates the session has expired or the caller is
	// not allowed to touch the record.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStoreUnavailable indicates a transient store or connectivity
	// failure.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ViolationKind identifies a validation rule that was broken.
type ViolationKind string

const (
	ViolationEmptyTitle         ViolationKind = "empty_title"
	ViolationTitleTooLong       ViolationKind = "title_too_long"
	ViolationDescriptionTooLong ViolationKind = "description_too_long"
	ViolationInvalidStatus      ViolationKind = "invalid_status"
	ViolationInvalidPriority    ViolationKind = "invalid_priority"
)

// Violation is a single field-level validation failure.
type Violation struct {
	Field string        `json:"field"`
	Kind  ViolationKind `json:"kind"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Kind)
}

// ValidationError carries all field-level violations of a candidate
// payload, at most one per field, in field declaration order.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Error()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// First returns the first violation. The Violations slice is never empty
// on a non-nil ValidationError.
func (e *ValidationError) First() Violation {
	return e.Violations[0]
}
