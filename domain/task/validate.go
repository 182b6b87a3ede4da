package task

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLen is the maximum title length in code points after trimming.
	MaxTitleLen = 200
	// MaxDescriptionLen is the maximum description length in code points
	// after trimming.
	MaxDescriptionLen = 1000
)

// Raw is a candidate task payload as received from the outside, before
// any validation. Description distinguishes absent (nil) from empty.
type Raw struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
}

// Validated is a task payload that has passed validation and is safe to
// submit to the store. Description is nil when absent or empty after
// trimming.
type Validated struct {
	Title       string
	Description *string
	Status      Status
	Priority    Priority
}

// Validate checks a raw candidate against the field constraints and
// returns either a validated payload or the list of violations, one per
// failing field. It is pure and performs no I/O.
func Validate(raw Raw) (Validated, *ValidationError) {
	var violations []Violation
	var out Validated

	title := strings.TrimSpace(raw.Title)
	switch {
	case title == "":
		violations = append(violations, Violation{Field: "title", Kind: ViolationEmptyTitle})
	case utf8.RuneCountInString(title) > MaxTitleLen:
		violations = append(violations, Violation{Field: "title", Kind: ViolationTitleTooLong})
	default:
		out.Title = title
	}

	if raw.Description != nil {
		desc := strings.TrimSpace(*raw.Description)
		if utf8.RuneCountInString(desc) > MaxDescriptionLen {
			violations = append(violations, Violation{Field: "description", Kind: ViolationDescriptionTooLong})
		} else if desc != "" {
			out.Description = &desc
		}
		// Empty after trimming normalizes to absent.
	}

	status := Status(raw.Status)
	if !status.Valid() {
		violations = append(violations, Violation{Field: "status", Kind: ViolationInvalidStatus})
	} else {
		out.Status = status
	}

	priority := Priority(raw.Priority)
	if !priority.Valid() {
		violations = append(violations, Violation{Field: "priority", Kind: ViolationInvalidPriority})
	} else {
		out.Priority = priority
	}

	if len(violations) > 0 {
		return Validated{}, &ValidationError{Violations: violations}
	}
	return out, nil
}
