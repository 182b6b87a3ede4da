package user

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// MinFullNameLen is the minimum full name length in code points.
	MinFullNameLen = 2
	// MaxFullNameLen is the maximum full name length in code points.
	MaxFullNameLen = 100
)

// ErrInvalidName is returned when a profile full name is outside the
// allowed length after trimming.
var ErrInvalidName = errors.New("full name must be between 2 and 100 characters")

// ValidateFullName trims and checks a candidate full name. A nil or
// empty-after-trim input clears the name (returns nil, nil); otherwise
// the trimmed name must be 2-100 code points.
func ValidateFullName(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	name := strings.TrimSpace(*raw)
	if name == "" {
		return nil, nil
	}
	n := utf8.RuneCountInString(name)
	if n < MinFullNameLen || n > MaxFullNameLen {
		return nil, ErrInvalidName
	}
	return &name, nil
}
