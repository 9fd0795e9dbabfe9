package utils

import (
	"errors"
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// String length limits
const (
	MaxIDLength          = 64
	MaxNameLength        = 64
	MaxProfileNameLength = 64
)

// SafeIDPattern allows alphanumeric, hyphens, underscores
var SafeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var (
	ErrInvalidID   = errors.New("invalid id")
	ErrInvalidName = errors.New("invalid name")
)

// ValidateID checks that id is a safe identifier
func ValidateID(id, field string) error {
	if id == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidID, field)
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidID, field, MaxIDLength)
	}
	if !SafeIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %s may only contain letters, digits, '-' and '_'", ErrInvalidID, field)
	}
	return nil
}

// ValidateName checks a human-entered label: valid UTF-8, at most max
// runes, no control characters
func ValidateName(name, field string, max int) error {
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidName, field)
	}
	if n := utf8.RuneCountInString(name); n > max {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidName, field, max)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %s contains control characters", ErrInvalidName, field)
		}
	}
	return nil
}
