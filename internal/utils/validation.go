package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Compiled regular expressions for validation
var (
	// Allow alphanumeric, underscore, hyphen, dot. Plan ids are uuids.
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--`)
)

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateStationName checks a station name taken from a request before it is
// looked up in the registry.
func ValidateStationName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("station name cannot be empty")
	}

	if utf8.RuneCountInString(name) > 100 {
		return errors.New("station name too long (max 100 characters)")
	}

	// Check for dangerous characters that could indicate injection attempts
	if dangerousPattern.MatchString(name) {
		return errors.New("station name contains invalid characters")
	}

	return nil
}

// ValidateRestParams checks the rest interval and rest duration.
func ValidateRestParams(interval, minutes int) map[string][]string {
	fieldErrors := make(map[string][]string)

	if interval < 0 {
		fieldErrors["restInterval"] = append(fieldErrors["restInterval"], "rest interval must be non-negative")
	}
	if minutes < 0 {
		fieldErrors["restMinutes"] = append(fieldErrors["restMinutes"], "rest minutes must be non-negative")
	}
	if minutes > 24*60 {
		fieldErrors["restMinutes"] = append(fieldErrors["restMinutes"], "rest minutes too large (max 1440)")
	}

	return fieldErrors
}
