package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateNodeName validates a material or unit name from a problem file.
// It rejects names that would be unusable as display labels or cache key
// components.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Format-specific restrictions (such as the flat text dialect's character
// set) are checked separately by the format parsers.
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProblem, "node name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidProblem, "node name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProblem, "node name contains control characters: %q", name)
		}
	}

	return nil
}

// flatNameRegex matches names representable in the flat text dialect,
// where whitespace and punctuation carry structure.
var flatNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateFlatName validates a node name for the flat text dialect.
// Flat files separate tokens with whitespace, commas, and arrows, so
// names are restricted to letters, digits, dots, underscores, and dashes.
func ValidateFlatName(name string) error {
	if err := ValidateNodeName(name); err != nil {
		return err
	}

	if !flatNameRegex.MatchString(name) {
		return New(ErrCodeInvalidProblem, "name not representable in flat text: %q", name)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// runIDRegex matches run identifiers as produced by the archive (UUIDs),
// while tolerating other opaque ASCII identifiers of sane length.
var runIDRegex = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// ValidateRunID validates a run identifier from an API path or CLI argument
// before it reaches a storage backend.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "run id cannot be empty")
	}

	if !runIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid run id: %q", id)
	}

	return nil
}
