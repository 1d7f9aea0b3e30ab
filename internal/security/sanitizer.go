package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var htmlPolicy = bluemonday.StrictPolicy()

// SanitizeString removes potentially dangerous characters
func SanitizeString(input string) string {
	// Trim whitespace
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Limit length
	if len(input) > 1000 {
		input = input[:1000]
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeDisplayName strips markup and control characters from a
// user-supplied display name and enforces the length bound.
func SanitizeDisplayName(input string) string {
	name := SanitizeString(SanitizeHTML(input))
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

// ValidateEmail does a cheap structural check; real verification is the
// mail provider's problem.
func ValidateEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) bool {
	return len(password) >= 8 && len(password) <= 72 // bcrypt input cap
}
