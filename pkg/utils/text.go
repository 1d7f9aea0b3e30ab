package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify converts a product name to a URL-safe slug: lowercase,
// non-alphanumeric runs collapsed to single dashes.
func Slugify(input string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash

	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// FormatAmount renders an amount in cents as a decimal string ("2.00"),
// the value format hosted checkout providers expect.
func FormatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
