// Package core holds pure domain rules that do not depend on Gin or GORM.
package core

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxPasswordBytes is bcrypt's input limit; longer passwords would be silently truncated.
const MaxPasswordBytes = 72

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// NormalizeEmail trims surrounding whitespace.
func NormalizeEmail(s string) string {
	return strings.TrimSpace(s)
}

// PasswordTooLong reports whether pw exceeds bcrypt's byte limit.
func PasswordTooLong(pw string) bool {
	return len(pw) > MaxPasswordBytes
}

// NormalizeName trims a display name; blank names become nil.
func NormalizeName(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// NormalizeTitle trims a task title and collapses inner runs of whitespace.
func NormalizeTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TitleCase upper-cases the first letter of every word ("buy milk" -> "Buy Milk").
func TitleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
