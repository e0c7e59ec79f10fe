// Package sanitizer normalizes user-supplied input before it reaches
// validation or storage.
package sanitizer

import "strings"

// NormalizeEmail lowercases and trims an email address. Accounts store their
// email in this form, so every lookup must pass through here first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
