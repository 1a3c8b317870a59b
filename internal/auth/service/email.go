package service

import "strings"

// NormalizeEmail trims the address and lower-cases its domain part. The local part is
// left untouched since it may be case-sensitive.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}
