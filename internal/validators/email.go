package validators

import "regexp"

// EmailRegex is intentionally loose: one @, no whitespace, a dot in the
// domain. Deliverability is the mail provider's problem.
var EmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsEmailValid(email string) bool {
	return EmailRegex.MatchString(email)
}
