// Package validate holds the signup form predicates. They are pure
// functions over the raw form strings so the handlers can build
// per-field error messages.
package validate

import "regexp"

var (
	usernameRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
	passwordRE = regexp.MustCompile(`^.{3,20}$`)
	emailRE    = regexp.MustCompile(`^[\S]+@[\S]+\.[\S]+$`)
)

// Username reports whether s is 3-20 chars of letters, digits, _ or -.
func Username(s string) bool {
	return s != "" && usernameRE.MatchString(s)
}

// Password reports whether s is 3-20 chars of anything.
func Password(s string) bool {
	return s != "" && passwordRE.MatchString(s)
}

// Email reports whether s looks like an address. Empty is fine: the
// field is optional.
func Email(s string) bool {
	return s == "" || emailRE.MatchString(s)
}
