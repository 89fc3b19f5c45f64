package common

import "regexp"

var emailPattern = regexp.MustCompile(`^[\w\. ]+@[\w\. ]+\.\w+$`)

// IsEmail reports whether s looks like an e-mail address. The pattern matches
// the one the journal server uses on registration.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal once they have been sent. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
