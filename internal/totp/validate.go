package totp

import (
	"regexp"
	"strings"
)

var secretPattern = regexp.MustCompile(`(?i)^[A-Z2-7]+=*$`)

// ValidSecret reports whether a candidate secret contains only base32
// characters, optionally followed by padding. Incidental whitespace from
// copy-paste is ignored.
//
// This check is deliberately stricter than DecodeSecret, which skips invalid
// characters: the predicate guards input acceptance while the decoder stays
// best-effort. The two must not be folded together.
func ValidSecret(secret string) bool {
	stripped := strings.Join(strings.Fields(secret), "")
	return secretPattern.MatchString(stripped)
}
