package answerhash

import "strings"

// Normalize canonicalizes a raw answer for hashing and comparison: it strips
// leading and trailing whitespace and lowercases with a locale-insensitive
// fold. Punctuation, internal spacing, and Unicode composition are preserved
// verbatim. The same function must be applied when an answer is registered
// and when it is checked; Normalize is pure and idempotent so either side
// may apply it more than once without changing the result.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
