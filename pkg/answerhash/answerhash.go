// Package answerhash implements the stored representations of security
// question answers and the verification rules for each of them.
//
// Two formats exist side by side. Newly registered answers are hashed with
// Argon2id and stored as a self-describing PHC string. Hashes issued by
// older releases are a salted SHA-256 digest and remain verifiable without
// forcing a re-enrollment. The format of a stored hash is recognised from
// its shape alone; verification never tries both formats speculatively.
package answerhash

import "strings"

// Format identifies which hashing scheme produced a stored hash.
type Format int

const (
	// FormatUnknown means the stored value matches neither recognised shape.
	FormatUnknown Format = iota

	// FormatLegacy is the salted SHA-256 scheme ("<hex>$salt:<salt>").
	FormatLegacy

	// FormatModern is the Argon2id PHC scheme ("$argon2id$...").
	FormatModern
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy-sha256"
	case FormatModern:
		return "argon2id"
	default:
		return "unknown"
	}
}

// DetectFormat inspects a stored hash and reports which scheme issued it.
// The modern prefix is checked first since an Argon2id string can never
// contain the legacy separator in a valid position.
func DetectFormat(stored string) Format {
	if strings.HasPrefix(stored, modernPrefix) {
		return FormatModern
	}
	if strings.Count(stored, legacySeparator) == 1 {
		return FormatLegacy
	}
	return FormatUnknown
}

// Verify checks a candidate answer against a stored hash, dispatching on the
// stored hash's format. The candidate must already be normalized (see
// Normalize). Any malformed stored value, parse failure, or internal
// verification error resolves to false; Verify never panics and never
// reports an error distinct from "does not match".
func Verify(candidate, stored string) bool {
	switch DetectFormat(stored) {
	case FormatModern:
		return verifyModern(candidate, stored)
	case FormatLegacy:
		return verifyLegacy(candidate, stored)
	default:
		return false
	}
}
