package answerhash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// legacySeparator joins the hex digest and the salt in a legacy hash.
const legacySeparator = "$salt:"

// legacySaltBytes is the number of random bytes in a freshly generated salt.
const legacySaltBytes = 32

// GenerateSalt returns a new per-question salt: 32 random bytes encoded as
// padded URL-safe base64. Salts are generated once at registration time and
// never reused across questions.
func GenerateSalt() (string, error) {
	salt := make([]byte, legacySaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(salt), nil
}

// HashLegacy produces a legacy stored hash: the hex SHA-256 digest of
// text||salt, the literal "$salt:" separator, then the salt.
//
// This scheme is not memory hard and is kept only so hashes issued by older
// releases keep verifying. New registrations use Hash instead.
func HashLegacy(text, salt string) string {
	digest := sha256.Sum256([]byte(text + salt))
	return hex.EncodeToString(digest[:]) + legacySeparator + salt
}

// verifyLegacy checks a candidate against a legacy stored hash. It fails
// closed: the separator must occur exactly once, the recomputed digest must
// equal the stored digest, and the reconstructed string must equal the
// stored value byte for byte. The double check guards against the separator
// or salt format drifting between storage and verification.
func verifyLegacy(candidate, stored string) bool {
	if strings.Count(stored, legacySeparator) != 1 {
		return false
	}
	expectedDigest, salt, ok := strings.Cut(stored, legacySeparator)
	if !ok {
		return false
	}

	sum := sha256.Sum256([]byte(candidate + salt))
	computedDigest := hex.EncodeToString(sum[:])

	digestMatch := subtle.ConstantTimeCompare([]byte(computedDigest), []byte(expectedDigest)) == 1
	fullMatch := subtle.ConstantTimeCompare([]byte(computedDigest+legacySeparator+salt), []byte(stored)) == 1
	return digestMatch && fullMatch
}
