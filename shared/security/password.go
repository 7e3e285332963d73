package security

import "github.com/matthewhartstonge/argon2"

// Hasher performs one-way password hashing with argon2id. The work factor is
// injected once at construction, never read from ambient state.
type Hasher struct {
	config argon2.Config
}

// NewHasher creates a Hasher with the given time cost. A timeCost of 0 falls
// back to the library default.
func NewHasher(timeCost uint32) Hasher {
	config := argon2.DefaultConfig()
	if timeCost > 0 {
		config.TimeCost = timeCost
	}

	return Hasher{config: config}
}

// Hash returns the encoded argon2id hash of plaintext. Each call uses a fresh
// random salt, so two hashes of the same password differ.
func (h Hasher) Hash(plaintext string) (string, error) {
	encoded, err := h.config.HashEncoded([]byte(plaintext))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// Verify reports whether plaintext matches the encoded hash. A malformed
// stored hash verifies as false; it never surfaces an error to the caller.
func (h Hasher) Verify(plaintext, encoded string) bool {
	ok, err := argon2.VerifyEncoded([]byte(plaintext), []byte(encoded))
	if err != nil {
		return false
	}

	return ok
}
