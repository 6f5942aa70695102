package crypto

import "golang.org/x/crypto/bcrypt"

// hashCost matches the work factor the service has always used for stored
// credentials; changing it only affects newly created hashes.
const hashCost = 10

// HashPassword hashes plaintext using bcrypt with a per-call random salt.
func HashPassword(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), hashCost)
}

// ComparePassword compares plaintext to a stored hash. Any mismatch,
// including a malformed hash, is reported as a non-nil error.
func ComparePassword(hash []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain))
}
