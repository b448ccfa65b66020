package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades hash latency against offline brute-force resistance.
// 10 keeps an interactive login under ~100ms on current hardware.
const bcryptCost = 10

// HashPassword returns a salted bcrypt digest of password. Each call salts
// freshly, so two digests of the same password differ and are only
// comparable through CheckPassword.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored digest. It
// deliberately collapses all failure modes (mismatch, malformed digest)
// into false.
func CheckPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
