package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedHash reports a stored hash that is not a recognizable bcrypt
// encoding. It never fires for a plain wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

// bcrypt reads at most 72 bytes of input. GenerateFromPassword errors on
// longer passwords, so both Hash and Verify truncate to keep the pair
// consistent: any password hashes, and verifies against its own hash.
const maxPasswordBytes = 72

// Hasher hashes and verifies passwords with bcrypt. The zero cost falls
// back to the bcrypt default.
type Hasher struct {
	cost int
}

func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash returns the salted bcrypt hash of plain. The salt is generated
// internally, so two hashes of the same password differ.
func (h Hasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash. A wrong password
// is (false, nil); only an unreadable hash is an error.
func (h Hasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncate(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrMalformedHash
	}
}

func truncate(plain string) []byte {
	b := []byte(plain)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
