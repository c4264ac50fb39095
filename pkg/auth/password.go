package auth

import (
	"errors"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"

	DefaultBcryptCost = 6
)

// PasswordHasher hashes new passwords with one algorithm and verifies hashes of any supported kind.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hash string) (bool, error)
}

type passwordHasher struct {
	kind       string
	bcryptCost int
}

func NewPasswordHasher(kind string, bcryptCost int) PasswordHasher {
	if kind != HasherArgon2id {
		kind = HasherBcrypt
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = DefaultBcryptCost
	}
	return &passwordHasher{kind: kind, bcryptCost: bcryptCost}
}

func (h *passwordHasher) Hash(plaintext string) (string, error) {
	if h.kind == HasherArgon2id {
		return argon2id.CreateHash(plaintext, argon2id.DefaultParams)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare picks the algorithm from the stored hash so users keep working after PASSWORD_HASHER changes.
func (h *passwordHasher) Compare(plaintext, hash string) (bool, error) {
	if strings.HasPrefix(hash, "$argon2id$") {
		return argon2id.ComparePasswordAndHash(plaintext, hash)
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
