package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher interface {
	Hash(email, password string) (string, error)
	Verify(hash, email, password string) bool
}

// BcryptHasher bcrypts the SHA-256 hex digest of "email::password", which keeps
// the input under bcrypt's 72-byte limit for any email and password. Each hash
// carries its own random salt, so verification looks the account up by email first.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func credential(email, password string) []byte {
	sum := sha256.Sum256([]byte(email + "::" + password))
	return []byte(hex.EncodeToString(sum[:]))
}

func (h BcryptHasher) Hash(email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(credential(email, password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Verify(hash, email, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), credential(email, password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
