package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext password into a stored credential and checks
// login attempts against it. Implementations must be safe for concurrent use.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(encoded, plain string) bool
}

// BcryptHasher is the default password hasher. Unlike the legacy HMAC digest,
// bcrypt embeds a per-password salt, so two users with the same password get
// different stored values and credential lookup must go by email first.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Compare(encoded, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain)) == nil
}

// HMACHasher reproduces the unsalted HMAC-SHA256 digest used by earlier
// deployments. It exists only so records created by those deployments keep
// validating; new records should use BcryptHasher.
type HMACHasher struct{}

func (HMACHasher) Hash(plain string) (string, error) {
	mac := hmac.New(sha256.New, []byte(plain))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func (h HMACHasher) Compare(encoded, plain string) bool {
	digest, err := h.Hash(plain)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(digest), []byte(encoded))
}
