package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"storefront/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCredentialHasher digests secrets as bcrypt(hex(HMAC-SHA256(pepper, secret))).
//
// The HMAC step binds every digest to the server pepper and keeps the bcrypt
// input at a fixed 64 bytes, below bcrypt's 72-byte truncation limit.
type BcryptCredentialHasher struct {
	pepper []byte
	cost   int

	// decoy is compared against when there is no stored digest, so a lookup
	// miss costs as much as a wrong secret.
	decoy []byte
}

// NewBcryptCredentialHasher validates the work factor and prepares the decoy digest.
func NewBcryptCredentialHasher(cfg Config) (*BcryptCredentialHasher, error) {
	cost := cfg.hashCost()
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errs.NewValueIsOutOfRangeError("hash cost", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	h := &BcryptCredentialHasher{
		pepper: []byte(cfg.Pepper),
		cost:   cost,
	}

	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("generate decoy seed: %w", err)
	}
	decoy, err := bcrypt.GenerateFromPassword(h.premix(hex.EncodeToString(seed)), cost)
	if err != nil {
		return nil, fmt.Errorf("generate decoy digest: %w", err)
	}
	h.decoy = decoy

	return h, nil
}

// Digest derives a storable digest. Every call uses a fresh bcrypt salt.
func (h *BcryptCredentialHasher) Digest(secret string) (string, error) {
	if secret == "" {
		return "", errs.NewValueIsRequiredError("password")
	}
	digest, err := bcrypt.GenerateFromPassword(h.premix(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether secret matches digest. bcrypt compares in constant
// time; an empty digest is checked against the decoy and always fails.
func (h *BcryptCredentialHasher) Verify(digest, secret string) bool {
	target := []byte(digest)
	if len(target) == 0 {
		target = h.decoy
	}
	err := bcrypt.CompareHashAndPassword(target, h.premix(secret))
	return err == nil && digest != ""
}

func (h *BcryptCredentialHasher) premix(secret string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(secret))
	sum := mac.Sum(nil)

	out := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(out, sum)
	return out
}
