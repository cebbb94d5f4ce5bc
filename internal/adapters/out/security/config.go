// Package security implements the credential and token services: peppered
// bcrypt digests for account secrets and HS256 bearer tokens carrying an
// account snapshot.
//
// Both services take an explicit Config at construction so tests and
// deployments can swap secrets without touching process-wide state.
package security

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultHashCost = bcrypt.DefaultCost
	DefaultTokenTTL = 24 * time.Hour
)

// Config holds the server-held secrets and tunables.
type Config struct {
	// TokenSecret signs and verifies bearer tokens. An empty secret makes every
	// token operation fail with ConfigurationError.
	TokenSecret string

	// Pepper is mixed into every credential before hashing. It is server-wide
	// and never stored next to the digests.
	Pepper string

	// HashCost is the bcrypt work factor. Zero means DefaultHashCost.
	HashCost int

	// TokenTTL bounds token lifetime. Zero means DefaultTokenTTL.
	TokenTTL time.Duration

	// Issuer is written to and required in the iss claim when non-empty.
	Issuer string
}

func (c Config) hashCost() int {
	if c.HashCost == 0 {
		return DefaultHashCost
	}
	return c.HashCost
}

func (c Config) tokenTTL() time.Duration {
	if c.TokenTTL <= 0 {
		return DefaultTokenTTL
	}
	return c.TokenTTL
}
