package ports

import "storefront/internal/core/domain/model/account"

// CredentialHasher turns plaintext secrets into digests and checks them.
type CredentialHasher interface {
	// Digest derives a storable digest from secret.
	Digest(secret string) (string, error)

	// Verify reports whether secret matches digest. An empty digest never
	// matches, but still costs the same as a real comparison.
	Verify(digest, secret string) bool
}

// TokenIssuer signs bearer tokens for authenticated accounts.
type TokenIssuer interface {
	// Ready returns ConfigurationError when tokens cannot be signed.
	Ready() error

	// Issue signs a token carrying snapshot. Returns ConfigurationError when
	// the signing secret is not configured.
	Issue(snapshot account.Snapshot) (string, error)
}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	// Verify returns the snapshot encoded in raw, or UnauthenticatedError when
	// the token is absent, malformed, expired, or carries a bad signature.
	Verify(raw string) (account.Snapshot, error)
}
