package security_test

import (
	"testing"
	"time"

	"storefront/internal/adapters/out/security"
	"storefront/internal/core/domain/model/account"
	"storefront/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = account.Snapshot{ID: 1, Username: "alice", FirstName: "Alice", LastName: "Liddell"}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// tamper swaps one character in the middle of the signature segment.
func tamper(token string) string {
	b := []byte(token)
	i := len(b) - 10
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

func TestTokenAuthority_RoundTrip(t *testing.T) {
	authority := security.NewTokenAuthority(security.Config{TokenSecret: "s3cret", Issuer: "storefront"})

	token, err := authority.Issue(alice)
	require.NoError(t, err)

	snapshot, err := authority.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, alice, snapshot)
}

func TestTokenAuthority_MissingSecret(t *testing.T) {
	authority := security.NewTokenAuthority(security.Config{})

	require.ErrorIs(t, authority.Ready(), errs.ErrConfiguration)

	token, err := authority.Issue(alice)
	require.ErrorIs(t, err, errs.ErrConfiguration)
	assert.Empty(t, token)

	_, err = authority.Verify("whatever")
	require.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestTokenAuthority_Rejections(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := security.Config{TokenSecret: "s3cret", TokenTTL: time.Hour, Issuer: "storefront"}
	authority := security.NewTokenAuthority(cfg, security.WithClock(fixedClock(issuedAt)))

	valid, err := authority.Issue(alice)
	require.NoError(t, err)

	foreign, err := security.NewTokenAuthority(security.Config{TokenSecret: "other", Issuer: "storefront"},
		security.WithClock(fixedClock(issuedAt))).Issue(alice)
	require.NoError(t, err)

	otherIssuer, err := security.NewTokenAuthority(security.Config{TokenSecret: "s3cret", Issuer: "elsewhere"},
		security.WithClock(fixedClock(issuedAt))).Issue(alice)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"user": map[string]any{"id": 1, "username": "alice"},
		"iss":  "storefront",
		"iat":  issuedAt.Unix(),
		"exp":  issuedAt.Add(time.Hour).Unix(),
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry := jwt.MapClaims{"user": map[string]any{"id": 1}, "iss": "storefront"}
	withoutExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, noExpiry).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		clock time.Time
	}{
		{"empty token", "", issuedAt},
		{"garbage", "not-a-token", issuedAt},
		{"tampered signature", tamper(valid), issuedAt},
		{"foreign secret", foreign, issuedAt},
		{"other issuer", otherIssuer, issuedAt},
		{"unexpected algorithm", hs512, issuedAt},
		{"unsigned", unsigned, issuedAt},
		{"missing expiry", withoutExp, issuedAt},
		{"expired", valid, issuedAt.Add(2 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := security.NewTokenAuthority(cfg, security.WithClock(fixedClock(tt.clock)))

			snapshot, err := verifier.Verify(tt.token)

			require.ErrorIs(t, err, errs.ErrUnauthenticated)
			assert.Equal(t, account.Snapshot{}, snapshot)
		})
	}
}

func TestTokenAuthority_TokensAreDistinct(t *testing.T) {
	authority := security.NewTokenAuthority(security.Config{TokenSecret: "s3cret"})

	first, err := authority.Issue(alice)
	require.NoError(t, err)
	second, err := authority.Issue(alice)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
