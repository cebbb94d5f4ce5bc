package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/core/domain/model/account"
	"storefront/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenSecretSetting = "TOKEN_SECRET"

// tokenClaims is the JWT payload: the account snapshot under "user" plus the
// registered iat/exp/jti/iss/sub claims.
type tokenClaims struct {
	User account.Snapshot `json:"user"`
	jwt.RegisteredClaims
}

// TokenAuthority issues and verifies HS256 bearer tokens. Tokens are stateless;
// they stop working only at expiry or when the secret changes.
type TokenAuthority struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type TokenAuthorityOption func(*TokenAuthority)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) TokenAuthorityOption {
	return func(a *TokenAuthority) {
		a.now = now
	}
}

func NewTokenAuthority(cfg Config, opts ...TokenAuthorityOption) *TokenAuthority {
	a := &TokenAuthority{
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.tokenTTL(),
		issuer: cfg.Issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ready returns ConfigurationError when no signing secret is configured.
func (a *TokenAuthority) Ready() error {
	if len(a.secret) == 0 {
		return errs.NewConfigurationError(tokenSecretSetting)
	}
	return nil
}

// Issue signs a token for snapshot. The secret is checked before anything is signed.
func (a *TokenAuthority) Issue(snapshot account.Snapshot) (string, error) {
	if err := a.Ready(); err != nil {
		return "", err
	}

	now := a.now()
	claims := tokenClaims{
		User: snapshot,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(snapshot.ID, 10),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm, and expiry of raw and returns the
// snapshot it carries. Every rejection is an UnauthenticatedError whose
// reason is only meant for logs.
func (a *TokenAuthority) Verify(raw string) (account.Snapshot, error) {
	if err := a.Ready(); err != nil {
		return account.Snapshot{}, err
	}
	if raw == "" {
		return account.Snapshot{}, errs.NewUnauthenticatedError("token is missing")
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(a.issuer))
	}

	var claims tokenClaims
	token, err := jwt.NewParser(parserOpts...).ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return account.Snapshot{}, errs.NewUnauthenticatedErrorWithCause(rejectionReason(err), err)
	}
	if !token.Valid {
		return account.Snapshot{}, errs.NewUnauthenticatedError("token is invalid")
	}

	return claims.User, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "token is malformed"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "token signature is invalid"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token is expired"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "token is unverifiable"
	default:
		return "token is invalid"
	}
}
