package http

import (
	"log/slog"
	"strings"

	"storefront/internal/core/domain/model/account"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const accountContextKey = "account"

// TokenRejectionRecorder counts requests turned away by BearerAuth.
type TokenRejectionRecorder interface {
	RecordTokenRejected()
}

// BearerAuth admits requests that carry a valid "Authorization: Bearer" token
// and stores the token's account snapshot in the echo context.
//
// A missing header, a wrong scheme, and a bad token all produce the same
// client response. The specific cause is logged only.
func BearerAuth(verifier ports.TokenVerifier, recorder TokenRejectionRecorder, logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "bearer_auth")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			reject := func(reason string, cause error) error {
				recorder.RecordTokenRejected()
				logger.InfoContext(ctx, "Request rejected",
					"reason", reason,
					"error", cause,
					"path", c.Path(),
				)
				return errs.NewUnauthenticatedError("authentication required")
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return reject("missing authorization header", nil)
			}

			scheme, raw, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				return reject("unsupported authorization scheme", nil)
			}

			snapshot, err := verifier.Verify(strings.TrimSpace(raw))
			if err != nil {
				if errs.IsClassified(err) && !isUnauthenticated(err) {
					// A signing configuration problem is a server fault.
					return err
				}
				return reject("token rejected", err)
			}

			c.Set(accountContextKey, snapshot)
			return next(c)
		}
	}
}

// AccountFromContext returns the snapshot stored by BearerAuth.
func AccountFromContext(c echo.Context) (account.Snapshot, bool) {
	snapshot, ok := c.Get(accountContextKey).(account.Snapshot)
	return snapshot, ok
}
