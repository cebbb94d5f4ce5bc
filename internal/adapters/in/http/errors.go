package http

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response produced from an error.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// NewErrorHandler maps errors returned by handlers to Error responses.
// Server-side failures expose only their operation message unless verbose is
// set, in which case the underlying cause is appended.
func NewErrorHandler(verbose bool, logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http_errors")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := describe(err, verbose)
		if body.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}

func describe(err error, verbose bool) Error {
	var (
		httpErr        *echo.HTTPError
		persistenceErr *errs.PersistenceError
	)

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return Error{Code: http.StatusNotFound, Kind: "NotFound", Message: err.Error()}
	case errs.IsInvalidArgument(err):
		return Error{Code: http.StatusBadRequest, Kind: "InvalidArgument", Message: err.Error()}
	case errors.Is(err, errs.ErrInvalidState):
		return Error{Code: http.StatusBadRequest, Kind: "InvalidState", Message: err.Error()}
	case errors.Is(err, errs.ErrConflict):
		return Error{Code: http.StatusConflict, Kind: "Conflict", Message: err.Error()}
	case errors.Is(err, errs.ErrUnauthenticated):
		message := "authentication required"
		var authErr *errs.UnauthenticatedError
		if errors.As(err, &authErr) {
			message = authErr.Reason
		}
		return Error{Code: http.StatusUnauthorized, Kind: "Unauthenticated", Message: message}
	case errors.Is(err, errs.ErrConfiguration):
		return Error{
			Code:    http.StatusInternalServerError,
			Kind:    "ConfigurationError",
			Message: detail("server is not configured", err, verbose),
		}
	case errors.As(err, &persistenceErr):
		return Error{
			Code:    http.StatusInternalServerError,
			Kind:    "PersistenceError",
			Message: detail(persistenceErr.Operation, err, verbose),
		}
	case errors.As(err, &httpErr):
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
		return Error{Code: httpErr.Code, Kind: http.StatusText(httpErr.Code), Message: message}
	default:
		return Error{
			Code:    http.StatusInternalServerError,
			Kind:    "Internal",
			Message: detail("internal server error", err, verbose),
		}
	}
}

func detail(message string, err error, verbose bool) string {
	if !verbose {
		return message
	}
	return message + ": " + err.Error()
}

func isUnauthenticated(err error) bool {
	return errors.Is(err, errs.ErrUnauthenticated)
}
