package errs

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConfiguration   = errors.New("configuration is invalid")
	ErrPersistence     = errors.New("persistence failure")
)

// UnauthenticatedError reports a rejected credential or token. Reason may be
// shown to clients, so it must not tell apart the ways a credential can fail;
// that detail belongs in Cause.
type UnauthenticatedError struct {
	Reason string
	Cause  error
}

func NewUnauthenticatedError(reason string) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason}
}

func NewUnauthenticatedErrorWithCause(reason string, cause error) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason, Cause: cause}
}

func (e *UnauthenticatedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUnauthenticated, e.Reason), e.Cause)
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

// ConfigurationError reports a missing or unusable server setting.
type ConfigurationError struct {
	Setting string
	Cause   error
}

func NewConfigurationError(setting string) *ConfigurationError {
	return &ConfigurationError{Setting: setting}
}

func NewConfigurationErrorWithCause(setting string, cause error) *ConfigurationError {
	return &ConfigurationError{Setting: setting, Cause: cause}
}

func (e *ConfigurationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is not set", ErrConfiguration, e.Setting), e.Cause)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// PersistenceError wraps a backing store failure. Operation is the message safe to
// show to clients; Cause carries the driver error for logs and diagnostics.
type PersistenceError struct {
	Operation string
	Cause     error
}

func NewPersistenceError(operation string, cause error) *PersistenceError {
	return &PersistenceError{Operation: operation, Cause: cause}
}

func (e *PersistenceError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrPersistence, e.Operation), e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}

// AsPersistence wraps err into a PersistenceError unless it is nil or already
// classified by this package.
func AsPersistence(operation string, err error) error {
	if err == nil || IsClassified(err) {
		return err
	}
	return NewPersistenceError(operation, err)
}

// IsClassified reports whether err unwraps to one of this package's sentinels.
func IsClassified(err error) bool {
	for _, sentinel := range []error{
		ErrValueIsRequired,
		ErrValueIsInvalid,
		ErrValueIsOutOfRange,
		ErrObjectNotFound,
		ErrInvalidState,
		ErrConflict,
		ErrUnauthenticated,
		ErrConfiguration,
		ErrPersistence,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
