package errs

import (
	"errors"
	"fmt"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidState   = errors.New("invalid state")
	ErrConflict       = errors.New("object already exists")
)

// ObjectNotFoundError reports that no object matched the lookup key.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s %v", ErrObjectNotFound, e.ParamName, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidStateError reports an operation the aggregate's current state forbids.
type InvalidStateError struct {
	Reason string
	Cause  error
}

func NewInvalidStateError(reason string) *InvalidStateError {
	return &InvalidStateError{Reason: reason}
}

func NewInvalidStateErrorWithCause(reason string, cause error) *InvalidStateError {
	return &InvalidStateError{Reason: reason, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrInvalidState, e.Reason), e.Cause)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ConflictError reports a uniqueness violation on ParamName.
type ConflictError struct {
	ParamName string
	Value     any
	Cause     error
}

func NewConflictError(paramName string, value any) *ConflictError {
	return &ConflictError{ParamName: paramName, Value: value}
}

func NewConflictErrorWithCause(paramName string, value any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *ConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is %v", ErrConflict, e.ParamName, sanitize(e.Value)), e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
