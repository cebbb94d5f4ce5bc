// Package errs provides standardized error types for the storefront application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for every failure the core can report:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: invalid arguments
//   - ObjectNotFoundError: an object cannot be found
//   - InvalidStateError: an aggregate is not in a state that allows the operation
//   - ConflictError: a uniqueness rule was violated
//   - UnauthenticatedError: a credential or token was rejected
//   - ConfigurationError: a required server setting is missing
//   - PersistenceError: the backing store failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel so errors.Is works across wrapping
//
// Callers classify errors with errors.Is against the sentinels or errors.As against
// the struct types; the HTTP adapter maps them onto status codes.
package errs
