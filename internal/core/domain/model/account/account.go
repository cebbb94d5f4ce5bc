// Package account models storefront users and the identity snapshot carried in
// bearer tokens.
package account

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrAccountIsNotConstructed is returned when an Account was not created through
// NewAccount or RestoreAccount.
var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")

// Account is a registered user. The credential digest is write-only from the
// caller's perspective: it is read only by the credential hasher and the
// repository, and never appears in a Snapshot.
type Account struct {
	id        int64
	username  string
	firstName string
	lastName  string
	digest    string
	guard     guard.ConstructorGuard
}

// Snapshot is the public view of an account. It is what handlers return and
// what tokens carry.
type Snapshot struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// NewAccount builds an account that has not been stored yet. All fields are
// required; digest must already be the output of a credential hasher.
func NewAccount(username, firstName, lastName, digest string) (*Account, error) {
	a := &Account{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		required("username", username, &a.username),
		required("firstname", firstName, &a.firstName),
		required("lastname", lastName, &a.lastName),
		required("credential digest", digest, &a.digest),
	); err != nil {
		return nil, err
	}
	return a, nil
}

// RestoreAccount rebuilds a stored account.
func RestoreAccount(id int64, username, firstName, lastName, digest string) (*Account, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("account id", fmt.Errorf("%d is not greater than 0", id))
	}
	a, err := NewAccount(username, firstName, lastName, digest)
	if err != nil {
		return nil, err
	}
	a.id = id
	return a, nil
}

func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

func (a *Account) ID() int64         { return a.id }
func (a *Account) Username() string  { return a.username }
func (a *Account) FirstName() string { return a.firstName }
func (a *Account) LastName() string  { return a.lastName }
func (a *Account) Digest() string    { return a.digest }

// Snapshot returns the account without its credential digest.
func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		ID:        a.id,
		Username:  a.username,
		FirstName: a.firstName,
		LastName:  a.lastName,
	}
}

func required(param, value string, dst *string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = value
	return nil
}
