package commands

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var ErrCreateAccountCommandIsNotConstructed = errors.New(
	"CreateAccountCommand must be created via NewCreateAccountCommand constructor",
)

// CreateAccountCommand carries a signup request. The password is kept only
// until the handler has digested it.
type CreateAccountCommand struct { //nolint:recvcheck //using for validation
	username  string
	firstName string
	lastName  string
	password  string

	guard guard.ConstructorGuard
}

// NewCreateAccountCommand requires every field to be non-blank. Names are
// stored without surrounding whitespace; the password is kept as typed.
func NewCreateAccountCommand(username, firstName, lastName, password string) (CreateAccountCommand, error) {
	cmd := CreateAccountCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireField("username", username, &cmd.username),
		requireField("firstname", firstName, &cmd.firstName),
		requireField("lastname", lastName, &cmd.lastName),
		requireSecret("password", password, &cmd.password),
	); err != nil {
		return CreateAccountCommand{}, err
	}

	return cmd, nil
}

func (c CreateAccountCommand) Validate() error {
	return c.guard.Validate(ErrCreateAccountCommandIsNotConstructed)
}

func (c CreateAccountCommand) Username() string {
	return c.username
}

func (c CreateAccountCommand) FirstName() string {
	return c.firstName
}

func (c CreateAccountCommand) LastName() string {
	return c.lastName
}

func (c CreateAccountCommand) Password() string {
	return c.password
}

func requireField(param, value string, dst *string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = value
	return nil
}

func requireSecret(param, value string, dst *string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = value
	return nil
}
