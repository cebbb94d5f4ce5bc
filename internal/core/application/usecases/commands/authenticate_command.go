package commands

import (
	"errors"

	"storefront/internal/pkg/guard"
)

var ErrAuthenticateCommandIsNotConstructed = errors.New(
	"AuthenticateCommand must be created via NewAuthenticateCommand constructor",
)

// AuthenticateCommand is a login attempt.
type AuthenticateCommand struct { //nolint:recvcheck //using for validation
	username string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateCommand(username, password string) (AuthenticateCommand, error) {
	cmd := AuthenticateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireField("username", username, &cmd.username),
		requireSecret("password", password, &cmd.password),
	); err != nil {
		return AuthenticateCommand{}, err
	}

	return cmd, nil
}

func (c AuthenticateCommand) Validate() error {
	return c.guard.Validate(ErrAuthenticateCommandIsNotConstructed)
}

func (c AuthenticateCommand) Username() string {
	return c.username
}

func (c AuthenticateCommand) Password() string {
	return c.password
}
