package commands

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/account"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

const authenticateFailed = "unable to authenticate user"

// AuthenticateCommandHandler checks a username and password pair.
type AuthenticateCommandHandler struct {
	uowFactory AccountUoWFactory
	hasher     ports.CredentialHasher
}

func NewAuthenticateCommandHandler(uowFactory AccountUoWFactory, hasher ports.CredentialHasher) AuthenticateCommandHandler {
	return AuthenticateCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

// Handle returns the account snapshot and true when the password matches.
//
// An unknown username and a wrong password both return false with a nil
// error. For an unknown username the password is still checked against a
// decoy, so response time does not reveal whether the account exists.
// The lookup runs outside a transaction.
func (h *AuthenticateCommandHandler) Handle(
	ctx context.Context,
	cmd AuthenticateCommand,
) (account.Snapshot, bool, error) {
	if err := cmd.Validate(); err != nil {
		return account.Snapshot{}, false, err
	}

	found, err := h.uowFactory.Create().AccountRepository().GetByUsername(ctx, cmd.Username())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.hasher.Verify("", cmd.Password())
		return account.Snapshot{}, false, nil
	}
	if err != nil {
		return account.Snapshot{}, false, errs.AsPersistence(authenticateFailed, err)
	}

	if !h.hasher.Verify(found.Digest(), cmd.Password()) {
		return account.Snapshot{}, false, nil
	}

	return found.Snapshot(), true, nil
}
