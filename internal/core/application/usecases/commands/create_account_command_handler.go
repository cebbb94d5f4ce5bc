package commands

import (
	"context"

	"storefront/internal/core/domain/model/account"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

const createAccountFailed = "unable to create user"

// SignedInAccount is an account snapshot together with a bearer token issued
// for it.
type SignedInAccount struct {
	Token   string
	Account account.Snapshot
}

// CreateAccountCommandHandler registers a new account and signs it in.
type CreateAccountCommandHandler struct {
	uowFactory AccountUoWFactory
	hasher     ports.CredentialHasher
	issuer     ports.TokenIssuer
}

func NewCreateAccountCommandHandler(
	uowFactory AccountUoWFactory,
	hasher ports.CredentialHasher,
	issuer ports.TokenIssuer,
) CreateAccountCommandHandler {
	return CreateAccountCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		issuer:     issuer,
	}
}

// Handle stores the account and returns it with a fresh token.
//
// The token configuration is checked before the password is digested, so a
// misconfigured deployment fails fast with ConfigurationError and no account
// is written. A taken username yields ConflictError, whether it is caught by
// the pre-check or by the store's unique constraint.
func (h *CreateAccountCommandHandler) Handle(ctx context.Context, cmd CreateAccountCommand) (SignedInAccount, error) {
	if err := cmd.Validate(); err != nil {
		return SignedInAccount{}, err
	}

	if err := h.issuer.Ready(); err != nil {
		return SignedInAccount{}, err
	}

	digest, err := h.hasher.Digest(cmd.Password())
	if err != nil {
		return SignedInAccount{}, err
	}

	candidate, err := account.NewAccount(cmd.Username(), cmd.FirstName(), cmd.LastName(), digest)
	if err != nil {
		return SignedInAccount{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return SignedInAccount{}, errs.AsPersistence(createAccountFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AccountRepository()
	taken, err := repo.ExistsByUsername(ctx, cmd.Username())
	if err != nil {
		return SignedInAccount{}, errs.AsPersistence(createAccountFailed, err)
	}
	if taken {
		return SignedInAccount{}, errs.NewConflictError("username", cmd.Username())
	}

	stored, err := repo.Add(ctx, candidate)
	if err != nil {
		return SignedInAccount{}, errs.AsPersistence(createAccountFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return SignedInAccount{}, errs.AsPersistence(createAccountFailed, err)
	}

	snapshot := stored.Snapshot()
	token, err := h.issuer.Issue(snapshot)
	if err != nil {
		return SignedInAccount{}, err
	}

	return SignedInAccount{Token: token, Account: snapshot}, nil
}
