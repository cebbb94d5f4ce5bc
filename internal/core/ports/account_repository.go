package ports

import (
	"context"

	"storefront/internal/core/domain/model/account"
)

// AccountRepository defines the persistence contract for accounts.
type AccountRepository interface {
	// Add persists a new account and returns it with its store-assigned
	// identifier. A duplicate username is reported as ConflictError.
	Add(ctx context.Context, a *account.Account) (*account.Account, error)

	// GetByUsername retrieves an account including its credential digest.
	// Returns ObjectNotFoundError if no account has that username.
	GetByUsername(ctx context.Context, username string) (*account.Account, error)

	// ExistsByUsername reports whether the username is already taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
