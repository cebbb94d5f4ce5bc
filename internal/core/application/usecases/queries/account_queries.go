package queries

import (
	"context"
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrListAccountsQueryIsNotConstructed = errors.New(
		"ListAccountsQuery must be created via NewListAccountsQuery constructor",
	)
	ErrGetAccountQueryIsNotConstructed = errors.New(
		"GetAccountQuery must be created via NewGetAccountQuery constructor",
	)
)

// Account queries select public columns only. The credential digest is read
// by the account repository during authentication and nowhere else.
const accountColumns = `id, username, firstname, lastname`

type ListAccountsQuery struct {
	guard guard.ConstructorGuard
}

func NewListAccountsQuery() ListAccountsQuery {
	return ListAccountsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListAccountsQuery) Validate() error {
	return q.guard.Validate(ErrListAccountsQueryIsNotConstructed)
}

type GetAccountQuery struct {
	accountID int64
	guard     guard.ConstructorGuard
}

func NewGetAccountQuery(accountID int64) (GetAccountQuery, error) {
	if err := positiveID("user id", accountID); err != nil {
		return GetAccountQuery{}, err
	}
	return GetAccountQuery{accountID: accountID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAccountQuery) Validate() error {
	return q.guard.Validate(ErrGetAccountQueryIsNotConstructed)
}

func (q GetAccountQuery) AccountID() int64 {
	return q.accountID
}

// AccountQueryHandler serves both account queries.
type AccountQueryHandler struct {
	db *gorm.DB
}

func NewAccountQueryHandler(db *gorm.DB) AccountQueryHandler {
	return AccountQueryHandler{db: db}
}

// List returns all accounts ordered by id.
func (h AccountQueryHandler) List(ctx context.Context, query ListAccountsQuery) ([]AccountResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	accounts, err := h.fetch(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
	if err != nil {
		return nil, errs.AsPersistence("unable to get users", err)
	}
	return accounts, nil
}

// Get returns one account or ObjectNotFoundError.
func (h AccountQueryHandler) Get(ctx context.Context, query GetAccountQuery) (AccountResponse, error) {
	if err := query.Validate(); err != nil {
		return AccountResponse{}, err
	}

	accounts, err := h.fetch(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, query.AccountID())
	if err != nil {
		return AccountResponse{}, errs.AsPersistence("unable to get user", err)
	}
	if len(accounts) == 0 {
		return AccountResponse{}, errs.NewObjectNotFoundError("user", query.AccountID())
	}
	return accounts[0], nil
}

func (h AccountQueryHandler) fetch(ctx context.Context, sql string, args ...any) ([]AccountResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]AccountResponse, 0)
	for rows.Next() {
		var a AccountResponse
		if err = rows.Scan(&a.ID, &a.Username, &a.FirstName, &a.LastName); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
