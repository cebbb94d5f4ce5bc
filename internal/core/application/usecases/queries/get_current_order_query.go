package queries

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetCurrentOrderQueryIsNotConstructed = errors.New(
	"GetCurrentOrderQuery must be created via NewGetCurrentOrderQuery constructor",
)

// GetCurrentOrderQuery finds the open order a user is currently filling.
//
// Example:
//
//	query, _ := NewGetCurrentOrderQuery(userID)
//	current, found, err := handler.Handle(ctx, query)
//	if err == nil && !found {
//	    // the user has no open order
//	}
type GetCurrentOrderQuery struct {
	userID int64
	guard  guard.ConstructorGuard
}

func NewGetCurrentOrderQuery(userID int64) (GetCurrentOrderQuery, error) {
	if err := positiveID("user id", userID); err != nil {
		return GetCurrentOrderQuery{}, err
	}
	return GetCurrentOrderQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCurrentOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentOrderQueryIsNotConstructed)
}

func (q GetCurrentOrderQuery) UserID() int64 {
	return q.userID
}

type GetCurrentOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetCurrentOrderQueryHandler(db *gorm.DB) GetCurrentOrderQueryHandler {
	return GetCurrentOrderQueryHandler{db: db}
}

// Handle returns the most recently created open order of the user. When
// several open orders exist the newest wins, ties broken by the larger id.
// A user without an open order is reported with found == false, not an error.
func (h GetCurrentOrderQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentOrderQuery,
) (current OrderResponse, found bool, err error) {
	if err = query.Validate(); err != nil {
		return OrderResponse{}, false, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = ? AND status = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, query.UserID(), order.Open.String()).Rows()
	if err != nil {
		return OrderResponse{}, false, errs.AsPersistence("unable to get current order", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return OrderResponse{}, false, errs.AsPersistence("unable to get current order", err)
	}
	if len(orders) == 0 {
		return OrderResponse{}, false, nil
	}
	return orders[0], true, nil
}
