package queries

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetClosedOrdersQueryIsNotConstructed = errors.New(
	"GetClosedOrdersQuery must be created via NewGetClosedOrdersQuery constructor",
)

// GetClosedOrdersQuery lists a user's order history.
type GetClosedOrdersQuery struct {
	userID int64
	guard  guard.ConstructorGuard
}

func NewGetClosedOrdersQuery(userID int64) (GetClosedOrdersQuery, error) {
	if err := positiveID("user id", userID); err != nil {
		return GetClosedOrdersQuery{}, err
	}
	return GetClosedOrdersQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetClosedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetClosedOrdersQueryIsNotConstructed)
}

func (q GetClosedOrdersQuery) UserID() int64 {
	return q.userID
}

type GetClosedOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetClosedOrdersQueryHandler(db *gorm.DB) GetClosedOrdersQueryHandler {
	return GetClosedOrdersQueryHandler{db: db}
}

// Handle returns the user's closed orders, most recent first. An empty slice
// means the user has never closed an order.
func (h GetClosedOrdersQueryHandler) Handle(ctx context.Context, query GetClosedOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = ? AND status = ?
		ORDER BY created_at DESC, id DESC
	`, query.UserID(), order.Closed.String()).Rows()
	if err != nil {
		return nil, errs.AsPersistence("unable to get closed orders", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return nil, errs.AsPersistence("unable to get closed orders", err)
	}
	return orders, nil
}
