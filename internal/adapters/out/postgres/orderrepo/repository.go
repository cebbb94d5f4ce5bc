package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/adapters/out/postgres/sqlstate"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository on db, which is usually the
// transaction of a unit of work.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order and returns the stored row.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&dto).Error; err != nil {
		return nil, translateOrderWrite(err, aggregate.UserID())
	}

	return toDomain(dto)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order by ID and holds its row lock until the
// transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// UpdateStatus writes the order's current status.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID()).
		Update("status", aggregate.Status().String())
	if result.Error != nil {
		if sqlstate.IsCheckViolation(result.Error) {
			return errs.NewValueIsInvalidError("status")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	return nil
}

// AddLineItem inserts a line item and returns the stored row.
func (r *GormOrderRepository) AddLineItem(ctx context.Context, item *order.LineItem) (*order.LineItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	dto := lineItemFromDomain(item)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if sqlstate.IsForeignKeyViolation(err) {
			if sqlstate.Constraint(err) == "order_line_items_order_id_fkey" {
				return nil, errs.NewObjectNotFoundError("order", item.OrderID())
			}
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"product id", fmt.Errorf("product %d does not exist", item.ProductID()),
			)
		}
		return nil, err
	}

	return lineItemToDomain(dto)
}

// Delete removes an order and, through ON DELETE CASCADE, its line items.
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) (*order.Order, error) {
	var dtos []OrderDTO
	result := r.db.WithContext(ctx).Clauses(clause.Returning{}).Where("id = ?", id).Delete(&dtos)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(dtos) == 0 {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	return toDomain(dtos[0])
}

func (r *GormOrderRepository) get(db *gorm.DB, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := db.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func translateOrderWrite(err error, userID int64) error {
	switch {
	case sqlstate.IsForeignKeyViolation(err):
		return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("user %d does not exist", userID))
	case sqlstate.IsCheckViolation(err):
		return errs.NewValueIsInvalidError("status")
	default:
		return err
	}
}
