// Package productrepo persists catalog products with GORM.
package productrepo

import (
	"context"
	"errors"

	"storefront/internal/adapters/out/postgres/sqlstate"
	"storefront/internal/core/domain/model/product"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductDTO struct {
	ID       int64  `gorm:"primaryKey"`
	Name     string `gorm:"column:name"`
	Price    int64  `gorm:"column:price"`
	Category string `gorm:"column:category"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) (*product.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(p)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormProductRepository) Get(ctx context.Context, id int64) (*product.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update writes every column, so clearing the category is possible.
func (r *GormProductRepository) Update(ctx context.Context, p *product.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", p.ID()).
		Updates(map[string]any{
			"name":     p.Name(),
			"price":    p.Price(),
			"category": p.Category(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", p.ID())
	}

	return nil
}

// Delete removes a product. Products referenced by line items stay in place.
func (r *GormProductRepository) Delete(ctx context.Context, id int64) (*product.Product, error) {
	var dtos []ProductDTO
	result := r.db.WithContext(ctx).Clauses(clause.Returning{}).Where("id = ?", id).Delete(&dtos)
	if result.Error != nil {
		if sqlstate.IsForeignKeyViolation(result.Error) {
			return nil, errs.NewInvalidStateError("product is referenced by order line items")
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 || len(dtos) == 0 {
		return nil, errs.NewObjectNotFoundError("product", id)
	}

	return toDomain(dtos[0])
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:       p.ID(),
		Name:     p.Name(),
		Price:    p.Price(),
		Category: p.Category(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	return product.RestoreProduct(dto.ID, dto.Name, dto.Price, dto.Category)
}
