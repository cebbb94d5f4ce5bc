// Package accountrepo persists accounts with GORM.
package accountrepo

import (
	"context"
	"errors"

	"storefront/internal/adapters/out/postgres/sqlstate"
	"storefront/internal/core/domain/model/account"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
)

// AccountDTO maps the accounts table. It is the only type that carries the
// credential digest outside the domain model.
type AccountDTO struct {
	ID               int64  `gorm:"primaryKey"`
	Username         string `gorm:"column:username"`
	FirstName        string `gorm:"column:firstname"`
	LastName         string `gorm:"column:lastname"`
	CredentialDigest string `gorm:"column:credential_digest"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

// GormAccountRepository implements ports.AccountRepository using GORM.
type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Add inserts an account. A username collision that slipped past the caller's
// pre-check surfaces here as a unique violation.
func (r *GormAccountRepository) Add(ctx context.Context, a *account.Account) (*account.Account, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	dto := AccountDTO{
		Username:         a.Username(),
		FirstName:        a.FirstName(),
		LastName:         a.LastName(),
		CredentialDigest: a.Digest(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if sqlstate.IsUniqueViolation(err) {
			return nil, errs.NewConflictError("username", a.Username())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAccountRepository) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("username", username)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&AccountDTO{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	return account.RestoreAccount(dto.ID, dto.Username, dto.FirstName, dto.LastName, dto.CredentialDigest)
}
