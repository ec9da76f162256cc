package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/fabric_billing/internal/apperr"
	"github.com/Skotchmaster/fabric_billing/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// Migrate is idempotent.
func (r *GormRepo) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w: %w", apperr.ErrStorage, err)
	}
	return nil
}

// Transaction runs fn against a repo bound to one database transaction.
// Returning an error from fn rolls everything back.
func (r *GormRepo) Transaction(ctx context.Context, fn func(tx *GormRepo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{DB: tx})
	})
}

func wrap(op string, id any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", op, id, apperr.ErrNotFound)
	}
	return fmt.Errorf("%s %v: %w: %w", op, id, apperr.ErrStorage, err)
}
