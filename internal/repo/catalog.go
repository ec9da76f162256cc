package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/fabric_billing/internal/apperr"
	"github.com/Skotchmaster/fabric_billing/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, wrap("products.get", id, err)
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	items := make([]models.Product, 0)
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, wrap("products.list", category, err)
	}
	return items, nil
}

// SearchProducts matches term as a case-insensitive substring of the name.
func (r *GormRepo) SearchProducts(ctx context.Context, term string) ([]models.Product, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"

	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, wrap("products.search", term, err)
	}
	return items, nil
}

func (r *GormRepo) Categories(ctx context.Context) ([]string, error) {
	out := make([]string, 0)
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &out).Error; err != nil {
		return nil, wrap("products.categories", "", err)
	}
	return out, nil
}

// DecrementStock subtracts qty from the product's stock in place. With
// allowNegative unset the update only applies while stock >= qty.
func (r *GormRepo) DecrementStock(ctx context.Context, id uint, qty int, allowNegative bool) error {
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id)
	if !allowNegative {
		q = q.Where("stock >= ?", qty)
	}

	res := q.Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return wrap("products.decrement_stock", id, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	if _, err := r.GetProduct(ctx, id); err != nil {
		return fmt.Errorf("products.decrement_stock %d: %w", id, apperr.ErrNotFound)
	}
	return fmt.Errorf("products.decrement_stock %d qty %d: %w", id, qty, apperr.ErrInsufficientStock)
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, wrap("products.count", "", err)
	}
	return total, nil
}

func (r *GormRepo) CreateProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	if err := r.DB.WithContext(ctx).Create(&products).Error; err != nil {
		return wrap("products.create", len(products), err)
	}
	return nil
}
