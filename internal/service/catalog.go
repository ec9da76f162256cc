package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/fabric_billing/internal/apperr"
	"github.com/Skotchmaster/fabric_billing/internal/models"
	"github.com/Skotchmaster/fabric_billing/internal/repo"
	"github.com/Skotchmaster/fabric_billing/pkg/logging"
)

type CatalogService struct {
	Repo *repo.GormRepo

	// AllowNegativeStock lets a sale go through even when it drives stock
	// below zero.
	AllowNegativeStock bool
}

// WithRepo returns a copy of the service bound to r, typically a transaction.
func (s *CatalogService) WithRepo(r *repo.GormRepo) *CatalogService {
	cp := *s
	cp.Repo = r
	return &cp
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

// ListByCategory returns every product for an empty category, otherwise the
// exact matches. Results are ordered by id.
func (s *CatalogService) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx, strings.TrimSpace(category))
}

// Search is a case-insensitive substring match on product name.
func (s *CatalogService) Search(ctx context.Context, term string) ([]models.Product, error) {
	if term == "" {
		return s.ListByCategory(ctx, "")
	}
	return s.Repo.SearchProducts(ctx, term)
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.Repo.Categories(ctx)
}

func (s *CatalogService) DecrementStock(ctx context.Context, productID uint, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("catalog.decrement_stock %d qty %d: %w", productID, qty, apperr.ErrInvalidQuantity)
	}
	return s.Repo.DecrementStock(ctx, productID, qty, s.AllowNegativeStock)
}

// SeedIfEmpty inserts the starter catalog into an empty products table and
// reports whether it did.
func (s *CatalogService) SeedIfEmpty(ctx context.Context) (bool, error) {
	l := logging.FromContext(ctx).With("op", "catalog.seed")

	n, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	products := DefaultCatalog()
	if err := s.Repo.CreateProducts(ctx, products); err != nil {
		l.Error("catalog_seed_failed", "error", err)
		return false, err
	}

	l.Info("catalog_seeded", "products", len(products))
	return true, nil
}

func DefaultCatalog() []models.Product {
	return []models.Product{
		{Name: "Cotton T-Shirt", Category: "T-Shirt", Price: decimal.RequireFromString("149.99"), Stock: 50, Description: "100% Cotton, Regular Fit"},
		{Name: "Denim Jeans", Category: "Pants", Price: decimal.RequireFromString("290.99"), Stock: 30, Description: "Slim Fit, Stretch Denim"},
		{Name: "Summer Dress", Category: "Dress", Price: decimal.RequireFromString("249.99"), Stock: 25, Description: "Floral Print, Lightweight"},
		{Name: "Formal Shirt", Category: "Shirt", Price: decimal.RequireFromString("199.99"), Stock: 40, Description: "Office Wear, Iron-Free"},
		{Name: "Sports Shorts", Category: "Shorts", Price: decimal.RequireFromString("140.99"), Stock: 35, Description: "Quick Dry, Elastic Waist"},
	}
}
