package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/fabric_billing/internal/apperr"
	"github.com/Skotchmaster/fabric_billing/internal/cart"
	"github.com/Skotchmaster/fabric_billing/internal/models"
	"github.com/Skotchmaster/fabric_billing/internal/repo"
	"github.com/Skotchmaster/fabric_billing/internal/util"
	"github.com/Skotchmaster/fabric_billing/pkg/logging"
)

type PaymentMethod string

const (
	Cash          PaymentMethod = "Cash"
	CreditCard    PaymentMethod = "Credit Card"
	DebitCard     PaymentMethod = "Debit Card"
	MobilePayment PaymentMethod = "Mobile Payment"
)

var PaymentMethods = []PaymentMethod{Cash, CreditCard, DebitCard, MobilePayment}

var paymentKeys = strings.NewReplacer(" ", "", "-", "", "_", "")

// ParsePaymentMethod accepts any spelling that differs from a known method
// only in case, spaces, dashes or underscores. Empty input means Cash.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	key := strings.ToLower(paymentKeys.Replace(s))
	if key == "" {
		return Cash, nil
	}
	for _, m := range PaymentMethods {
		if strings.ToLower(paymentKeys.Replace(string(m))) == key {
			return m, nil
		}
	}
	return "", fmt.Errorf("payment method %q: %w", s, apperr.ErrValidation)
}

type CustomerInfo struct {
	Name          string
	Phone         string
	PaymentMethod PaymentMethod
}

type InvoiceService struct {
	Repo    *repo.GormRepo
	Catalog *CatalogService
	Now     func() time.Time
}

func (s *InvoiceService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Checkout persists the cart as a bill with its lines and takes the sold
// quantities out of stock, all in one transaction. The cart is not touched.
func (s *InvoiceService) Checkout(ctx context.Context, c *cart.Cart, info CustomerInfo) (uint, error) {
	l := logging.FromContext(ctx).With("op", "invoice.checkout")

	if c == nil || c.IsEmpty() {
		l.Warn("checkout_rejected", "reason", "no items in cart")
		return 0, fmt.Errorf("invoice.checkout: %w", apperr.ErrEmptyCart)
	}
	name := strings.TrimSpace(info.Name)
	if name == "" {
		l.Warn("checkout_rejected", "reason", "customer name required")
		return 0, fmt.Errorf("invoice.checkout: customer name required: %w", apperr.ErrValidation)
	}
	method, err := ParsePaymentMethod(string(info.PaymentMethod))
	if err != nil {
		l.Warn("checkout_rejected", "reason", "unknown payment method", "error", err)
		return 0, fmt.Errorf("invoice.checkout: %w", err)
	}

	lines := c.Lines()
	_, total := c.Totals()

	bill := models.Bill{
		CustomerName:  name,
		CustomerPhone: strings.TrimSpace(info.Phone),
		CreatedAt:     s.now(),
		TotalAmount:   total,
		PaymentMethod: string(method),
	}

	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateBill(ctx, &bill); err != nil {
			return err
		}

		for _, line := range lines {
			item := models.BillItem{
				BillID:    bill.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			}
			if err := tx.CreateBillItem(ctx, &item); err != nil {
				return err
			}
		}

		catalog := s.Catalog.WithRepo(tx)
		for _, line := range lines {
			if err := catalog.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		l.Error("checkout_failed", "customer", name, "lines", len(lines), "error", err)
		return 0, apperr.Checkout(err)
	}

	l.Info("checkout_success", "bill_id", bill.ID, "total", total.StringFixed(2), "lines", len(lines))
	return bill.ID, nil
}

func (s *InvoiceService) GetBill(ctx context.Context, id uint) (*models.Bill, error) {
	return s.Repo.GetBill(ctx, id)
}

func (s *InvoiceService) ListBills(ctx context.Context) ([]models.Bill, error) {
	return s.Repo.ListBills(ctx)
}

// RecentBills returns one page of bills, newest first, and the page count.
func (s *InvoiceService) RecentBills(ctx context.Context, page, size int) ([]models.Bill, int, error) {
	offset, limit := util.Page(page, size)
	bills, total, err := s.Repo.ListBillsPage(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return bills, util.Pages(total, limit), nil
}
