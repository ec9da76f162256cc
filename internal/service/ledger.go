package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/fabric_billing/internal/apperr"
	"github.com/Skotchmaster/fabric_billing/internal/models"
	"github.com/Skotchmaster/fabric_billing/internal/repo"
	"github.com/Skotchmaster/fabric_billing/pkg/logging"
)

// LedgerService keeps each customer's lifetime billed total, keyed by phone.
type LedgerService struct {
	Repo *repo.GormRepo
}

func (s *LedgerService) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("ledger.find_by_phone: phone required: %w", apperr.ErrValidation)
	}
	return s.Repo.FindCustomerByPhone(ctx, phone)
}

// RecordBill adds amount to the customer's total, creating the customer on
// first sight. The stored name is not overwritten for a known phone.
func (s *LedgerService) RecordBill(ctx context.Context, name, phone string, amount decimal.Decimal) (*models.Customer, error) {
	l := logging.FromContext(ctx).With("op", "ledger.record_bill")

	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("ledger.record_bill: phone required: %w", apperr.ErrValidation)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("ledger.record_bill %s amount %s: %w", phone, amount, apperr.ErrValidation)
	}

	var out *models.Customer
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		c, err := tx.FindCustomerByPhone(ctx, phone)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			c = &models.Customer{Name: strings.TrimSpace(name), Phone: phone, TotalBill: amount}
			if err := tx.CreateCustomer(ctx, c); err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			c.TotalBill = c.TotalBill.Add(amount)
			if err := tx.SetCustomerTotal(ctx, c.ID, c.TotalBill); err != nil {
				return err
			}
		}
		out = c
		return nil
	})
	if err != nil {
		l.Error("ledger_update_failed", "phone", phone, "amount", amount.StringFixed(2), "error", err)
		return nil, err
	}

	l.Info("ledger_updated", "customer_id", out.ID, "total", out.TotalBill.StringFixed(2))
	return out, nil
}

// SaveCustomer registers a customer with a zero total, or returns the
// existing record for a known phone.
func (s *LedgerService) SaveCustomer(ctx context.Context, name, phone string) (*models.Customer, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("ledger.save_customer: name and phone required: %w", apperr.ErrValidation)
	}

	var out *models.Customer
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		c, err := tx.FindCustomerByPhone(ctx, phone)
		if err == nil {
			out = c
			return nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		c = &models.Customer{Name: name, Phone: phone, TotalBill: decimal.Zero}
		if err := tx.CreateCustomer(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// History lists a customer's bills, oldest first.
func (s *LedgerService) History(ctx context.Context, phone string) ([]models.Bill, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("ledger.history: phone required: %w", apperr.ErrValidation)
	}
	return s.Repo.ListBillsByPhone(ctx, phone)
}
