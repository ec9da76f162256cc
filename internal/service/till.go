package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/fabric_billing/internal/cart"
	"github.com/Skotchmaster/fabric_billing/internal/events"
	"github.com/Skotchmaster/fabric_billing/internal/models"
	"github.com/Skotchmaster/fabric_billing/pkg/logging"
)

// Till is what a presentation layer drives: one open cart plus the services
// needed to sell it.
type Till struct {
	Catalog   *CatalogService
	Invoices  *InvoiceService
	Ledger    *LedgerService
	Publisher events.Publisher

	cart *cart.Cart
}

func NewTill(catalog *CatalogService, invoices *InvoiceService, ledger *LedgerService, pub events.Publisher) *Till {
	if pub == nil {
		pub = events.Noop{}
	}
	return &Till{
		Catalog:   catalog,
		Invoices:  invoices,
		Ledger:    ledger,
		Publisher: pub,
		cart:      cart.New(),
	}
}

type CheckoutResult struct {
	BillID   uint
	Items    int
	Total    decimal.Decimal
	Lines    []cart.Line
	Customer *models.Customer

	// LedgerErr and EventErr report follow-up steps that failed after the
	// bill was committed. The bill stands either way.
	LedgerErr error
	EventErr  error
}

// Add looks the product up and puts qty of it in the cart at today's price.
func (t *Till) Add(ctx context.Context, productID uint, qty int) (cart.Line, error) {
	p, err := t.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return cart.Line{}, err
	}
	return t.cart.AddOrMerge(cart.SnapshotOf(*p), qty)
}

func (t *Till) Remove(productID uint) bool { return t.cart.Remove(productID) }

func (t *Till) Clear() { t.cart.Clear() }

func (t *Till) Lines() []cart.Line { return t.cart.Lines() }

func (t *Till) Totals() (int, decimal.Decimal) { return t.cart.Totals() }

func (t *Till) Checkout(ctx context.Context, info CustomerInfo) (CheckoutResult, error) {
	l := logging.FromContext(ctx).With("op", "till.checkout")

	billID, err := t.Invoices.Checkout(ctx, t.cart, info)
	if err != nil {
		return CheckoutResult{}, err
	}

	items, total := t.cart.Totals()
	res := CheckoutResult{BillID: billID, Items: items, Total: total, Lines: t.cart.Lines()}
	t.cart.Clear()

	phone := strings.TrimSpace(info.Phone)
	if phone != "" {
		res.Customer, res.LedgerErr = t.Ledger.RecordBill(ctx, info.Name, phone, total)
		if res.LedgerErr != nil {
			l.Error("ledger_after_checkout_failed", "bill_id", billID, "error", res.LedgerErr)
		}
	}

	res.EventErr = t.publishBill(ctx, billID)
	if res.EventErr != nil {
		l.Error("bill_event_failed", "bill_id", billID, "error", res.EventErr)
	}

	return res, nil
}

func (t *Till) publishBill(ctx context.Context, billID uint) error {
	bill, err := t.Invoices.GetBill(ctx, billID)
	if err != nil {
		return err
	}
	ev := events.NewBillCreated(bill)
	return t.Publisher.PublishEvent(ctx, ev.Key(), ev)
}
