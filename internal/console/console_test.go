package console_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/fabric_billing/internal/apperr"
	"github.com/Skotchmaster/fabric_billing/internal/console"
	"github.com/Skotchmaster/fabric_billing/internal/events"
	"github.com/Skotchmaster/fabric_billing/internal/models"
	"github.com/Skotchmaster/fabric_billing/internal/repo"
	"github.com/Skotchmaster/fabric_billing/internal/service"
	"github.com/Skotchmaster/fabric_billing/internal/testutil"
	"github.com/Skotchmaster/fabric_billing/pkg/logging"
)

func newTill(t *testing.T) (*service.Till, *repo.GormRepo) {
	t.Helper()

	r := repo.New(testutil.NewStore(t))
	catalog := &service.CatalogService{Repo: r, AllowNegativeStock: true}
	_, err := catalog.SeedIfEmpty(context.Background())
	require.NoError(t, err)

	till := service.NewTill(
		catalog,
		&service.InvoiceService{Repo: r, Catalog: catalog},
		&service.LedgerService{Repo: r},
		events.Noop{},
	)
	return till, r
}

func run(t *testing.T, till *service.Till, script string) string {
	t.Helper()

	var out bytes.Buffer
	ctx := logging.IntoContext(context.Background(), logging.NewWithWriter(io.Discard, "error"))
	c := console.New(till, strings.NewReader(script), &out)
	require.NoError(t, c.Run(ctx))
	return out.String()
}

func TestConsole_SellFlow(t *testing.T) {
	till, r := newTill(t)

	out := run(t, till, strings.Join([]string{
		"list T-Shirt",
		"add 1 2",
		"add 1 3",
		"show",
		"checkout Asha|9876543210|credit card",
		"customer 9876543210",
		"bill 1",
		"bills",
		"quit",
		"add 1 1",
	}, "\n"))

	assert.Contains(t, out, "Cotton T-Shirt")
	assert.Contains(t, out, "Cotton T-Shirt x5 = 749.95")
	assert.Contains(t, out, "Total Items: 5  Total Amount: 749.95")
	assert.Contains(t, out, "Bill generated successfully! Bill ID: 1")
	assert.Contains(t, out, "Asha (9876543210) total billed 749.95")
	assert.Contains(t, out, "Credit Card")
	assert.Contains(t, out, "Total: 749.95")
	assert.Contains(t, out, "page 1 of 1")

	assert.Empty(t, till.Lines(), "commands after quit are not run")

	p, err := r.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 45, p.Stock)
}

func TestConsole_Errors(t *testing.T) {
	till, r := newTill(t)

	out := run(t, till, strings.Join([]string{
		"checkout Asha",
		"add 1 0",
		"add x",
		"add 99",
		"remove 99",
		"frobnicate",
		"bills two",
	}, "\n"))

	assert.Contains(t, out, "error: no items in bill")
	assert.Contains(t, out, "quantity must be more than zero")
	assert.Contains(t, out, `product id "x"`)
	assert.Contains(t, out, "error: not found")
	assert.Contains(t, out, "product 99 is not in the bill")
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, `page "two"`)
	assert.EqualValues(t, 0, testutil.Count(t, r.DB, &models.Bill{}))
}

func TestConsole_SearchCategoriesAndCustomers(t *testing.T) {
	till, _ := newTill(t)

	out := run(t, till, strings.Join([]string{
		"categories",
		"search dress",
		"save Meera|777",
		"history 777",
		"search nothing-like-this",
	}, "\n"))

	assert.Contains(t, out, "All\nDress\nPants\nShirt\nShorts\nT-Shirt\n")
	assert.Contains(t, out, "Summer Dress")
	assert.Contains(t, out, "customer Meera saved")
	assert.Contains(t, out, "no bills found")
	assert.Contains(t, out, "no products found")
}

func TestConsole_Execute(t *testing.T) {
	till, _ := newTill(t)
	c := console.New(till, strings.NewReader(""), io.Discard)
	ctx := context.Background()

	require.NoError(t, c.Execute(ctx, "   "))
	require.NoError(t, c.Execute(ctx, "add 2"))
	require.Len(t, till.Lines(), 1)
	assert.Equal(t, 1, till.Lines()[0].Quantity)

	require.NoError(t, c.Execute(ctx, "clear"))
	assert.Empty(t, till.Lines())

	err := c.Execute(ctx, "checkout ")
	assert.ErrorIs(t, err, apperr.ErrEmptyCart)
}
