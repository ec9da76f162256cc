// Package console is a line-oriented clerk front end over service.Till.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/fabric_billing/internal/apperr"
	"github.com/Skotchmaster/fabric_billing/internal/models"
	"github.com/Skotchmaster/fabric_billing/internal/service"
	"github.com/Skotchmaster/fabric_billing/pkg/logging"
	loggingmw "github.com/Skotchmaster/fabric_billing/pkg/middleware/logging"
)

const (
	prompt   = "> "
	pageSize = 10
)

var errQuit = errors.New("quit")

type Console struct {
	Till *service.Till
	In   io.Reader
	Out  io.Writer
}

func New(till *service.Till, in io.Reader, out io.Writer) *Console {
	return &Console{Till: till, In: in, Out: out}
}

// Run reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	exec := loggingmw.CommandLogger(logging.FromContext(ctx), levelOf)(c.Execute)

	c.printf("FashionFabric billing. Type 'help' for commands.\n")
	sc := bufio.NewScanner(c.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printf(prompt)
		if !sc.Scan() {
			c.printf("\n")
			return sc.Err()
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		err := exec(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			c.printf("error: %s\n", describe(err))
		}
	}
}

func levelOf(err error) slog.Level {
	switch {
	case errors.Is(err, errQuit):
		return slog.LevelDebug
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrNotFound),
		errors.Is(err, apperr.ErrEmptyCart):
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Execute runs a single command line.
func (c *Console) Execute(ctx context.Context, line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "":
		return nil
	case "help", "?":
		c.help()
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "list", "ls":
		products, err := c.Till.Catalog.ListByCategory(ctx, rest)
		if err != nil {
			return err
		}
		c.products(products)
	case "search":
		products, err := c.Till.Catalog.Search(ctx, rest)
		if err != nil {
			return err
		}
		c.products(products)
	case "categories":
		cats, err := c.Till.Catalog.Categories(ctx)
		if err != nil {
			return err
		}
		c.printf("All\n")
		for _, cat := range cats {
			c.printf("%s\n", cat)
		}
	case "add":
		return c.add(ctx, rest)
	case "remove", "rm":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		if !c.Till.Remove(id) {
			c.printf("product %d is not in the bill\n", id)
			return nil
		}
		c.cart()
	case "clear":
		c.Till.Clear()
		c.printf("bill cleared\n")
	case "show", "bill":
		if rest == "" {
			c.cart()
			return nil
		}
		return c.receipt(ctx, rest)
	case "customer":
		cust, err := c.Till.Ledger.FindByPhone(ctx, rest)
		if err != nil {
			return err
		}
		c.printf("%s (%s) total billed %s since %s\n", cust.Name, cust.Phone, cust.TotalBill.StringFixed(2), cust.CreatedAt.Format("2006-01-02"))
	case "save":
		name, phone := splitFields(rest)
		cust, err := c.Till.Ledger.SaveCustomer(ctx, name, phone)
		if err != nil {
			return err
		}
		c.printf("customer %s saved (id %d)\n", cust.Name, cust.ID)
	case "history":
		bills, err := c.Till.Ledger.History(ctx, rest)
		if err != nil {
			return err
		}
		c.bills(bills)
	case "bills":
		return c.recentBills(ctx, rest)
	case "checkout":
		return c.checkout(ctx, rest)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, apperr.ErrValidation)
	}
	return nil
}

func (c *Console) add(ctx context.Context, args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > 2 {
		return fmt.Errorf("usage: add <product id> [qty]: %w", apperr.ErrValidation)
	}
	id, err := parseID(fields[0])
	if err != nil {
		return err
	}
	qty := 1
	if len(fields) == 2 {
		if qty, err = strconv.Atoi(fields[1]); err != nil {
			return fmt.Errorf("quantity %q: %w", fields[1], apperr.ErrInvalidQuantity)
		}
	}

	line, err := c.Till.Add(ctx, id, qty)
	if err != nil {
		return err
	}
	c.printf("%s x%d = %s\n", line.Name, line.Quantity, line.Total().StringFixed(2))
	return nil
}

func (c *Console) checkout(ctx context.Context, args string) error {
	parts := strings.Split(args, "|")
	info := service.CustomerInfo{Name: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		info.Phone = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		info.PaymentMethod = service.PaymentMethod(strings.TrimSpace(parts[2]))
	}

	res, err := c.Till.Checkout(ctx, info)
	if err != nil {
		return err
	}

	c.printf("Bill generated successfully! Bill ID: %d\n", res.BillID)
	c.printf("Items: %d  Total: %s\n", res.Items, res.Total.StringFixed(2))
	if res.Customer != nil {
		c.printf("Customer %s total billed: %s\n", res.Customer.Phone, res.Customer.TotalBill.StringFixed(2))
	}
	if res.LedgerErr != nil {
		c.printf("warning: customer total not updated: %s\n", describe(res.LedgerErr))
	}
	return nil
}

func (c *Console) recentBills(ctx context.Context, arg string) error {
	page := 1
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("page %q: %w", arg, apperr.ErrValidation)
		}
		page = n
	}

	bills, pages, err := c.Till.Invoices.RecentBills(ctx, page, pageSize)
	if err != nil {
		return err
	}
	c.bills(bills)
	c.printf("page %d of %d\n", max(page, 1), pages)
	return nil
}

func (c *Console) receipt(ctx context.Context, arg string) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	bill, err := c.Till.Invoices.GetBill(ctx, id)
	if err != nil {
		return err
	}

	c.printf("Bill %d  %s  %s\n", bill.ID, bill.CreatedAt.Format("2006-01-02 15:04:05"), bill.PaymentMethod)
	c.printf("Customer: %s %s\n", bill.CustomerName, bill.CustomerPhone)
	tw := c.tab()
	fmt.Fprintln(tw, "Product\tQty\tPrice\tTotal")
	for _, it := range bill.Items {
		name := strconv.FormatUint(uint64(it.ProductID), 10)
		if it.Product != nil {
			name = it.Product.Name
		}
		total := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", name, it.Quantity, it.UnitPrice.StringFixed(2), total.StringFixed(2))
	}
	tw.Flush()
	c.printf("Total: %s\n", bill.TotalAmount.StringFixed(2))
	return nil
}

func (c *Console) cart() {
	lines := c.Till.Lines()
	if len(lines) == 0 {
		c.printf("bill is empty\n")
		return
	}
	tw := c.tab()
	fmt.Fprintln(tw, "ID\tProduct\tQty\tPrice\tTotal")
	for _, ln := range lines {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", ln.ProductID, ln.Name, ln.Quantity, ln.UnitPrice.StringFixed(2), ln.Total().StringFixed(2))
	}
	tw.Flush()
	items, total := c.Till.Totals()
	c.printf("Total Items: %d  Total Amount: %s\n", items, total.StringFixed(2))
}

func (c *Console) products(products []models.Product) {
	if len(products) == 0 {
		c.printf("no products found\n")
		return
	}
	tw := c.tab()
	fmt.Fprintln(tw, "ID\tName\tCategory\tPrice\tStock")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Stock)
	}
	tw.Flush()
}

func (c *Console) bills(bills []models.Bill) {
	if len(bills) == 0 {
		c.printf("no bills found\n")
		return
	}
	tw := c.tab()
	fmt.Fprintln(tw, "Bill ID\tDate\tAmount\tPayment")
	for _, b := range bills {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", b.ID, b.CreatedAt.Format("2006-01-02 15:04"), b.TotalAmount.StringFixed(2), b.PaymentMethod)
	}
	tw.Flush()
}

func (c *Console) help() {
	c.printf(`commands:
  list [category]              list products, optionally one category
  categories                   list categories
  search <text>                search products by name
  add <id> [qty]               add a product to the bill
  remove <id>                  remove a product from the bill
  clear                        empty the bill
  show                         show the current bill
  bill <id>                    show a saved bill
  customer <phone>             look up a customer
  save <name>|<phone>          save a customer
  history <phone>              list a customer's bills
  bills [page]                 list recent bills
  checkout <name>|<phone>|<payment method>
                               payment: Cash, Credit Card, Debit Card, Mobile Payment
  quit
`)
}

func (c *Console) tab() *tabwriter.Writer {
	return tabwriter.NewWriter(c.Out, 0, 0, 2, ' ', 0)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 0)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("product id %q: %w", s, apperr.ErrValidation)
	}
	return uint(n), nil
}

func splitFields(s string) (string, string) {
	name, phone, _ := strings.Cut(s, "|")
	return strings.TrimSpace(name), strings.TrimSpace(phone)
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperr.ErrEmptyCart):
		return "no items in bill"
	case errors.Is(err, apperr.ErrInsufficientStock):
		return "not enough stock: " + err.Error()
	case errors.Is(err, apperr.ErrCheckoutFailed):
		return "failed to generate bill: " + err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		return "not found: " + err.Error()
	default:
		return err.Error()
	}
}
