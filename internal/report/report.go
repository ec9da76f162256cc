// Package report prints the whole store as grid tables.
package report

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/fabric_billing/internal/models"
	"github.com/Skotchmaster/fabric_billing/internal/repo"
)

const timeLayout = "2006-01-02 15:04:05"

type Source interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListBills(ctx context.Context) ([]models.Bill, error)
	ListBillItemRows(ctx context.Context) ([]repo.BillItemRow, error)
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
}

type section struct {
	title  string
	empty  string
	header []string
	rows   func(ctx context.Context) ([][]string, error)
}

// Write renders customers, bills, bill items and products in that order.
// A failing section stops the report.
func Write(ctx context.Context, w io.Writer, src Source) error {
	for _, sec := range sections(src) {
		rows, err := sec.rows(ctx)
		if err != nil {
			return fmt.Errorf("report %s: %w", sec.title, err)
		}

		fmt.Fprintf(w, "\n=== %s ===\n", sec.title)
		if len(rows) == 0 {
			fmt.Fprintln(w, sec.empty)
			continue
		}

		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		table.SetRowLine(true)
		table.SetHeader(sec.header)
		table.AppendBulk(rows)
		table.Render()
	}
	return nil
}

func sections(src Source) []section {
	return []section{
		{
			title:  "CUSTOMERS",
			empty:  "No customers found",
			header: []string{"ID", "Name", "Phone", "Total Bill", "Date"},
			rows: func(ctx context.Context) ([][]string, error) {
				customers, err := src.ListCustomers(ctx)
				if err != nil {
					return nil, err
				}
				out := make([][]string, 0, len(customers))
				for _, c := range customers {
					out = append(out, []string{id(c.ID), c.Name, c.Phone, money(c.TotalBill), c.CreatedAt.Format(timeLayout)})
				}
				return out, nil
			},
		},
		{
			title:  "BILLS",
			empty:  "No bills found",
			header: []string{"Bill ID", "Customer Name", "Phone", "Date", "Amount", "Payment Method"},
			rows: func(ctx context.Context) ([][]string, error) {
				bills, err := src.ListBills(ctx)
				if err != nil {
					return nil, err
				}
				out := make([][]string, 0, len(bills))
				for _, b := range bills {
					out = append(out, []string{id(b.ID), b.CustomerName, b.CustomerPhone, b.CreatedAt.Format(timeLayout), money(b.TotalAmount), b.PaymentMethod})
				}
				return out, nil
			},
		},
		{
			title:  "BILL ITEMS",
			empty:  "No bill items found",
			header: []string{"Item ID", "Bill ID", "Product ID", "Quantity", "Price", "Product Name"},
			rows: func(ctx context.Context) ([][]string, error) {
				items, err := src.ListBillItemRows(ctx)
				if err != nil {
					return nil, err
				}
				out := make([][]string, 0, len(items))
				for _, it := range items {
					out = append(out, []string{id(it.ID), id(it.BillID), id(it.ProductID), strconv.Itoa(it.Quantity), money(it.UnitPrice), it.ProductName})
				}
				return out, nil
			},
		},
		{
			title:  "PRODUCTS",
			empty:  "No products found",
			header: []string{"ID", "Name", "Category", "Price", "Stock", "Description"},
			rows: func(ctx context.Context) ([][]string, error) {
				products, err := src.ListProducts(ctx, "")
				if err != nil {
					return nil, err
				}
				out := make([][]string, 0, len(products))
				for _, p := range products {
					out = append(out, []string{id(p.ID), p.Name, p.Category, money(p.Price), strconv.Itoa(p.Stock), p.Description})
				}
				return out, nil
			},
		},
	}
}

func id(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func money(d decimal.Decimal) string { return d.StringFixed(2) }
