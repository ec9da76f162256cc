// Package cart holds the in-progress bill: an ordered, unpersisted set of
// lines built from catalog selections.
package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/fabric_billing/internal/apperr"
	"github.com/Skotchmaster/fabric_billing/internal/models"
)

// ProductSnapshot is what the cart needs to know about a product at add time.
type ProductSnapshot struct {
	ID    uint
	Name  string
	Price decimal.Decimal
}

func SnapshotOf(p models.Product) ProductSnapshot {
	return ProductSnapshot{ID: p.ID, Name: p.Name, Price: p.Price}
}

type Line struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps at most one line per product. The zero value is an empty cart.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddOrMerge appends a line priced at p.Price, or grows the existing line for
// p.ID keeping the price captured on the first add.
func (c *Cart) AddOrMerge(p ProductSnapshot, qty int) (Line, error) {
	if qty <= 0 {
		return Line{}, fmt.Errorf("cart.add product %d qty %d: %w", p.ID, qty, apperr.ErrInvalidQuantity)
	}

	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Quantity += qty
		return c.lines[i], nil
	}

	line := Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  qty,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// Remove drops the line for productID. It reports whether a line was removed.
func (c *Cart) Remove(productID uint) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Totals is recomputed from the lines on every call.
func (c *Cart) Totals() (items int, amount decimal.Decimal) {
	amount = decimal.Zero
	for _, l := range c.lines {
		items += l.Quantity
		amount = amount.Add(l.Total())
	}
	return items, amount
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(productID uint) (Line, bool) {
	if i := c.index(productID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) index(productID uint) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
