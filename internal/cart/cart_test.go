package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/fabric_billing/internal/apperr"
)

func snap(id uint, name, price string) ProductSnapshot {
	return ProductSnapshot{ID: id, Name: name, Price: decimal.RequireFromString(price)}
}

func TestAddOrMerge_MergesAndRecomputes(t *testing.T) {
	c := New()
	tshirt := snap(1, "Cotton T-Shirt", "149.99")

	_, err := c.AddOrMerge(tshirt, 2)
	require.NoError(t, err)
	line, err := c.AddOrMerge(tshirt, 3)
	require.NoError(t, err)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 5, line.Quantity)
	assert.True(t, decimal.RequireFromString("749.95").Equal(line.Total()), line.Total().String())

	items, amount := c.Totals()
	assert.Equal(t, 5, items)
	assert.Equal(t, "749.95", amount.StringFixed(2))
}

func TestAddOrMerge_KeepsFirstPrice(t *testing.T) {
	c := New()
	_, err := c.AddOrMerge(snap(1, "Cotton T-Shirt", "149.99"), 1)
	require.NoError(t, err)

	// catalog price changed after the first add
	line, err := c.AddOrMerge(snap(1, "Cotton T-Shirt", "199.99"), 2)
	require.NoError(t, err)

	assert.Equal(t, 3, line.Quantity)
	assert.Equal(t, "149.99", line.UnitPrice.StringFixed(2))
	assert.Equal(t, "449.97", line.Total().StringFixed(2))
}

func TestAddOrMerge_InvalidQuantity(t *testing.T) {
	c := New()
	for _, qty := range []int{0, -1, -50} {
		_, err := c.AddOrMerge(snap(1, "Cotton T-Shirt", "149.99"), qty)
		require.ErrorIs(t, err, apperr.ErrInvalidQuantity)
		require.ErrorIs(t, err, apperr.ErrValidation)
	}
	assert.True(t, c.IsEmpty())
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	c := New()
	_, err := c.AddOrMerge(snap(1, "Cotton T-Shirt", "149.99"), 2)
	require.NoError(t, err)
	itemsBefore, amountBefore := c.Totals()

	assert.False(t, c.Remove(99))

	items, amount := c.Totals()
	assert.Equal(t, itemsBefore, items)
	assert.True(t, amountBefore.Equal(amount))
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	c := New()
	for _, p := range []ProductSnapshot{
		snap(3, "Summer Dress", "249.99"),
		snap(1, "Cotton T-Shirt", "149.99"),
		snap(5, "Sports Shorts", "140.99"),
	} {
		_, err := c.AddOrMerge(p, 1)
		require.NoError(t, err)
	}
	_, err := c.AddOrMerge(snap(3, "Summer Dress", "249.99"), 1)
	require.NoError(t, err)
	require.True(t, c.Remove(1))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, uint(3), lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, uint(5), lines[1].ProductID)

	// Lines returns a copy
	lines[0].Quantity = 100
	l, ok := c.Line(3)
	require.True(t, ok)
	assert.Equal(t, 2, l.Quantity)
}

func TestTotals_PureSumUnderAnySequence(t *testing.T) {
	products := []ProductSnapshot{
		snap(1, "Cotton T-Shirt", "149.99"),
		snap(2, "Denim Jeans", "290.99"),
		snap(3, "Summer Dress", "249.99"),
	}

	type step struct {
		op  string
		idx int
		qty int
	}
	tests := []struct {
		name  string
		steps []step
	}{
		{"adds only", []step{{"add", 0, 1}, {"add", 1, 2}, {"add", 0, 4}}},
		{"add remove add", []step{{"add", 0, 1}, {"add", 1, 1}, {"remove", 0, 0}, {"add", 2, 3}, {"add", 0, 2}}},
		{"clear midway", []step{{"add", 2, 7}, {"clear", 0, 0}, {"add", 1, 1}}},
		{"remove everything", []step{{"add", 0, 1}, {"remove", 0, 0}, {"remove", 1, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			for _, s := range tt.steps {
				switch s.op {
				case "add":
					_, err := c.AddOrMerge(products[s.idx], s.qty)
					require.NoError(t, err)
				case "remove":
					c.Remove(products[s.idx].ID)
				case "clear":
					c.Clear()
				}
			}

			wantItems, wantAmount := 0, decimal.Zero
			for _, l := range c.Lines() {
				wantItems += l.Quantity
				wantAmount = wantAmount.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
			}

			items, amount := c.Totals()
			assert.Equal(t, wantItems, items)
			assert.True(t, wantAmount.Equal(amount))

			// recomputation is idempotent
			items2, amount2 := c.Totals()
			assert.Equal(t, items, items2)
			assert.True(t, amount.Equal(amount2))
		})
	}
}

func TestTotals_NoInternalRounding(t *testing.T) {
	c := New()
	_, err := c.AddOrMerge(snap(1, "Thread", "0.333"), 3)
	require.NoError(t, err)

	_, amount := c.Totals()
	assert.Equal(t, "0.999", amount.String())
	assert.Equal(t, "1.00", amount.StringFixed(2))
}
