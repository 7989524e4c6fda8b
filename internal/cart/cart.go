// Package cart keeps the session's shopping cart in memory.
package cart

import (
	"slices"
	"strconv"
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/five82/storefront/internal/catalog"
)

// Quantity bounds accepted by Add.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

// ErrInvalidQuantity is returned for quantities outside MinQuantity..MaxQuantity.
var ErrInvalidQuantity = errors.New("invalid quantity")

// Line is one item in the cart.
type Line struct {
	Item     catalog.Item
	Quantity int
}

// Subtotal is the line's price times its quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is safe for concurrent use. The zero value is an empty cart.
type Cart struct {
	mu    sync.RWMutex
	lines []Line
}

// ParseQuantity reads a quantity typed by the user.
func ParseQuantity(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidQuantity, "%q", raw)
	}
	if err := checkQuantity(n); err != nil {
		return 0, err
	}
	return n, nil
}

// ClampQuantity pins n into the accepted range.
func ClampQuantity(n int) int {
	return min(max(n, MinQuantity), MaxQuantity)
}

// Add puts qty of item in the cart. Adding an item already present raises
// the quantity on its existing line.
func (c *Cart) Add(item catalog.Item, qty int) error {
	if err := checkQuantity(qty); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity += qty
			return nil
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: qty})
	return nil
}

// Remove drops the line for id. It reports whether a line was removed.
func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := len(c.lines)
	c.lines = slices.DeleteFunc(c.lines, func(l Line) bool { return l.Item.ID == id })
	return len(c.lines) != before
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.lines)
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total sums every line.
func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func checkQuantity(n int) error {
	if n < MinQuantity || n > MaxQuantity {
		return errors.Wrapf(ErrInvalidQuantity, "%d not in %d..%d", n, MinQuantity, MaxQuantity)
	}
	return nil
}
