// Package cart holds the shopper's basket. Every operation is synchronous and
// side-effect free outside the Cart value itself.
package cart

import (
	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot a line is built from.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	Category string          `json:"category"`
}

type Line struct {
	Product
	Quantity int `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart never holds two lines for the same product id, and every line has a
// quantity of at least 1.
type Cart struct {
	Lines      []Line `json:"lines"`
	DrawerOpen bool   `json:"drawer_open"`
}

func New() *Cart {
	return &Cart{Lines: []Line{}}
}

func (c *Cart) index(productID string) int {
	for i, l := range c.Lines {
		if l.ID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of p into the cart.
func (c *Cart) Add(p Product) {
	if i := c.index(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	c.Lines = append(c.Lines, Line{Product: p, Quantity: 1})
}

// UpdateQuantity changes a line by delta. A result of zero or less drops the line.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	q := c.Lines[i].Quantity + delta
	if q <= 0 {
		c.Remove(productID)
		return
	}
	c.Lines[i].Quantity = q
}

func (c *Cart) Remove(productID string) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}

func (c *Cart) Clear() {
	c.Lines = []Line{}
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the number of units, not lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Empty() bool { return len(c.Lines) == 0 }

func (c *Cart) OpenDrawer()   { c.DrawerOpen = true }
func (c *Cart) CloseDrawer()  { c.DrawerOpen = false }
func (c *Cart) ToggleDrawer() { c.DrawerOpen = !c.DrawerOpen }
