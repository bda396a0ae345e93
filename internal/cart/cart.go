// Package cart holds the per-client shopping cart. It is never persisted;
// orders re-snapshot every line from the products collection.
package cart

import (
	"sync"

	"github.com/angelmondragon/wandermart-backend/internal/products"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Item is a product snapshot plus the requested quantity.
type Item struct {
	Product  products.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

// Subtotal is price times quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is safe for concurrent use. Quantities always stay within
// [1, stock] of the product snapshot.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// Add puts qty more of p into the cart, refreshing the snapshot of a
// product already present.
func (c *Cart) Add(p products.Product, qty int) error {
	if p.Stock <= 0 {
		return pkgerrors.Newf(pkgerrors.CodeConflict, "%s is out of stock", p.Name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Product = p
			c.items[i].Quantity = clamp(c.items[i].Quantity+qty, p.Stock)
			return nil
		}
	}
	c.items = append(c.items, Item{Product: p, Quantity: clamp(qty, p.Stock)})
	return nil
}

func (c *Cart) SetQuantity(productID string, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = clamp(qty, c.items[i].Product.Stock)
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
}

func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item{}, c.items...)
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) Total() decimal.Decimal {
	return Total(c.Items())
}

// Total sums the subtotals of items.
func Total(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Subtotal())
	}
	return sum
}

func clamp(qty, stock int) int {
	if qty > stock {
		qty = stock
	}
	if qty < 1 {
		qty = 1
	}
	return qty
}
