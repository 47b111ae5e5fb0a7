package billing

import (
	"github.com/google/uuid"
)

// LineItem is a single cart entry. The ID identifies the cart entry, not
// the catalog product: a repeat scan of the same barcode increments the
// existing entry instead of creating a new one.
type LineItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"-"`
	Category     string    `json:"category"`
	Quantity     int       `json:"quantity"`
	Barcode      string    `json:"barcode,omitempty"`
	OfflineAdded bool      `json:"offline_added,omitempty"`
}

// Cart owns the active line-item list. It is not safe for concurrent use;
// the owning service serializes access.
type Cart struct {
	items []LineItem
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Len returns the number of line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Find returns the line item with the given entry id.
func (c *Cart) Find(id uuid.UUID) (LineItem, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return LineItem{}, false
}

// FindByBarcode returns the line item carrying the given barcode.
func (c *Cart) FindByBarcode(code string) (LineItem, bool) {
	if code == "" {
		return LineItem{}, false
	}
	for _, item := range c.items {
		if item.Barcode == code {
			return item, true
		}
	}
	return LineItem{}, false
}

// AddNew appends a new line item with quantity 1 and returns it.
func (c *Cart) AddNew(name string, priceCents int64, category, barcode string, offlineAdded bool) LineItem {
	item := LineItem{
		ID:           uuid.New(),
		Name:         name,
		PriceCents:   priceCents,
		Category:     category,
		Quantity:     1,
		Barcode:      barcode,
		OfflineAdded: offlineAdded,
	}
	c.items = append(c.items, item)
	return item
}

// UpdateQuantity applies delta to the item's quantity, clamped at zero.
// An item reaching zero is removed from the cart. The second return value
// reports whether the item is still present afterwards.
func (c *Cart) UpdateQuantity(id uuid.UUID, delta int) (LineItem, bool) {
	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		q := c.items[i].Quantity + delta
		if q <= 0 {
			removed := c.items[i]
			removed.Quantity = 0
			c.items = append(c.items[:i], c.items[i+1:]...)
			return removed, false
		}
		c.items[i].Quantity = q
		return c.items[i], true
	}
	return LineItem{}, false
}

// Remove deletes the line item unconditionally.
func (c *Cart) Remove(id uuid.UUID) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the line items, used at checkout and for
// write-through persistence.
func (c *Cart) Snapshot() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Restore replaces the cart contents, used when loading a persisted session.
func (c *Cart) Restore(items []LineItem) {
	c.items = make([]LineItem, len(items))
	copy(c.items, items)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// SubtotalCents is the sum of price * quantity over all items.
func (c *Cart) SubtotalCents() int64 {
	var sum int64
	for _, item := range c.items {
		sum += item.PriceCents * int64(item.Quantity)
	}
	return sum
}

// TaxCents is the GST on the subtotal.
func (c *Cart) TaxCents() int64 {
	return TaxOn(c.SubtotalCents())
}

// TotalCents is the tax-inclusive cart total.
func (c *Cart) TotalCents() int64 {
	return WithTax(c.SubtotalCents())
}
