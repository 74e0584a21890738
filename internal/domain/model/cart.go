package model

import "time"

// CartLine is one product entry in the cart.
// Title, price and image are snapshots taken when the line was added.
type CartLine struct {
	ProductID string `json:"produto_id"`
	Title     string `json:"titulo"`
	UnitPrice int64  `json:"preco_centavos"`
	ImageURL  string `json:"image,omitempty"`
	Variant   string `json:"tamanho"`
	Quantity  int64  `json:"quantidade"`
}

// Subtotal is unit price times quantity, in centavos.
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * l.Quantity
}

// CartSnapshotLine is the read-only projection sent to checkout.
type CartSnapshotLine struct {
	ProductID string `json:"produtoId"`
	Quantity  int64  `json:"quantidade"`
	Variant   string `json:"tamanho"`
}

// Cart is the session cart ledger. Lines keep insertion order.
// At most one line exists per product id; a line's quantity is
// always >= 1 while the line exists.
type Cart struct {
	SessionID string     `json:"session_id"`
	Slug      string     `json:"slug"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart returns an empty cart for one browsing session.
func NewCart(sessionID, slug string, now time.Time) *Cart {
	return &Cart{
		SessionID: sessionID,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Add puts a product in the cart. A repeated product increments the
// existing line instead of appending; the first-added variant sticks.
// A new line takes the chosen variant, falling back to the product's
// default.
func (c *Cart) Add(p Product, chosenVariant string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}

	variant := chosenVariant
	if variant == "" {
		variant = p.DefaultVariant()
	}

	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		Title:     p.Title,
		UnitPrice: p.Price,
		ImageURL:  p.ImageURL,
		Variant:   variant,
		Quantity:  1,
	})
}

// AdjustQuantity adds delta to the line's quantity. Unknown ids are
// a no-op; a resulting quantity of zero or below deletes the line.
func (c *Cart) AdjustQuantity(productID string, delta int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID != productID {
			continue
		}
		c.Lines[i].Quantity += delta
		if c.Lines[i].Quantity <= 0 {
			c.Remove(productID)
		}
		return
	}
}

// Remove deletes the line for productID, if present.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// TotalItemCount sums quantities across all lines.
func (c *Cart) TotalItemCount() int64 {
	var n int64
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// TotalValue sums line subtotals, in centavos.
func (c *Cart) TotalValue() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.Subtotal()
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Snapshot returns the checkout projection without mutating the cart.
func (c *Cart) Snapshot() []CartSnapshotLine {
	out := make([]CartSnapshotLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		out = append(out, CartSnapshotLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Variant:   l.Variant,
		})
	}
	return out
}
