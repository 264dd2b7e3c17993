// Package cart implements the buyer's pre-checkout selection: a flat,
// durable list of lines merged by crop. It never contacts the server;
// checkout happens by handing its payload to the orders endpoint.
package cart

import (
	"math"
	"sync"

	"github.com/shopspring/decimal"
)

// Line is one desired purchase quantity against a listing. Name, price
// and farmer fields are snapshots taken when the line was added.
type Line struct {
	CropID       string          `json:"crop_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	FarmerID     string          `json:"farmer_id"`
	FarmerName   string          `json:"farmer_name"`
	Quantity     int             `json:"quantity"`
}

// Subtotal is the snapshot price times the line quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.PricePerUnit.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// FarmerGroup is the per-farmer view of the cart. It is derived on
// demand from the flat line list, never stored.
type FarmerGroup struct {
	FarmerID   string          `json:"farmer_id"`
	FarmerName string          `json:"farmer_name"`
	Lines      []Line          `json:"lines"`
	Total      decimal.Decimal `json:"total"`
}

// CheckoutItem is one order line in a checkout request.
type CheckoutItem struct {
	CropID   string `json:"crop_id"`
	Quantity int    `json:"quantity"`
}

// CheckoutPayload is the request body for the order-batch endpoint.
type CheckoutPayload struct {
	BuyerID      string         `json:"buyer_id"`
	BuyerContact string         `json:"buyer_contact,omitempty"`
	Items        []CheckoutItem `json:"items"`
}

// Cart holds the flat line list. Mutations are merged by crop id and
// written through to the backing store when one is attached.
type Cart struct {
	mu    sync.Mutex
	lines []Line
	store Store
}

// New returns a cart backed by store. A nil store gives a purely
// in-memory cart. Previously saved lines are loaded; a missing document
// starts empty.
func New(store Store) (*Cart, error) {
	c := &Cart{store: store}
	if store != nil {
		lines, err := store.Load()
		if err != nil {
			return nil, err
		}
		c.lines = lines
	}
	return c, nil
}

// Add merges the line into the cart. An existing line for the same crop
// has its quantity summed; the snapshot fields of the first add win.
// Lines with a non-positive quantity are ignored.
func (c *Cart) Add(line Line) error {
	if line.CropID == "" || line.Quantity <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].CropID == line.CropID {
			c.lines[i].Quantity += line.Quantity
			return c.persist()
		}
	}
	c.lines = append(c.lines, line)
	return c.persist()
}

// UpdateQuantity sets the line's quantity to max(0, floor(n)). A result
// of 0 removes the line. Unknown crop ids are ignored.
func (c *Cart) UpdateQuantity(cropID string, n float64) error {
	qty := int(math.Floor(n))
	if qty < 0 {
		qty = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].CropID != cropID {
			continue
		}
		if qty == 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = qty
		}
		return c.persist()
	}
	return nil
}

// Remove drops the line for cropID if present.
func (c *Cart) Remove(cropID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].CropID == cropID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return c.persist()
		}
	}
	return nil
}

// ClearForFarmer drops every line whose snapshot farmer id matches.
// Used after a single-farmer checkout.
func (c *Cart) ClearForFarmer(farmerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.FarmerID != farmerID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
	return c.persist()
}

// ClearAll empties the cart.
func (c *Cart) ClearAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	return c.persist()
}

// Lines returns a copy of the flat line list in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// GroupByFarmer derives the per-farmer view from the flat line list.
// Groups appear in the order their farmer first appears in the cart.
func (c *Cart) GroupByFarmer() []FarmerGroup {
	c.mu.Lock()
	defer c.mu.Unlock()

	var groups []FarmerGroup
	index := make(map[string]int)
	for _, l := range c.lines {
		i, ok := index[l.FarmerID]
		if !ok {
			i = len(groups)
			index[l.FarmerID] = i
			groups = append(groups, FarmerGroup{
				FarmerID:   l.FarmerID,
				FarmerName: l.FarmerName,
				Total:      decimal.Zero,
			})
		}
		groups[i].Lines = append(groups[i].Lines, l)
		groups[i].Total = groups[i].Total.Add(l.Subtotal())
	}
	return groups
}

// Checkout builds the order-batch request for one farmer's lines, or for
// the whole cart when farmerID is empty. The cart itself is not changed;
// callers clear it after the server accepts the batch.
func (c *Cart) Checkout(buyerID, contact, farmerID string) CheckoutPayload {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := CheckoutPayload{BuyerID: buyerID, BuyerContact: contact}
	for _, l := range c.lines {
		if farmerID != "" && l.FarmerID != farmerID {
			continue
		}
		payload.Items = append(payload.Items, CheckoutItem{CropID: l.CropID, Quantity: l.Quantity})
	}
	return payload
}

// persist is called with the mutex held.
func (c *Cart) persist() error {
	if c.store == nil {
		return nil
	}
	return c.store.Save(c.lines)
}
