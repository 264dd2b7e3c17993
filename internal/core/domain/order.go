package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions. Only
// pending → confirmed is driven by an endpoint today; the later stages are
// encoded so the machine is complete.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderDelivered, OrderCancelled},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a buyer's committed purchase against one crop listing.
// TotalPrice is snapshotted at creation from the listing's price at that
// moment and is never recomputed, even if the listing's price changes.
type Order struct {
	ID           string          `json:"id"`
	CropID       string          `json:"crop_id"`
	BuyerID      string          `json:"buyer_id"`
	Quantity     float64         `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	BuyerContact string          `json:"buyer_contact,omitempty"`
	Status       OrderStatus     `json:"status"`
	ApprovedBy   string          `json:"approved_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
