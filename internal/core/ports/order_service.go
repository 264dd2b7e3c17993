package ports

import (
	"context"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
)

// OrderItemInput is one line of a checkout batch.
type OrderItemInput struct {
	CropID   string
	Quantity float64
}

// CreateOrdersInput carries a checkout request. Items are processed
// strictly in the order supplied.
type CreateOrdersInput struct {
	BuyerID      string
	BuyerContact string
	Items        []OrderItemInput
}

// OrderService defines use-case operations for the order ledger and the
// approval workflow.
type OrderService interface {
	// CreateBatch inserts one pending order per item, each committed
	// individually. A failing item aborts the batch but leaves earlier
	// rows committed.
	CreateBatch(ctx context.Context, input CreateOrdersInput) ([]*domain.Order, error)
	List(ctx context.Context, farmerID string) ([]*OrderView, error)
	// Approve transitions a pending order to confirmed and notifies the
	// crop's owning farmer.
	Approve(ctx context.Context, orderID string, caller Caller) (*OrderView, error)
}
