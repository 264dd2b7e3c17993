package ports

import (
	"context"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
)

// OrderView is an order row enriched through its crop and the involved
// users, as returned by the list and approve endpoints.
type OrderView struct {
	domain.Order
	FarmerID     string `json:"farmer_id,omitempty"`
	CropName     string `json:"crop_name,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	BuyerName    string `json:"buyer_name,omitempty"`
	ApproverName string `json:"approver_name,omitempty"`
}

// OrderRepository defines persistence operations for the order ledger.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// FindView returns the enriched view of a single order.
	FindView(ctx context.Context, id string) (*OrderView, error)
	// List returns enriched orders newest first. When farmerID is
	// non-empty, only orders against that farmer's crops are returned.
	List(ctx context.Context, farmerID string) ([]*OrderView, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, approvedBy string) error
}
