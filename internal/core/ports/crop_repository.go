package ports

import (
	"context"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
)

// ListCropsFilter carries all query parameters for listing crops.
type ListCropsFilter struct {
	FarmerID string // empty = no filter
	Query    string // optional: substring match on name, description, or location
	Status   string // optional: filter by listing status
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by the service)
}

// CropWithFarmer is a crop row enriched with the owning farmer's name.
type CropWithFarmer struct {
	domain.Crop
	FarmerName string `json:"farmer_name,omitempty"`
}

// CropRepository defines persistence operations for crop listings.
type CropRepository interface {
	Create(ctx context.Context, crop *domain.Crop) error
	FindByID(ctx context.Context, id string) (*domain.Crop, error)
	// List returns a page of crops matching filter, newest first, and the
	// total count of matching rows.
	List(ctx context.Context, filter ListCropsFilter) ([]*CropWithFarmer, int64, error)
	Update(ctx context.Context, crop *domain.Crop) error
	Delete(ctx context.Context, id string) error
}
