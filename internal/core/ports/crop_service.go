package ports

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
)

// ImageUpload is an image file received with a multipart request.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ImageStore abstracts the asset store for listing images. Save returns
// the public URL path the stored image is served under.
type ImageStore interface {
	Save(ctx context.Context, upload ImageUpload) (string, error)
	Delete(ctx context.Context, url string) error
}

// CreateCropInput carries all data needed to create a new listing.
type CreateCropInput struct {
	FarmerID     string
	Name         string
	Description  string
	Quantity     float64
	Unit         string
	PricePerUnit decimal.Decimal
	HarvestDate  string
	Location     string
	Image        *ImageUpload
}

// UpdateCropInput replaces the mutable fields of a listing. Status is
// preserved when empty. A non-nil Image replaces the stored asset.
type UpdateCropInput struct {
	Name         string
	Description  string
	Quantity     float64
	Unit         string
	PricePerUnit decimal.Decimal
	HarvestDate  string
	Location     string
	Status       string
	Image        *ImageUpload
}

// ListCropsInput carries all parameters for the list endpoint.
type ListCropsInput struct {
	FarmerID string
	Query    string
	Status   string
	Page     int
	Limit    int
}

// ListCropsResult is returned by List.
type ListCropsResult struct {
	Crops []*CropWithFarmer
	Total int64
}

// CropService defines use-case operations for listings.
type CropService interface {
	Create(ctx context.Context, input CreateCropInput) (*domain.Crop, error)
	List(ctx context.Context, input ListCropsInput) (*ListCropsResult, error)
	Update(ctx context.Context, id string, input UpdateCropInput) (*domain.Crop, error)
	Delete(ctx context.Context, id string) error
}
