package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CropStatus represents the availability of a crop listing.
type CropStatus string

const (
	CropAvailable CropStatus = "available"
	CropReserved  CropStatus = "reserved"
	CropSold      CropStatus = "sold"
)

// ValidCropStatus reports whether s is one of the known listing statuses.
func ValidCropStatus(s CropStatus) bool {
	switch s {
	case CropAvailable, CropReserved, CropSold:
		return true
	}
	return false
}

// Crop is a farmer's listing offered for sale. It is owned exclusively by
// its farmer; orders reference it but never own it.
type Crop struct {
	ID           string          `json:"id"`
	FarmerID     string          `json:"farmer_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Quantity     float64         `json:"quantity"`
	Unit         string          `json:"unit"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	HarvestDate  string          `json:"harvest_date,omitempty"`
	Location     string          `json:"location,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	Status       CropStatus      `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
