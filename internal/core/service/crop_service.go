package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

const maxPageSize = 100

// CropService implements listing management.
type CropService struct {
	repo   ports.CropRepository
	images ports.ImageStore
	logger zerolog.Logger
}

func NewCropService(repo ports.CropRepository, images ports.ImageStore, logger zerolog.Logger) *CropService {
	return &CropService{repo: repo, images: images, logger: logger}
}

// Create inserts a new listing with status available.
func (s *CropService) Create(ctx context.Context, input ports.CreateCropInput) (*domain.Crop, error) {
	if input.FarmerID == "" || input.Name == "" || input.Quantity <= 0 || !input.PricePerUnit.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var imageURL string
	if input.Image != nil {
		url, err := s.images.Save(ctx, *input.Image)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}

	now := time.Now().UTC()
	crop := &domain.Crop{
		ID:           uuid.NewString(),
		FarmerID:     input.FarmerID,
		Name:         input.Name,
		Description:  input.Description,
		Quantity:     input.Quantity,
		Unit:         input.Unit,
		PricePerUnit: input.PricePerUnit,
		HarvestDate:  input.HarvestDate,
		Location:     input.Location,
		ImageURL:     imageURL,
		Status:       domain.CropAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, crop); err != nil {
		s.logger.Error().Err(err).Str("farmer_id", input.FarmerID).Msg("failed to create crop")
		return nil, err
	}

	s.logger.Info().Str("crop_id", crop.ID).Str("farmer_id", crop.FarmerID).Msg("crop created")
	return crop, nil
}

// List returns a page of listings newest first with the total match count.
func (s *CropService) List(ctx context.Context, input ports.ListCropsInput) (*ports.ListCropsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	crops, total, err := s.repo.List(ctx, ports.ListCropsFilter{
		FarmerID: input.FarmerID,
		Query:    input.Query,
		Status:   input.Status,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListCropsResult{Crops: crops, Total: total}, nil
}

// Update replaces the mutable fields of a listing. Status is preserved
// unless explicitly provided; a new image replaces and deletes the old
// asset.
func (s *CropService) Update(ctx context.Context, id string, input ports.UpdateCropInput) (*domain.Crop, error) {
	crop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Image != nil {
		url, err := s.images.Save(ctx, *input.Image)
		if err != nil {
			return nil, err
		}
		if crop.ImageURL != "" {
			if err := s.images.Delete(ctx, crop.ImageURL); err != nil {
				s.logger.Warn().Err(err).Str("crop_id", id).Msg("failed to delete replaced image")
			}
		}
		crop.ImageURL = url
	}

	crop.Name = input.Name
	crop.Description = input.Description
	crop.Quantity = input.Quantity
	crop.Unit = input.Unit
	crop.PricePerUnit = input.PricePerUnit
	crop.HarvestDate = input.HarvestDate
	crop.Location = input.Location
	if input.Status != "" {
		if !domain.ValidCropStatus(domain.CropStatus(input.Status)) {
			return nil, domain.ErrInvalidInput
		}
		crop.Status = domain.CropStatus(input.Status)
	}
	crop.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, crop); err != nil {
		return nil, err
	}
	return crop, nil
}

// Delete removes a listing and its image asset.
func (s *CropService) Delete(ctx context.Context, id string) error {
	crop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if crop.ImageURL != "" {
		if err := s.images.Delete(ctx, crop.ImageURL); err != nil {
			s.logger.Warn().Err(err).Str("crop_id", id).Msg("failed to delete crop image")
		}
	}

	return s.repo.Delete(ctx, id)
}
