package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agriconnect/marketplace-api/internal/api/metrics"
	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// AgroplanService produces crop-planning advice from soil and location
// input. The external gateway is best effort: any failure falls back to a
// canned plan keyed by soil type, so the endpoint always answers.
type AgroplanService struct {
	recommender ports.Recommender
	cache       ports.RecommendationCache
	repo        ports.AgroplanRepository
	logger      zerolog.Logger
}

func NewAgroplanService(
	recommender ports.Recommender,
	cache ports.RecommendationCache,
	repo ports.AgroplanRepository,
	logger zerolog.Logger,
) *AgroplanService {
	return &AgroplanService{recommender: recommender, cache: cache, repo: repo, logger: logger}
}

// Analyze validates the input, serves from cache when possible, otherwise
// consults the gateway (falling back to the demo plan on failure), then
// caches and persists the result.
func (s *AgroplanService) Analyze(ctx context.Context, input ports.AnalyzeInput) (*ports.RecommendationPlan, error) {
	if input.SoilType == "" || input.Location == "" {
		return nil, domain.ErrInvalidInput
	}

	key := cacheKey(input)
	if s.cache != nil {
		if plan, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn().Err(err).Msg("recommendation cache read failed")
		} else if plan != nil {
			metrics.RecommendationsServedTotal.WithLabelValues("cache").Inc()
			return plan, nil
		}
	}

	source := "gateway"
	plan, err := s.recommender.Generate(ctx, input)
	if err != nil {
		s.logger.Warn().Err(err).Str("soil_type", input.SoilType).Msg("recommendation gateway failed, using demo plan")
		plan = demoPlan(input)
		source = "fallback"
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, plan); err != nil {
			s.logger.Warn().Err(err).Msg("recommendation cache write failed")
		}
	}

	if input.UserID != "" {
		s.persist(ctx, input, plan)
	}

	metrics.RecommendationsServedTotal.WithLabelValues(source).Inc()
	return plan, nil
}

func (s *AgroplanService) persist(ctx context.Context, input ports.AnalyzeInput, plan *ports.RecommendationPlan) {
	raw, err := json.Marshal(plan)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode recommendation plan")
		return
	}

	now := time.Now().UTC()
	rec := &domain.AgroplanRecord{
		ID:                  uuid.NewString(),
		UserID:              input.UserID,
		SoilType:            input.SoilType,
		Location:            input.Location,
		PreviousCrops:       input.PreviousCrops,
		Recommendations:     raw,
		SustainabilityScore: plan.SustainabilityScore,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		s.logger.Warn().Err(err).Str("user_id", input.UserID).Msg("failed to persist agroplan analysis")
	}
}

func cacheKey(input ports.AnalyzeInput) string {
	sum := sha256.Sum256([]byte(strings.ToLower(
		input.SoilType + "|" + input.Location + "|" + input.PreviousCrops,
	)))
	return hex.EncodeToString(sum[:16])
}

// demoPlan returns the canned recommendation used when the gateway is
// unavailable or returns something unparseable.
func demoPlan(input ports.AnalyzeInput) *ports.RecommendationPlan {
	crop := "Sorghum"
	season := "Long rains"
	switch strings.ToLower(input.SoilType) {
	case "clay":
		crop = "Rice"
	case "sandy":
		crop = "Groundnuts"
	case "loam", "loamy":
		crop = "Maize"
		season = "Early long rains"
	}

	return &ports.RecommendationPlan{
		Recommendations: []ports.CropRecommendation{
			{
				Crop:                crop,
				Suitability:         "medium",
				Reasoning:           "Suggested from soil type " + input.SoilType + " for " + input.Location + "; live advice was unavailable.",
				BestPlantingSeason:  season,
				ExpectedYield:       "Variable",
				SustainabilityNotes: "Rotate with legumes to maintain soil nitrogen.",
			},
		},
		RotationSchedule: []ports.RotationEntry{
			{Season: season, Crops: []string{crop, "Beans"}, Benefits: "Legume rotation restores nitrogen and breaks pest cycles."},
		},
		SustainabilityScore: 70,
		SustainabilityNotes: "Please consult with local agricultural extension officers.",
	}
}
