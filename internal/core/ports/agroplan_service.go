package ports

import "context"

// AnalyzeInput carries the soil and location details for a planning
// analysis. UserID is optional; when present the result is persisted.
type AnalyzeInput struct {
	UserID        string
	SoilType      string
	Location      string
	PreviousCrops string
}

// CropRecommendation is one recommended crop in a plan.
type CropRecommendation struct {
	Crop                string `json:"crop"`
	Suitability         string `json:"suitability"`
	Reasoning           string `json:"reasoning"`
	BestPlantingSeason  string `json:"best_planting_season"`
	ExpectedYield       string `json:"expected_yield"`
	SustainabilityNotes string `json:"sustainability_notes"`
}

// RotationEntry is one season in a rotation schedule.
type RotationEntry struct {
	Season   string   `json:"season"`
	Crops    []string `json:"crops"`
	Benefits string   `json:"benefits"`
}

// RecommendationPlan is the full crop-planning advice returned to the
// client.
type RecommendationPlan struct {
	Recommendations     []CropRecommendation `json:"recommendations"`
	RotationSchedule    []RotationEntry      `json:"rotation_schedule"`
	SustainabilityScore int                  `json:"sustainability_score"`
	SustainabilityNotes string               `json:"sustainability_notes"`
}

// Recommender wraps the external completion gateway. Implementations
// return an error when the gateway is unreachable or its output cannot be
// parsed; the service then falls back to a canned plan.
type Recommender interface {
	Generate(ctx context.Context, input AnalyzeInput) (*RecommendationPlan, error)
}

// RecommendationCache stores plans keyed by a digest of the analysis
// input. A miss returns (nil, nil).
type RecommendationCache interface {
	Get(ctx context.Context, key string) (*RecommendationPlan, error)
	Set(ctx context.Context, key string, plan *RecommendationPlan) error
}

// AgroplanService produces crop-planning advice.
type AgroplanService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*RecommendationPlan, error)
}
