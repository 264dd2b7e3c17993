package domain

import (
	"encoding/json"
	"time"
)

// AgroplanRecord is a persisted crop-planning analysis for a user.
type AgroplanRecord struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"user_id"`
	SoilType            string          `json:"soil_type"`
	Location            string          `json:"location"`
	PreviousCrops       string          `json:"previous_crops,omitempty"`
	Recommendations     json.RawMessage `json:"recommendations"`
	SustainabilityScore int             `json:"sustainability_score"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
