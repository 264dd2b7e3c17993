package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// AgroplanRepository implements ports.AgroplanRepository on Postgres.
type AgroplanRepository struct {
	db *sql.DB
}

func NewAgroplanRepository(db *sql.DB) *AgroplanRepository {
	return &AgroplanRepository{db: db}
}

func (r *AgroplanRepository) Save(ctx context.Context, rec *domain.AgroplanRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO agroplan_data (id, user_id, soil_type, location, previous_crops,
			recommendations, sustainability_score, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.UserID, rec.SoilType, rec.Location, rec.PreviousCrops,
		[]byte(rec.Recommendations), rec.SustainabilityScore, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert agroplan record: %w", err)
	}
	return nil
}

func (r *AgroplanRepository) ListForUser(ctx context.Context, userID string) ([]*domain.AgroplanRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, soil_type, location, previous_crops,
			recommendations, sustainability_score, created_at, updated_at
		 FROM agroplan_data WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list agroplan records: %w", err)
	}
	defer rows.Close()

	var records []*domain.AgroplanRecord
	for rows.Next() {
		var (
			rec domain.AgroplanRecord
			raw []byte
		)
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.SoilType, &rec.Location, &rec.PreviousCrops,
			&raw, &rec.SustainabilityScore, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan agroplan record: %w", err)
		}
		rec.Recommendations = raw
		records = append(records, &rec)
	}
	return records, rows.Err()
}

var _ ports.AgroplanRepository = (*AgroplanRepository)(nil)
