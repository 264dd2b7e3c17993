package ports

import (
	"context"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
)

// AgroplanRepository persists crop-planning analyses.
type AgroplanRepository interface {
	Save(ctx context.Context, rec *domain.AgroplanRecord) error
	ListForUser(ctx context.Context, userID string) ([]*domain.AgroplanRecord, error)
}
