package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// CropRepository implements ports.CropRepository on Postgres.
type CropRepository struct {
	db *sql.DB
}

func NewCropRepository(db *sql.DB) *CropRepository {
	return &CropRepository{db: db}
}

const cropColumns = `c.id, c.farmer_id, c.name, c.description, c.quantity, c.unit,
	c.price_per_unit, c.harvest_date, c.location, c.image_url, c.status,
	c.created_at, c.updated_at`

func scanCrop(row interface{ Scan(...any) error }, c *domain.Crop, extra ...any) error {
	dest := []any{
		&c.ID, &c.FarmerID, &c.Name, &c.Description, &c.Quantity, &c.Unit,
		&c.PricePerUnit, &c.HarvestDate, &c.Location, &c.ImageURL, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *CropRepository) Create(ctx context.Context, crop *domain.Crop) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO crops (id, farmer_id, name, description, quantity, unit,
			price_per_unit, harvest_date, location, image_url, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		crop.ID, crop.FarmerID, crop.Name, crop.Description, crop.Quantity, crop.Unit,
		crop.PricePerUnit, crop.HarvestDate, crop.Location, crop.ImageURL, crop.Status,
		crop.CreatedAt, crop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert crop: %w", err)
	}
	return nil
}

func (r *CropRepository) FindByID(ctx context.Context, id string) (*domain.Crop, error) {
	var c domain.Crop
	err := scanCrop(r.db.QueryRowContext(ctx,
		`SELECT `+cropColumns+` FROM crops c WHERE c.id = $1`, id), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCropNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find crop: %w", err)
	}
	return &c, nil
}

// List returns a page of crops newest first with the total match count.
// The free-text query matches name, description, and location
// case-insensitively.
func (r *CropRepository) List(ctx context.Context, filter ports.ListCropsFilter) ([]*ports.CropWithFarmer, int64, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.FarmerID != "" {
		where = append(where, "c.farmer_id = "+arg(filter.FarmerID))
	}
	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		where = append(where, "(c.name ILIKE "+p+" OR c.description ILIKE "+p+" OR c.location ILIKE "+p+")")
	}
	if filter.Status != "" {
		where = append(where, "c.status = "+arg(filter.Status))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM crops c`+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count crops: %w", err)
	}

	limit := arg(filter.Limit)
	offset := arg((filter.Page - 1) * filter.Limit)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+cropColumns+`, u.full_name
		 FROM crops c JOIN users u ON u.id = c.farmer_id`+cond+`
		 ORDER BY c.created_at DESC
		 LIMIT `+limit+` OFFSET `+offset,
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list crops: %w", err)
	}
	defer rows.Close()

	var crops []*ports.CropWithFarmer
	for rows.Next() {
		var cw ports.CropWithFarmer
		if err := scanCrop(rows, &cw.Crop, &cw.FarmerName); err != nil {
			return nil, 0, fmt.Errorf("scan crop: %w", err)
		}
		crops = append(crops, &cw)
	}
	return crops, total, rows.Err()
}

func (r *CropRepository) Update(ctx context.Context, crop *domain.Crop) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE crops SET name = $2, description = $3, quantity = $4, unit = $5,
			price_per_unit = $6, harvest_date = $7, location = $8, image_url = $9,
			status = $10, updated_at = $11
		 WHERE id = $1`,
		crop.ID, crop.Name, crop.Description, crop.Quantity, crop.Unit,
		crop.PricePerUnit, crop.HarvestDate, crop.Location, crop.ImageURL,
		crop.Status, crop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update crop: %w", err)
	}
	return requireRow(res, domain.ErrCropNotFound)
}

func (r *CropRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM crops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete crop: %w", err)
	}
	return requireRow(res, domain.ErrCropNotFound)
}

var _ ports.CropRepository = (*CropRepository)(nil)
