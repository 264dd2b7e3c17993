package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// OrderRepository implements ports.OrderRepository on Postgres.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orders (id, crop_id, buyer_id, quantity, total_price,
			buyer_contact, status, approved_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		order.ID, order.CropID, order.BuyerID, order.Quantity, order.TotalPrice,
		order.BuyerContact, order.Status, order.ApprovedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRowContext(ctx,
		`SELECT id, crop_id, buyer_id, quantity, total_price, buyer_contact,
			status, approved_by, created_at, updated_at
		 FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.CropID, &o.BuyerID, &o.Quantity, &o.TotalPrice, &o.BuyerContact,
		&o.Status, &o.ApprovedBy, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &o, nil
}

// viewQuery joins orders to their crop, buyer, and (when set) approver.
const viewQuery = `
	SELECT o.id, o.crop_id, o.buyer_id, o.quantity, o.total_price,
		o.buyer_contact, o.status, o.approved_by, o.created_at, o.updated_at,
		c.farmer_id, c.name, c.image_url,
		bu.full_name, COALESCE(au.full_name, '')
	FROM orders o
	JOIN crops c ON c.id = o.crop_id
	JOIN users bu ON bu.id = o.buyer_id
	LEFT JOIN users au ON au.id = o.approved_by`

func scanOrderView(row interface{ Scan(...any) error }) (*ports.OrderView, error) {
	var v ports.OrderView
	err := row.Scan(
		&v.ID, &v.CropID, &v.BuyerID, &v.Quantity, &v.TotalPrice,
		&v.BuyerContact, &v.Status, &v.ApprovedBy, &v.CreatedAt, &v.UpdatedAt,
		&v.FarmerID, &v.CropName, &v.ImageURL,
		&v.BuyerName, &v.ApproverName,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *OrderRepository) FindView(ctx context.Context, id string) (*ports.OrderView, error) {
	v, err := scanOrderView(r.db.QueryRowContext(ctx, viewQuery+` WHERE o.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order view: %w", err)
	}
	return v, nil
}

func (r *OrderRepository) List(ctx context.Context, farmerID string) ([]*ports.OrderView, error) {
	query := viewQuery
	var args []any
	if farmerID != "" {
		query += ` WHERE c.farmer_id = $1`
		args = append(args, farmerID)
	}
	query += ` ORDER BY o.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*ports.OrderView
	for rows.Next() {
		v, err := scanOrderView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, v)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, approvedBy string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, approved_by = $3, updated_at = $4 WHERE id = $1`,
		id, status, approvedBy, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return requireRow(res, domain.ErrOrderNotFound)
}

var _ ports.OrderRepository = (*OrderRepository)(nil)
