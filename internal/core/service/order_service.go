package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/agriconnect/marketplace-api/internal/api/metrics"
	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// OrderService implements the order ledger and the approval workflow.
type OrderService struct {
	orders   ports.OrderRepository
	crops    ports.CropRepository
	users    ports.UserRepository
	messages ports.MessageRepository
	logger   zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	crops ports.CropRepository,
	users ports.UserRepository,
	messages ports.MessageRepository,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		crops:    crops,
		users:    users,
		messages: messages,
		logger:   logger,
	}
}

// CreateBatch inserts one pending order per checkout item. Each item
// re-reads its crop for the current price and is committed individually,
// strictly in the order supplied. A missing crop aborts the batch at that
// item; rows already inserted stay committed.
func (s *OrderService) CreateBatch(ctx context.Context, input ports.CreateOrdersInput) ([]*domain.Order, error) {
	if input.BuyerID == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidOrder
	}

	created := make([]*domain.Order, 0, len(input.Items))
	for _, item := range input.Items {
		crop, err := s.crops.FindByID(ctx, item.CropID)
		if err != nil {
			if err == domain.ErrCropNotFound {
				return created, fmt.Errorf("%w: %s", domain.ErrCropNotFound, item.CropID)
			}
			return created, err
		}

		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}

		now := time.Now().UTC()
		order := &domain.Order{
			ID:           uuid.NewString(),
			CropID:       crop.ID,
			BuyerID:      input.BuyerID,
			Quantity:     qty,
			TotalPrice:   crop.PricePerUnit.Mul(decimal.NewFromFloat(qty)),
			BuyerContact: input.BuyerContact,
			Status:       domain.OrderPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := s.orders.Create(ctx, order); err != nil {
			s.logger.Error().Err(err).Str("crop_id", crop.ID).Msg("failed to insert order")
			return created, err
		}

		created = append(created, order)
		metrics.OrdersCreatedTotal.Inc()
	}

	s.logger.Info().Str("buyer_id", input.BuyerID).Int("count", len(created)).Msg("order batch created")
	return created, nil
}

// List returns enriched orders newest first, optionally scoped to orders
// against one farmer's crops.
func (s *OrderService) List(ctx context.Context, farmerID string) ([]*ports.OrderView, error) {
	return s.orders.List(ctx, farmerID)
}

// Approve transitions a pending order to confirmed, records the approver,
// and notifies the crop's owning farmer. The notification insert is not
// atomic with the status update; a failed insert is logged and does not
// roll back the approval.
func (s *OrderService) Approve(ctx context.Context, orderID string, caller ports.Caller) (*ports.OrderView, error) {
	if !domain.Authorize(caller.Role, domain.ActionApproveOrder, "") {
		return nil, domain.ErrForbidden
	}

	approver, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	view, err := s.orders.FindView(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if view.Status != domain.OrderPending {
		return nil, domain.ErrOrderNotPending
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderConfirmed, approver.ID); err != nil {
		return nil, fmt.Errorf("approve order: %w", err)
	}

	notice := &domain.Message{
		ID:         uuid.NewString(),
		SenderID:   approver.ID,
		ReceiverID: view.FarmerID,
		Content: fmt.Sprintf("Order %s for your crop %q has been approved by %s.",
			view.ID, view.CropName, approver.FullName),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, notice); err != nil {
		s.logger.Warn().Err(err).Str("order_id", orderID).Msg("failed to notify farmer of approval")
	}

	metrics.OrdersApprovedTotal.Inc()
	s.logger.Info().
		Str("order_id", orderID).
		Str("approved_by", approver.ID).
		Msg("order approved")

	approved, err := s.orders.FindView(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return approved, nil
}
