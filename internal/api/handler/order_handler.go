package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for the order ledger and the
// approval workflow.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type orderItemRequest struct {
	CropID   string  `json:"crop_id" validate:"required"`
	Quantity float64 `json:"quantity"`
}

type createOrdersRequest struct {
	BuyerID      string             `json:"buyer_id" validate:"required"`
	BuyerContact string             `json:"buyer_contact"`
	Items        []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type createOrdersResponse struct {
	Created []*domain.Order `json:"created"`
}

// Create inserts one pending order per checkout item.
//
// @Summary      Create orders from a cart checkout
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      createOrdersRequest  true  "Checkout batch"
// @Success      201   {object}  createOrdersResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrdersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{CropID: it.CropID, Quantity: it.Quantity})
	}

	created, err := h.service.CreateBatch(c.Request().Context(), ports.CreateOrdersInput{
		BuyerID:      req.BuyerID,
		BuyerContact: req.BuyerContact,
		Items:        items,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createOrdersResponse{Created: created})
}

// List returns orders newest first, optionally scoped to one farmer.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        farmerId  query  string  false  "Scope to orders against this farmer's crops"
// @Success      200  {array}  ports.OrderView
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.service.List(c.Request().Context(), c.QueryParam("farmerId"))
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []*ports.OrderView{}
	}
	return c.JSON(http.StatusOK, orders)
}

// Approve transitions a pending order to confirmed and notifies the
// crop's owning farmer.
//
// @Summary      Approve a pending order
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "Order id"
// @Success      200  {object}  ports.OrderView
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/orders/{id}/approve [put]
func (h *OrderHandler) Approve(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	order, err := h.service.Approve(c.Request().Context(), c.Param("id"), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
