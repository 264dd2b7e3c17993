package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// MessageHandler serves the polled inbox.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type sendMessageRequest struct {
	SenderID   string `json:"senderId" validate:"required"`
	ReceiverID string `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}

// Send creates a message between an allowed role pair.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Send(c.Request().Context(), req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// List returns a user's messages, both directions, newest first.
//
// @Summary      List a user's messages
// @Tags         messages
// @Produce      json
// @Param        userId  query  string  true  "User id"
// @Success      200  {array}  ports.MessageView
// @Failure      400  {object}  map[string]string
// @Router       /api/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	messages, err := h.service.ListForUser(c.Request().Context(), c.QueryParam("userId"))
	if err != nil {
		return err
	}
	if messages == nil {
		messages = []*ports.MessageView{}
	}
	return c.JSON(http.StatusOK, messages)
}

type markReadRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// MarkRead flips a message's read flag. Receiver only.
//
// @Summary      Mark a message as read
// @Tags         messages
// @Accept       json
// @Param        id    path  string           true  "Message id"
// @Param        body  body  markReadRequest  true  "Acting user"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/messages/{id}/read [put]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	var req markReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.MarkRead(c.Request().Context(), c.Param("id"), req.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
