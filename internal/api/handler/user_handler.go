package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/marketplace-api/internal/core/domain"
	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// UserHandler serves public profile lookups, the public admin directory,
// and the role-gated admin user management surface.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetProfile returns a user joined with its profile row.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  ports.UserProfile
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.service.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// ListAdmins returns the public directory of admin accounts.
//
// @Summary      List admin contacts
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /api/admins [get]
func (h *UserHandler) ListAdmins(c echo.Context) error {
	admins, err := h.service.ListAdmins(c.Request().Context())
	if err != nil {
		return err
	}
	if admins == nil {
		admins = []*domain.User{}
	}
	return c.JSON(http.StatusOK, admins)
}

// ListUsers returns every account. Admin surface.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.User
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

type adminCreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	UserType string `json:"user_type" validate:"required,oneof=farmer buyer admin"`
}

// CreateUser creates an account with an assignable role. Admin surface.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      adminCreateUserRequest  true  "New account"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/admin/users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req adminCreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.CreateUser(c.Request().Context(), caller, ports.AdminCreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.UserType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

type adminUpdateUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	UserType string `json:"user_type"`
	Password string `json:"password"`
}

// UpdateUser replaces the non-empty fields of an account. Admin surface.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "User id"
// @Param        body  body  adminUpdateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req adminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.UpdateUser(c.Request().Context(), caller, c.Param("id"), ports.AdminUpdateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.UserType,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account. Admin surface.
//
// @Summary      Delete a user
// @Tags         admin
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
