package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"meetconnect/internal/service"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Account
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	account, err := h.svc.GetProfile(c.Request().Context(), caller.ID())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateProfile godoc
// @Summary Update the caller's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateAccountRequest true "Fields to change"
// @Success 200 {object} model.Account
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req UpdateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	account, err := h.svc.UpdateProfile(c.Request().Context(), caller.ID(), req.toUpdate())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}
