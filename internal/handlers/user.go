package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/middleware/auth"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type UserHandler struct {
	Service *service.UserService
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

func (h *UserHandler) Profile(c echo.Context) error {
	id, ok := auth.UserID(c)
	if !ok {
		return apperr.New(apperr.Unauthorized, "missing access token")
	}

	user, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, ok := auth.UserID(c)
	if !ok {
		return apperr.New(apperr.Unauthorized, "missing access token")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.Service.Update(c.Request().Context(), id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
