package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type AttributeHandler struct {
	Service *service.AttributeService
}

type AttributeRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateAttributeRequest struct {
	Name *string `json:"name"`
}

func (h *AttributeHandler) Create(c echo.Context) error {
	var req AttributeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	attribute, err := h.Service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attribute)
}

func (h *AttributeHandler) GetAll(c echo.Context) error {
	attributes, err := h.Service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attributes)
}

func (h *AttributeHandler) GetByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	attribute, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attribute)
}

func (h *AttributeHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateAttributeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}

	attribute, err := h.Service.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, attribute)
}

func (h *AttributeHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
