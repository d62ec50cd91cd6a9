package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type AttributeValueHandler struct {
	Service *service.AttributeValueService
}

type AttributeValueRequest struct {
	Value       string `json:"value" validate:"required"`
	AttributeID uint   `json:"attributeId" validate:"required"`
}

type UpdateAttributeValueRequest struct {
	Value *string `json:"value"`
}

func (h *AttributeValueHandler) Create(c echo.Context) error {
	var req AttributeValueRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	value, err := h.Service.Create(c.Request().Context(), req.Value, req.AttributeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, value)
}

func (h *AttributeValueHandler) GetAll(c echo.Context) error {
	values, err := h.Service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, values)
}

func (h *AttributeValueHandler) GetByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	value, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, value)
}

func (h *AttributeValueHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateAttributeValueRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}

	value, err := h.Service.Update(c.Request().Context(), id, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, value)
}

func (h *AttributeValueHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
