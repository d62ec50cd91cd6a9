package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type ProductAttributeHandler struct {
	Service *service.ProductAttributeService
}

type ProductAttributeRequest struct {
	ProductID        uint `json:"productId" validate:"required"`
	AttributeValueID uint `json:"attributeValueId" validate:"required"`
}

func (h *ProductAttributeHandler) Create(c echo.Context) error {
	var req ProductAttributeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	link, err := h.Service.Create(c.Request().Context(), req.ProductID, req.AttributeValueID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, link)
}

func (h *ProductAttributeHandler) GetAll(c echo.Context) error {
	links, err := h.Service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, links)
}

func (h *ProductAttributeHandler) GetByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	link, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, link)
}

func (h *ProductAttributeHandler) GetByProductID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	links, err := h.Service.GetByProductID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, links)
}

func (h *ProductAttributeHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
