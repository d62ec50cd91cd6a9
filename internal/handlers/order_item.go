package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type OrderItemHandler struct {
	Service *service.OrderItemService
}

type CreateOrderItemRequest struct {
	OrderID   uint    `json:"orderId" validate:"required"`
	ProductID uint    `json:"productId" validate:"required"`
	Quantity  uint    `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}

type UpdateOrderItemRequest struct {
	Quantity *uint    `json:"quantity" validate:"omitempty,gt=0"`
	Price    *float64 `json:"price" validate:"omitempty,gt=0"`
}

func (h *OrderItemHandler) Create(c echo.Context) error {
	var req CreateOrderItemRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.Service.Create(c.Request().Context(), req.OrderID, req.ProductID, req.Quantity, req.Price)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *OrderItemHandler) GetByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *OrderItemHandler) GetByOrderID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.Service.GetByOrderID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *OrderItemHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateOrderItemRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.Service.Update(c.Request().Context(), id, service.UpdateOrderItemInput{
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *OrderItemHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
