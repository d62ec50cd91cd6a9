package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/middleware/auth"
	"github.com/ruslansymonenko/server-electro-grand/internal/mykafka"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type OrderHandler struct {
	Service  *service.OrderService
	Producer *mykafka.Producer
}

type OrderItemRequest struct {
	ProductID uint    `json:"productId" validate:"required"`
	Quantity  uint    `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}

type OrderRequest struct {
	UserID          *uint              `json:"userId"`
	CustomerEmail   string             `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string             `json:"customerPhone" validate:"required"`
	DeliveryType    string             `json:"deliveryType" validate:"omitempty,oneof=PICKUP COURIER NOVA_POST"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Comments        string             `json:"comments"`
	OrderItems      []OrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=NEW PENDING PAYED CANCELED DELIVERED COMPLETED"`
	UserID *uint   `json:"userId"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]service.OrderItemInput, len(req.OrderItems))
	for i, item := range req.OrderItems {
		items[i] = service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	order, err := h.Service.Create(c.Request().Context(), service.OrderInput{
		UserID:          req.UserID,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		DeliveryType:    req.DeliveryType,
		DeliveryAddress: req.DeliveryAddress,
		Comments:        req.Comments,
		OrderItems:      items,
	})
	if err != nil {
		return err
	}

	h.publishOrderEvent(c, "order_created", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetAll(c echo.Context) error {
	orders, err := h.Service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// GetByUserID lists any user's orders for the admin panel.
func (h *OrderHandler) GetByUserID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	orders, err := h.Service.GetByUserID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// GetMine lists the orders of the authenticated customer.
func (h *OrderHandler) GetMine(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return apperr.New(apperr.Unauthorized, "missing access token")
	}
	orders, err := h.Service.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.Service.Update(c.Request().Context(), id, service.UpdateOrderInput{
		Status: req.Status,
		UserID: req.UserID,
	})
	if err != nil {
		return err
	}

	h.publishOrderEvent(c, "order_updated", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}

func (h *OrderHandler) publishOrderEvent(c echo.Context, eventType string, orderID uint) {
	event := map[string]interface{}{
		"type":    eventType,
		"orderId": orderID,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(orderID), event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}
