package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/middleware/auth"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type PaymentHandler struct {
	Service *service.PaymentService
}

type PaymentRequest struct {
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	OrderID uint    `json:"orderId" validate:"required"`
	UserID  *uint   `json:"userId"`
}

type UpdatePaymentRequest struct {
	Status *string  `json:"status" validate:"omitempty,oneof=PENDING PAYED CANCELED REFUNDED"`
	Amount *float64 `json:"amount" validate:"omitempty,gt=0"`
}

func (h *PaymentHandler) Create(c echo.Context) error {
	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.Service.Create(c.Request().Context(), req.Amount, req.OrderID, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) GetAll(c echo.Context) error {
	payments, err := h.Service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) GetByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	payment, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) GetByOrderID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	payments, err := h.Service.GetByOrderID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// GetByUserID lists any user's payments for the admin panel.
func (h *PaymentHandler) GetByUserID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	payments, err := h.Service.GetByUserID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// GetMine lists the payments of the authenticated customer.
func (h *PaymentHandler) GetMine(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return apperr.New(apperr.Unauthorized, "missing access token")
	}
	payments, err := h.Service.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.Service.Update(c.Request().Context(), id, service.UpdatePaymentInput{
		Status: req.Status,
		Amount: req.Amount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
