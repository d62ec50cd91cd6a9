package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type MailerHandler struct {
	Service *service.MailerService
}

// Callback accepts a call-me-back form and mails the store staff.
func (h *MailerHandler) Callback(c echo.Context) error {
	var req service.CallbackRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.Service.SendCallback(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
