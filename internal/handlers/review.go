package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/middleware/auth"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type ReviewHandler struct {
	Service *service.ReviewService
}

type ReviewRequest struct {
	ProductID uint   `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Text      string `json:"text"`
}

type UpdateReviewRequest struct {
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Text   *string `json:"text"`
}

// Create posts a review as the authenticated customer.
func (h *ReviewHandler) Create(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return apperr.New(apperr.Unauthorized, "missing access token")
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.Service.Create(c.Request().Context(), userID, req.ProductID, req.Rating, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) GetAll(c echo.Context) error {
	reviews, err := h.Service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) GetByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	review, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) GetByProductID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	reviews, err := h.Service.GetByProductID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	review, err := h.Service.Update(c.Request().Context(), id, service.UpdateReviewInput{
		Rating: req.Rating,
		Text:   req.Text,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
