package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type CategoryHandler struct {
	Service *service.CategoryService
	Files   *service.FilesService
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name"`
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	category, err := h.Service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) GetAll(c echo.Context) error {
	categories, err := h.Service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) GetBySlug(c echo.Context) error {
	category, err := h.Service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}

	category, err := h.Service.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// SetImage replaces the category image with an uploaded file.
func (h *CategoryHandler) SetImage(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid multipart form", err)
	}
	files := form.File["files"]

	saved, err := h.Files.Save(c.Request().Context(), files, service.FolderCategories, []string{category.Image})
	if err != nil {
		return err
	}

	category, err = h.Service.SetImage(c.Request().Context(), id, saved[0].URL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
