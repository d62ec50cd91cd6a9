package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type SubcategoryHandler struct {
	Service *service.SubcategoryService
	Files   *service.FilesService
}

type SubcategoryRequest struct {
	Name       string `json:"name" validate:"required"`
	CategoryID uint   `json:"categoryId" validate:"required"`
}

type UpdateSubcategoryRequest struct {
	Name       *string `json:"name"`
	CategoryID *uint   `json:"categoryId"`
}

func (h *SubcategoryHandler) Create(c echo.Context) error {
	var req SubcategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	subcategory, err := h.Service.Create(c.Request().Context(), req.Name, req.CategoryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subcategory)
}

func (h *SubcategoryHandler) GetAll(c echo.Context) error {
	subcategories, err := h.Service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subcategories)
}

func (h *SubcategoryHandler) GetByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	subcategory, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subcategory)
}

func (h *SubcategoryHandler) GetBySlug(c echo.Context) error {
	subcategory, err := h.Service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subcategory)
}

func (h *SubcategoryHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateSubcategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}

	subcategory, err := h.Service.Update(c.Request().Context(), id, req.Name, req.CategoryID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subcategory)
}

func (h *SubcategoryHandler) SetImage(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	subcategory, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid multipart form", err)
	}
	files := form.File["files"]

	saved, err := h.Files.Save(c.Request().Context(), files, service.FolderSubcategories, []string{subcategory.Image})
	if err != nil {
		return err
	}

	subcategory, err = h.Service.SetImage(c.Request().Context(), id, saved[0].URL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subcategory)
}

func (h *SubcategoryHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
