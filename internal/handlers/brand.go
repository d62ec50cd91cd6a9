package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
)

type BrandHandler struct {
	Service *service.BrandService
	Files   *service.FilesService
}

type BrandRequest struct {
	Name string `json:"name" validate:"required"`
}

type UpdateBrandRequest struct {
	Name *string `json:"name"`
}

func (h *BrandHandler) Create(c echo.Context) error {
	var req BrandRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	brand, err := h.Service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) GetAll(c echo.Context) error {
	brands, err := h.Service.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *BrandHandler) GetByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	brand, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) GetBySlug(c echo.Context) error {
	brand, err := h.Service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateBrandRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}

	brand, err := h.Service.Update(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) SetImage(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	brand, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid multipart form", err)
	}
	files := form.File["files"]

	saved, err := h.Files.Save(c.Request().Context(), files, service.FolderBrands, []string{brand.Image})
	if err != nil {
		return err
	}

	brand, err = h.Service.SetImage(c.Request().Context(), id, saved[0].URL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, brand)
}

func (h *BrandHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
