package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/es"
	"github.com/ruslansymonenko/server-electro-grand/internal/mykafka"
	"github.com/ruslansymonenko/server-electro-grand/internal/service"
	"github.com/ruslansymonenko/server-electro-grand/internal/service/search"
	"github.com/ruslansymonenko/server-electro-grand/internal/util"
)

type ProductHandler struct {
	Service  *service.ProductService
	Files    *service.FilesService
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

type ProductRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	CategoryID    uint    `json:"categoryId" validate:"required"`
	SubcategoryID uint    `json:"subcategoryId" validate:"required"`
	BrandID       *uint   `json:"brandId"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gt=0"`
	CategoryID    *uint    `json:"categoryId"`
	SubcategoryID *uint    `json:"subcategoryId"`
	BrandID       *uint    `json:"brandId"`
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.Service.Create(c.Request().Context(), service.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		BrandID:       req.BrandID,
	})
	if err != nil {
		return err
	}

	h.publishProductEvent(c, "product_created", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetAll(c echo.Context) error {
	filters := service.ProductFilters{
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
		Brand:       c.QueryParam("brand"),
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "pageSize", util.DefaultPageSize),
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinPrice = &v
		}
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxPrice = &v
		}
	}

	page, err := h.Service.GetAll(c.Request().Context(), filters)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) GetByID(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetBySlug(c echo.Context) error {
	product, err := h.Service.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetByBrandSlug(c echo.Context) error {
	page, err := h.Service.GetByBrandSlug(c.Request().Context(), c.Param("slug"),
		queryInt(c, "page", 1), queryInt(c, "pageSize", util.DefaultPageSize))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) GetByCategorySlug(c echo.Context) error {
	page, err := h.Service.GetByCategorySlug(c.Request().Context(), c.Param("slug"),
		queryInt(c, "page", 1), queryInt(c, "pageSize", util.DefaultPageSize))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) GetBySubcategorySlug(c echo.Context) error {
	page, err := h.Service.GetBySubcategorySlug(c.Request().Context(), c.Param("slug"),
		queryInt(c, "page", 1), queryInt(c, "pageSize", util.DefaultPageSize))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Search runs the full-text product search against the search index.
func (h *ProductHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperr.New(apperr.Validation, "query parameter q is required")
	}
	if h.ES == nil {
		return apperr.New(apperr.Internal, "search is not configured")
	}

	page := queryInt(c, "page", 1)
	size := queryInt(c, "pageSize", util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, products, err := search.Products(c.Request().Context(), h.ES, es.ProductIndex, query, from, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"products":      products,
		"totalProducts": total,
		"totalPages":    util.TotalPages(total, limit),
		"currentPage":   page,
	})
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.Service.Update(c.Request().Context(), id, service.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		BrandID:       req.BrandID,
	})
	if err != nil {
		return err
	}

	h.publishProductEvent(c, "product_updated", product.ID)
	return c.JSON(http.StatusOK, product)
}

// SetImages replaces the product gallery with the uploaded files.
func (h *ProductHandler) SetImages(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.Service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperr.Wrap(apperr.Validation, "invalid multipart form", err)
	}
	files := form.File["files"]

	saved, err := h.Files.Save(c.Request().Context(), files, service.FolderProducts, product.Images)
	if err != nil {
		return err
	}

	paths := make([]string, len(saved))
	for i, f := range saved {
		paths[i] = f.URL
	}

	product, err = h.Service.SetImages(c.Request().Context(), id, paths)
	if err != nil {
		return err
	}

	h.publishProductEvent(c, "product_updated", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	oldImages, err := h.Service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	h.Files.RemoveOld(c.Request().Context(), oldImages)

	h.publishProductEvent(c, "product_deleted", id)
	return c.JSON(http.StatusOK, true)
}

// publishProductEvent feeds the search indexer. Delivery is best effort,
// a broker outage must not fail the request.
func (h *ProductHandler) publishProductEvent(c echo.Context, eventType string, productID uint) {
	event := map[string]interface{}{
		"type":      eventType,
		"productId": productID,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(productID), event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}
