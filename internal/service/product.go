package service

import (
	"context"
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
	"github.com/ruslansymonenko/server-electro-grand/internal/util"
)

type ProductService struct {
	DB            *gorm.DB
	Categories    *CategoryService
	Subcategories *SubcategoryService
	Brands        *BrandService
}

type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	CategoryID    uint
	SubcategoryID uint
	BrandID       *uint
}

type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *float64
	CategoryID    *uint
	SubcategoryID *uint
	BrandID       *uint
}

// ProductFilters mirrors the storefront query string: price bounds plus
// category/subcategory/brand names.
type ProductFilters struct {
	MinPrice    *float64
	MaxPrice    *float64
	Category    string
	Subcategory string
	Brand       string
	Page        int
	PageSize    int
}

type ProductPage struct {
	Products      []models.Product `json:"products"`
	TotalProducts int64            `json:"totalProducts"`
	TotalPages    int              `json:"totalPages"`
	CurrentPage   int              `json:"currentPage"`
}

type ProductWithSimilar struct {
	models.Product
	SimilarProducts []models.Product `json:"similarProducts"`
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if _, err := s.Categories.GetByID(ctx, in.CategoryID); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Validation, "category not found")
		}
		return nil, err
	}
	if _, err := s.Subcategories.GetByID(ctx, in.SubcategoryID); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Validation, "subcategory not found")
		}
		return nil, err
	}
	if in.BrandID != nil {
		if _, err := s.Brands.GetByID(ctx, *in.BrandID); err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return nil, apperr.New(apperr.Validation, "brand not found")
			}
			return nil, err
		}
	}

	ok, err := s.Subcategories.BelongsToCategory(ctx, in.SubcategoryID, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.Validation, "subcategory is not linked with category")
	}

	description := in.Description
	if description == "" {
		description = in.Name
	}

	product := models.Product{
		Name:          in.Name,
		Slug:          slug.Make(in.Name),
		Description:   description,
		Price:         in.Price,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		BrandID:       in.BrandID,
	}
	if err := s.DB.WithContext(ctx).Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "product already exists")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not create product", err)
	}

	return s.GetByID(ctx, product.ID)
}

func (s *ProductService) GetAll(ctx context.Context, filters ProductFilters) (*ProductPage, error) {
	query := s.withPreloads(ctx)

	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.Category != "" {
		query = query.Where("category_id IN (?)",
			s.DB.Model(&models.Category{}).Select("id").Where("name = ?", filters.Category))
	}
	if filters.Subcategory != "" {
		query = query.Where("subcategory_id IN (?)",
			s.DB.Model(&models.Subcategory{}).Select("id").Where("name = ?", filters.Subcategory))
	}
	if filters.Brand != "" {
		query = query.Where("brand_id IN (?)",
			s.DB.Model(&models.Brand{}).Select("id").Where("name = ?", filters.Brand))
	}

	return s.page(query, filters.Page, filters.PageSize)
}

func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.withPreloads(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load product", err)
	}
	return &product, nil
}

// GetBySlug returns the product together with up to four products from
// the same category.
func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*ProductWithSimilar, error) {
	var product models.Product
	err := s.withPreloads(ctx).Where("slug = ?", productSlug).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load product", err)
	}

	var similar []models.Product
	err = s.DB.WithContext(ctx).
		Where("category_id = ? AND id <> ?", product.CategoryID, product.ID).
		Order("id DESC").Limit(4).Find(&similar).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load similar products", err)
	}

	return &ProductWithSimilar{Product: product, SimilarProducts: similar}, nil
}

func (s *ProductService) GetByBrandSlug(ctx context.Context, brandSlug string, page, pageSize int) (*ProductPage, error) {
	query := s.withPreloads(ctx).Where("brand_id IN (?)",
		s.DB.Model(&models.Brand{}).Select("id").Where("slug = ?", brandSlug))
	return s.page(query, page, pageSize)
}

func (s *ProductService) GetByCategorySlug(ctx context.Context, categorySlug string, page, pageSize int) (*ProductPage, error) {
	query := s.withPreloads(ctx).Where("category_id IN (?)",
		s.DB.Model(&models.Category{}).Select("id").Where("slug = ?", categorySlug))
	return s.page(query, page, pageSize)
}

func (s *ProductService) GetBySubcategorySlug(ctx context.Context, subcategorySlug string, page, pageSize int) (*ProductPage, error) {
	query := s.withPreloads(ctx).Where("subcategory_id IN (?)",
		s.DB.Model(&models.Subcategory{}).Select("id").Where("slug = ?", subcategorySlug))
	return s.page(query, page, pageSize)
}

func (s *ProductService) Update(ctx context.Context, id uint, in UpdateProductInput) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.CategoryID != nil {
		if _, err := s.Categories.GetByID(ctx, *in.CategoryID); err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return nil, apperr.New(apperr.Validation, "category not found")
			}
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.SubcategoryID != nil {
		if _, err := s.Subcategories.GetByID(ctx, *in.SubcategoryID); err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return nil, apperr.New(apperr.Validation, "subcategory not found")
			}
			return nil, err
		}
		product.SubcategoryID = *in.SubcategoryID
	}
	if in.CategoryID != nil || in.SubcategoryID != nil {
		ok, err := s.Subcategories.BelongsToCategory(ctx, product.SubcategoryID, product.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.New(apperr.Validation, "subcategory is not linked with category")
		}
	}
	if in.BrandID != nil {
		if _, err := s.Brands.GetByID(ctx, *in.BrandID); err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return nil, apperr.New(apperr.Validation, "brand not found")
			}
			return nil, err
		}
		product.BrandID = in.BrandID
	}
	if in.Name != nil {
		product.Name = *in.Name
		product.Slug = slug.Make(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}

	// Save would also write the preloaded associations back
	product.Category, product.Subcategory, product.Brand = nil, nil, nil
	if err := s.DB.WithContext(ctx).Save(product).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not update product", err)
	}
	return s.GetByID(ctx, id)
}

// SetImages replaces the stored image paths; the handler owns saving the
// uploaded files and cleaning up the replaced ones.
func (s *ProductService) SetImages(ctx context.Context, id uint, paths []string) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&models.Product{ID: id}).
		Update("images", paths).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not update product images", err)
	}
	product.Images = paths
	return product, nil
}

// Delete removes the product and returns the image paths that should be
// cleaned from disk.
func (s *ProductService) Delete(ctx context.Context, id uint) ([]string, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not delete product", err)
	}
	return product.Images, nil
}

func (s *ProductService) withPreloads(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Model(&models.Product{}).
		Preload("Category").Preload("Subcategory").Preload("Brand")
}

func (s *ProductService) page(query *gorm.DB, page, pageSize int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	offset, limit := util.Calculate(page, pageSize)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not count products", err)
	}

	var products []models.Product
	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load products", err)
	}

	return &ProductPage{
		Products:      products,
		TotalProducts: total,
		TotalPages:    util.TotalPages(total, limit),
		CurrentPage:   page,
	}, nil
}
