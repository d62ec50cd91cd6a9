package service

import (
	"context"
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type SubcategoryService struct {
	DB         *gorm.DB
	Categories *CategoryService
}

func (s *SubcategoryService) Create(ctx context.Context, name string, categoryID uint) (*models.Subcategory, error) {
	if _, err := s.Categories.GetByID(ctx, categoryID); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Validation, "category not found")
		}
		return nil, err
	}

	subcategory := models.Subcategory{
		Name:       name,
		Slug:       slug.Make(name),
		CategoryID: categoryID,
	}
	if err := s.DB.WithContext(ctx).Create(&subcategory).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "subcategory already exists")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not create subcategory", err)
	}
	return &subcategory, nil
}

func (s *SubcategoryService) GetAll(ctx context.Context) ([]models.Subcategory, error) {
	var subcategories []models.Subcategory
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&subcategories).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load subcategories", err)
	}
	return subcategories, nil
}

func (s *SubcategoryService) GetByID(ctx context.Context, id uint) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	if err := s.DB.WithContext(ctx).First(&subcategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "subcategory not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load subcategory", err)
	}
	return &subcategory, nil
}

func (s *SubcategoryService) GetBySlug(ctx context.Context, subcategorySlug string) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	err := s.DB.WithContext(ctx).Where("slug = ?", subcategorySlug).First(&subcategory).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "subcategory not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load subcategory", err)
	}
	return &subcategory, nil
}

// BelongsToCategory reports whether the subcategory is linked to the
// category, the referential check product creation depends on.
func (s *SubcategoryService) BelongsToCategory(ctx context.Context, subcategoryID, categoryID uint) (bool, error) {
	subcategory, err := s.GetByID(ctx, subcategoryID)
	if err != nil {
		return false, err
	}
	return subcategory.CategoryID == categoryID, nil
}

func (s *SubcategoryService) Update(ctx context.Context, id uint, name *string, categoryID *uint) (*models.Subcategory, error) {
	subcategory, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		if _, err := s.Categories.GetByID(ctx, *categoryID); err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return nil, apperr.New(apperr.Validation, "category not found")
			}
			return nil, err
		}
		subcategory.CategoryID = *categoryID
	}
	if name != nil {
		subcategory.Name = *name
		subcategory.Slug = slug.Make(*name)
	}

	if err := s.DB.WithContext(ctx).Save(subcategory).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not update subcategory", err)
	}
	return subcategory, nil
}

func (s *SubcategoryService) SetImage(ctx context.Context, id uint, imagePath string) (*models.Subcategory, error) {
	subcategory, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(subcategory).Update("image", imagePath).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not update subcategory image", err)
	}
	return subcategory, nil
}

func (s *SubcategoryService) Delete(ctx context.Context, id uint) error {
	subcategory, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(subcategory).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "could not delete subcategory", err)
	}
	return nil
}
