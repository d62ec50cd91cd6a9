package service

import (
	"context"
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type CategoryService struct {
	DB *gorm.DB
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	category := models.Category{
		Name: name,
		Slug: slug.Make(name),
	}
	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "category already exists")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not create category", err)
	}
	return &category, nil
}

func (s *CategoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.WithContext(ctx).Preload("Subcategories").Order("id ASC").
		Find(&categories).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load categories", err)
	}
	return categories, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := s.DB.WithContext(ctx).Preload("Subcategories").First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "category not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load category", err)
	}
	return &category, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	var category models.Category
	err := s.DB.WithContext(ctx).Preload("Subcategories").
		Where("slug = ?", categorySlug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "category not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load category", err)
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, name *string) (*models.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		category.Name = *name
		category.Slug = slug.Make(*name)
	}

	if err := s.DB.WithContext(ctx).Save(category).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not update category", err)
	}
	return category, nil
}

func (s *CategoryService) SetImage(ctx context.Context, id uint, imagePath string) (*models.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(category).Update("image", imagePath).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not update category image", err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(category).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "could not delete category", err)
	}
	return nil
}
