package service

import (
	"context"
	"errors"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type BrandService struct {
	DB *gorm.DB
}

func (s *BrandService) Create(ctx context.Context, name string) (*models.Brand, error) {
	brand := models.Brand{
		Name: name,
		Slug: slug.Make(name),
	}
	if err := s.DB.WithContext(ctx).Create(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "brand already exists")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not create brand", err)
	}
	return &brand, nil
}

func (s *BrandService) GetAll(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&brands).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load brands", err)
	}
	return brands, nil
}

func (s *BrandService) GetByID(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := s.DB.WithContext(ctx).First(&brand, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "brand not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load brand", err)
	}
	return &brand, nil
}

func (s *BrandService) GetBySlug(ctx context.Context, brandSlug string) (*models.Brand, error) {
	var brand models.Brand
	err := s.DB.WithContext(ctx).Where("slug = ?", brandSlug).First(&brand).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "brand not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load brand", err)
	}
	return &brand, nil
}

func (s *BrandService) Update(ctx context.Context, id uint, name *string) (*models.Brand, error) {
	brand, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		brand.Name = *name
		brand.Slug = slug.Make(*name)
	}

	if err := s.DB.WithContext(ctx).Save(brand).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not update brand", err)
	}
	return brand, nil
}

func (s *BrandService) SetImage(ctx context.Context, id uint, imagePath string) (*models.Brand, error) {
	brand, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(brand).Update("image", imagePath).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not update brand image", err)
	}
	return brand, nil
}

func (s *BrandService) Delete(ctx context.Context, id uint) error {
	brand, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(brand).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "could not delete brand", err)
	}
	return nil
}
