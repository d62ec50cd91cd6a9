package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type AttributeService struct {
	DB *gorm.DB
}

func (s *AttributeService) Create(ctx context.Context, name string) (*models.Attribute, error) {
	attribute := models.Attribute{Name: name}
	if err := s.DB.WithContext(ctx).Create(&attribute).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create attribute", err)
	}
	return &attribute, nil
}

func (s *AttributeService) GetAll(ctx context.Context) ([]models.Attribute, error) {
	var attributes []models.Attribute
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&attributes).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load attributes", err)
	}
	return attributes, nil
}

func (s *AttributeService) GetByID(ctx context.Context, id uint) (*models.Attribute, error) {
	var attribute models.Attribute
	if err := s.DB.WithContext(ctx).First(&attribute, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "attribute not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load attribute", err)
	}
	return &attribute, nil
}

func (s *AttributeService) Update(ctx context.Context, id uint, name *string) (*models.Attribute, error) {
	attribute, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		attribute.Name = *name
	}
	if err := s.DB.WithContext(ctx).Save(attribute).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not update attribute", err)
	}
	return attribute, nil
}

func (s *AttributeService) Delete(ctx context.Context, id uint) error {
	attribute, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(attribute).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "could not delete attribute", err)
	}
	return nil
}
