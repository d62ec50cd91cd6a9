package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type AttributeValueService struct {
	DB         *gorm.DB
	Attributes *AttributeService
}

func (s *AttributeValueService) Create(ctx context.Context, value string, attributeID uint) (*models.AttributeValue, error) {
	if _, err := s.Attributes.GetByID(ctx, attributeID); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Validation, "attribute not found")
		}
		return nil, err
	}

	attributeValue := models.AttributeValue{
		Value:       value,
		AttributeID: attributeID,
	}
	if err := s.DB.WithContext(ctx).Create(&attributeValue).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create attribute value", err)
	}
	return &attributeValue, nil
}

func (s *AttributeValueService) GetAll(ctx context.Context) ([]models.AttributeValue, error) {
	var values []models.AttributeValue
	if err := s.DB.WithContext(ctx).Preload("Attribute").Order("id ASC").
		Find(&values).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load attribute values", err)
	}
	return values, nil
}

func (s *AttributeValueService) GetByID(ctx context.Context, id uint) (*models.AttributeValue, error) {
	var value models.AttributeValue
	err := s.DB.WithContext(ctx).Preload("Attribute").First(&value, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "attribute value not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load attribute value", err)
	}
	return &value, nil
}

func (s *AttributeValueService) Update(ctx context.Context, id uint, value *string) (*models.AttributeValue, error) {
	attributeValue, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if value != nil {
		attributeValue.Value = *value
	}
	if err := s.DB.WithContext(ctx).Save(attributeValue).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not update attribute value", err)
	}
	return attributeValue, nil
}

func (s *AttributeValueService) Delete(ctx context.Context, id uint) error {
	value, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(value).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "could not delete attribute value", err)
	}
	return nil
}
