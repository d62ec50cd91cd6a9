package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type ProductAttributeService struct {
	DB              *gorm.DB
	Products        *ProductService
	AttributeValues *AttributeValueService
}

func (s *ProductAttributeService) Create(ctx context.Context, productID, attributeValueID uint) (*models.ProductAttribute, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Validation, "product not found")
		}
		return nil, err
	}
	if _, err := s.AttributeValues.GetByID(ctx, attributeValueID); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Validation, "attribute value not found")
		}
		return nil, err
	}

	link := models.ProductAttribute{
		ProductID:        productID,
		AttributeValueID: attributeValueID,
	}
	if err := s.DB.WithContext(ctx).Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "product attribute already exists")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not create product attribute", err)
	}
	return &link, nil
}

func (s *ProductAttributeService) GetAll(ctx context.Context) ([]models.ProductAttribute, error) {
	var links []models.ProductAttribute
	if err := s.DB.WithContext(ctx).Preload("AttributeValue.Attribute").Order("id ASC").
		Find(&links).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load product attributes", err)
	}
	return links, nil
}

func (s *ProductAttributeService) GetByID(ctx context.Context, id uint) (*models.ProductAttribute, error) {
	var link models.ProductAttribute
	err := s.DB.WithContext(ctx).Preload("AttributeValue.Attribute").First(&link, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "product attribute not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load product attribute", err)
	}
	return &link, nil
}

func (s *ProductAttributeService) GetByProductID(ctx context.Context, productID uint) ([]models.ProductAttribute, error) {
	var links []models.ProductAttribute
	if err := s.DB.WithContext(ctx).Preload("AttributeValue.Attribute").
		Where("product_id = ?", productID).Find(&links).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load product attributes", err)
	}
	return links, nil
}

func (s *ProductAttributeService) Delete(ctx context.Context, id uint) error {
	link, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(link).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "could not delete product attribute", err)
	}
	return nil
}
