package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type OrderItemService struct {
	DB       *gorm.DB
	Orders   *OrderService
	Products *ProductService
}

type UpdateOrderItemInput struct {
	Quantity *uint
	Price    *float64
}

func (s *OrderItemService) Create(ctx context.Context, orderID, productID, quantity uint, price float64) (*models.OrderItem, error) {
	if _, err := s.Orders.GetByID(ctx, orderID); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Validation, "order not found")
		}
		return nil, err
	}
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Validation, "product not found")
		}
		return nil, err
	}

	item := models.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Price:     price,
	}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create order item", err)
	}
	return &item, nil
}

func (s *OrderItemService) GetByID(ctx context.Context, id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := s.DB.WithContext(ctx).Preload("Product").First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order item not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load order item", err)
	}
	return &item, nil
}

func (s *OrderItemService) GetByOrderID(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.DB.WithContext(ctx).Preload("Product").
		Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load order items", err)
	}
	return items, nil
}

func (s *OrderItemService) Update(ctx context.Context, id uint, in UpdateOrderItemInput) (*models.OrderItem, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Quantity != nil {
		updates["quantity"] = *in.Quantity
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "could not update order item", err)
		}
	}
	return item, nil
}

func (s *OrderItemService) Delete(ctx context.Context, id uint) error {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(item).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "could not delete order item", err)
	}
	return nil
}
