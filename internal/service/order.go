package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type OrderService struct {
	DB       *gorm.DB
	Users    *UserService
	Products *ProductService
}

type OrderItemInput struct {
	ProductID uint
	Quantity  uint
	Price     float64
}

type OrderInput struct {
	Status          string
	UserID          *uint
	CustomerEmail   string
	CustomerPhone   string
	DeliveryType    string
	DeliveryAddress string
	Comments        string
	OrderItems      []OrderItemInput
}

type UpdateOrderInput struct {
	Status *string
	UserID *uint
}

func (s *OrderService) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	if in.UserID != nil {
		if _, err := s.Users.GetByID(ctx, *in.UserID); err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return nil, apperr.New(apperr.Validation, "user not found")
			}
			return nil, err
		}
	}

	for _, item := range in.OrderItems {
		if _, err := s.Products.GetByID(ctx, item.ProductID); err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return nil, apperr.New(apperr.Validation,
					fmt.Sprintf("product with id %d not found", item.ProductID))
			}
			return nil, err
		}
	}

	status := in.Status
	if status == "" {
		status = models.OrderStatusNew
	}
	deliveryType := in.DeliveryType
	if deliveryType == "" {
		deliveryType = models.DeliveryTypePickup
	}

	order := models.Order{
		Status:          status,
		UserID:          in.UserID,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		DeliveryType:    deliveryType,
		DeliveryAddress: in.DeliveryAddress,
		Comments:        in.Comments,
	}
	for _, item := range in.OrderItems {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.DB.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create order", err)
	}
	return s.GetByID(ctx, order.ID)
}

func (s *OrderService) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := s.withItems(ctx).Order("id DESC").Find(&orders).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load orders", err)
	}
	return orders, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.withItems(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load order", err)
	}
	return &order, nil
}

func (s *OrderService) GetByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.withItems(ctx).Where("user_id = ?", userID).
		Order("id DESC").Find(&orders).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load orders", err)
	}
	return orders, nil
}

func (s *OrderService) Update(ctx context.Context, id uint, in UpdateOrderInput) (*models.Order, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.UserID != nil {
		if _, err := s.Users.GetByID(ctx, *in.UserID); err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return nil, apperr.New(apperr.Validation, "user not found")
			}
			return nil, err
		}
		updates["user_id"] = *in.UserID
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&models.Order{}).
			Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "could not update order", err)
		}
	}
	return s.GetByID(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id uint) error {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Select("OrderItems").Delete(order).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "could not delete order", err)
	}
	return nil
}

func (s *OrderService) withItems(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Model(&models.Order{}).
		Preload("OrderItems").Preload("OrderItems.Product")
}
