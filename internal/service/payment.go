package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type PaymentService struct {
	DB     *gorm.DB
	Orders *OrderService
	Users  *UserService
}

type UpdatePaymentInput struct {
	Status *string
	Amount *float64
}

// Create registers a payment for an existing order. New payments always
// start PENDING regardless of the request.
func (s *PaymentService) Create(ctx context.Context, amount float64, orderID uint, userID *uint) (*models.Payment, error) {
	if _, err := s.Orders.GetByID(ctx, orderID); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Validation, "order not found")
		}
		return nil, err
	}
	if userID != nil {
		if _, err := s.Users.GetByID(ctx, *userID); err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return nil, apperr.New(apperr.Validation, "user not found")
			}
			return nil, err
		}
	}

	payment := models.Payment{
		Amount:  amount,
		Status:  models.PaymentStatusPending,
		OrderID: orderID,
		UserID:  userID,
	}
	if err := s.DB.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create payment", err)
	}
	return &payment, nil
}

func (s *PaymentService) GetAll(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.WithContext(ctx).Order("id DESC").Find(&payments).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load payments", err)
	}
	return payments, nil
}

func (s *PaymentService) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.DB.WithContext(ctx).First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "payment not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load payment", err)
	}
	return &payment, nil
}

func (s *PaymentService) GetByOrderID(ctx context.Context, orderID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.WithContext(ctx).Where("order_id = ?", orderID).
		Find(&payments).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load payments", err)
	}
	return payments, nil
}

func (s *PaymentService) GetByUserID(ctx context.Context, userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).
		Find(&payments).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load payments", err)
	}
	return payments, nil
}

func (s *PaymentService) Update(ctx context.Context, id uint, in UpdatePaymentInput) (*models.Payment, error) {
	payment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.Amount != nil {
		updates["amount"] = *in.Amount
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(payment).Updates(updates).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "could not update payment", err)
		}
	}
	return payment, nil
}

func (s *PaymentService) Delete(ctx context.Context, id uint) error {
	payment, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(payment).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "could not delete payment", err)
	}
	return nil
}
