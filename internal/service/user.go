package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/hash"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type UserService struct {
	DB *gorm.DB
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load user", err)
	}
	return &user, nil
}

// Update applies a partial profile update. Role is not updatable here.
func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Email != nil && *in.Email != user.Email {
		var existing models.User
		err := s.DB.WithContext(ctx).Where("email = ?", *in.Email).First(&existing).Error
		if err == nil {
			return nil, apperr.New(apperr.Conflict, "email already in use")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.Internal, "could not check email", err)
		}
		updates["email"] = *in.Email
	}
	if in.Password != nil {
		digest, err := hash.Password(*in.Password)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "could not update user", err)
		}
		updates["password_hash"] = digest
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.Conflict, "email already in use")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not update user", err)
	}
	return user, nil
}
