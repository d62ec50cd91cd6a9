package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/models"
)

type ReviewService struct {
	DB       *gorm.DB
	Users    *UserService
	Products *ProductService
}

type ReviewAuthor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ReviewResponse pairs a review with its author's public name, the shape
// the storefront renders.
type ReviewResponse struct {
	Review models.Review `json:"review"`
	User   ReviewAuthor  `json:"user"`
}

type UpdateReviewInput struct {
	Rating *int
	Text   *string
}

func (s *ReviewService) Create(ctx context.Context, userID uint, productID uint, rating int, text string) (*ReviewResponse, error) {
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Validation, "product not found")
		}
		return nil, err
	}

	review := models.Review{
		Rating:    rating,
		Text:      text,
		ProductID: productID,
		UserID:    userID,
	}
	if err := s.DB.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not create review", err)
	}

	return &ReviewResponse{
		Review: review,
		User:   ReviewAuthor{ID: user.ID, Name: user.Name},
	}, nil
}

func (s *ReviewService) GetAll(ctx context.Context) ([]ReviewResponse, error) {
	var reviews []models.Review
	if err := s.DB.WithContext(ctx).Preload("User").Order("id DESC").
		Find(&reviews).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load reviews", err)
	}
	return toReviewResponses(reviews), nil
}

func (s *ReviewService) GetByID(ctx context.Context, id uint) (*ReviewResponse, error) {
	var review models.Review
	err := s.DB.WithContext(ctx).Preload("User").First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "review not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "could not load review", err)
	}
	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *ReviewService) GetByProductID(ctx context.Context, productID uint) ([]ReviewResponse, error) {
	var reviews []models.Review
	if err := s.DB.WithContext(ctx).Preload("User").
		Where("product_id = ?", productID).Order("id DESC").
		Find(&reviews).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, "could not load reviews", err)
	}
	return toReviewResponses(reviews), nil
}

func (s *ReviewService) Update(ctx context.Context, id uint, in UpdateReviewInput) (*ReviewResponse, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Rating != nil {
		updates["rating"] = *in.Rating
	}
	if in.Text != nil {
		updates["text"] = *in.Text
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&models.Review{}).
			Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, apperr.Wrap(apperr.Internal, "could not update review", err)
		}
	}
	return s.GetByID(ctx, id)
}

func (s *ReviewService) Delete(ctx context.Context, id uint) error {
	resp, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&models.Review{}, resp.Review.ID).Error; err != nil {
		return apperr.Wrap(apperr.Internal, "could not delete review", err)
	}
	return nil
}

func toReviewResponse(review models.Review) ReviewResponse {
	author := ReviewAuthor{ID: review.UserID}
	if review.User != nil {
		author.Name = review.User.Name
	}
	review.User = nil
	return ReviewResponse{Review: review, User: author}
}

func toReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = toReviewResponse(r)
	}
	return out
}
