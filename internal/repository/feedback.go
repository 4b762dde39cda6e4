package repository

import (
	"context"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// FeedbackRepository defines persistence operations for swap feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	ExistsForSwapFrom(ctx context.Context, swapID, fromUserID uint) (bool, error)
	ListReceived(ctx context.Context, userID uint) ([]models.Feedback, error)
	ForSwap(ctx context.Context, swapID uint) ([]models.Feedback, error)
	AverageRating(ctx context.Context, userID uint) (float64, int64, error)
	Count(ctx context.Context) (int64, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository returns a new FeedbackRepository implementation.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if err := r.db.WithContext(ctx).Create(fb).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewDuplicateFeedbackError()
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateRating(ctx, fb.ToUserID)
	return nil
}

func (r *feedbackRepository) ExistsForSwapFrom(ctx context.Context, swapID, fromUserID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Where("swap_request_id = ? AND from_user_id = ?", swapID, fromUserID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *feedbackRepository) ListReceived(ctx context.Context, userID uint) ([]models.Feedback, error) {
	var items []models.Feedback
	if err := r.db.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Preload("FromUser").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *feedbackRepository) ForSwap(ctx context.Context, swapID uint) ([]models.Feedback, error) {
	var items []models.Feedback
	if err := r.db.WithContext(ctx).
		Where("swap_request_id = ?", swapID).
		Preload("FromUser").
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

// ratingAggregate receives the AVG/COUNT projection.
type ratingAggregate struct {
	Average float64
	Count   int64
}

func (r *feedbackRepository) AverageRating(ctx context.Context, userID uint) (float64, int64, error) {
	var agg ratingAggregate
	if err := r.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("to_user_id = ?", userID).
		Scan(&agg).Error; err != nil {
		return 0, 0, models.NewInternalError(err)
	}
	return agg.Average, agg.Count, nil
}

func (r *feedbackRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Feedback{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
