package service

import (
	"context"
	"math"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/models"
	"skillswap/internal/repository"

	"gorm.io/gorm"
)

// SubmitFeedbackInput carries the fields for a new feedback entry.
type SubmitFeedbackInput struct {
	SwapRequestID uint   `json:"swap_request_id"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

// RatingSummary is a user's aggregate feedback score.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// FeedbackService provides feedback and rating business logic.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	swapRepo     repository.SwapRepository
}

// NewFeedbackService returns a new FeedbackService.
func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: repository.NewFeedbackRepository(db),
		swapRepo:     repository.NewSwapRepository(db),
	}
}

// Submit records feedback from fromUserID about the counterpart of a
// completed swap. Each participant may leave at most one entry per swap.
func (s *FeedbackService) Submit(ctx context.Context, fromUserID uint, input SubmitFeedbackInput) (*models.Feedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}

	swap, err := s.swapRepo.GetByID(ctx, input.SwapRequestID)
	if err != nil {
		return nil, err
	}

	toUserID, ok := swap.OtherParty(fromUserID)
	if !ok {
		return nil, models.NewUnauthorizedError("You are not a participant in this swap")
	}
	if swap.Status != models.SwapStatusCompleted {
		return nil, models.NewValidationError("Feedback can only be left for completed swaps")
	}

	exists, err := s.feedbackRepo.ExistsForSwapFrom(ctx, swap.ID, fromUserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewDuplicateFeedbackError()
	}

	fb := &models.Feedback{
		FromUserID:    fromUserID,
		ToUserID:      toUserID,
		SwapRequestID: swap.ID,
		Rating:        input.Rating,
		Comment:       strings.TrimSpace(input.Comment),
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		return nil, err
	}

	return fb, nil
}

// ListReceived returns feedback left about the user, newest first.
func (s *FeedbackService) ListReceived(ctx context.Context, userID uint) ([]models.Feedback, error) {
	return s.feedbackRepo.ListReceived(ctx, userID)
}

// ForSwap returns feedback entries for a single swap.
func (s *FeedbackService) ForSwap(ctx context.Context, userID, swapID uint, isAdmin bool) ([]models.Feedback, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if _, ok := swap.OtherParty(userID); !ok && !isAdmin {
		return nil, models.NewUnauthorizedError("You are not a participant in this swap")
	}
	return s.feedbackRepo.ForSwap(ctx, swapID)
}

// Rating returns a user's average rating rounded to one decimal place. Users
// without feedback have an average of zero.
func (s *FeedbackService) Rating(ctx context.Context, userID uint) (*RatingSummary, error) {
	var summary RatingSummary
	err := cache.Aside(ctx, cache.RatingKey(userID), &summary, cache.RatingTTL, func() error {
		avg, count, err := s.feedbackRepo.AverageRating(ctx, userID)
		if err != nil {
			return err
		}
		summary = RatingSummary{
			Average: math.Round(avg*10) / 10,
			Count:   count,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
