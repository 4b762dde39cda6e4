// Package service implements the application's business logic layer.
package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/notifications"
	"skillswap/internal/observability"
	"skillswap/internal/repository"

	"gorm.io/gorm"
)

// CreateSwapInput carries the fields for a new swap request.
type CreateSwapInput struct {
	RequestedID  uint   `json:"requested_id"`
	SkillOffered string `json:"skill_offered"`
	SkillWanted  string `json:"skill_wanted"`
	Message      string `json:"message"`
}

// SwapService provides swap-request lifecycle business logic.
//
// Mutations that pair a status change with a notification counter update run
// inside a single database transaction so the two can never diverge.
type SwapService struct {
	db       *gorm.DB
	swapRepo repository.SwapRepository
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

// NewSwapService returns a new SwapService.
func NewSwapService(db *gorm.DB, notifier *notifications.Notifier) *SwapService {
	return &SwapService{
		db:       db,
		swapRepo: repository.NewSwapRepository(db),
		userRepo: repository.NewUserRepository(db),
		notifier: notifier,
	}
}

// Create submits a new pending swap request from requesterID.
func (s *SwapService) Create(ctx context.Context, requesterID uint, input CreateSwapInput) (*models.SwapRequest, error) {
	input.SkillOffered = strings.TrimSpace(input.SkillOffered)
	input.SkillWanted = strings.TrimSpace(input.SkillWanted)

	if input.RequestedID == requesterID {
		return nil, models.NewValidationError("Cannot send a swap request to yourself")
	}
	if input.SkillOffered == "" || input.SkillWanted == "" {
		return nil, models.NewValidationError("Both an offered and a wanted skill are required")
	}

	target, err := s.userRepo.GetByID(ctx, input.RequestedID)
	if err != nil {
		return nil, err
	}
	if target.IsAdmin {
		return nil, models.NewValidationError("Cannot send a swap request to this user")
	}

	existing, err := s.swapRepo.FindPendingTuple(ctx, requesterID, input.RequestedID, input.SkillOffered, input.SkillWanted)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewDuplicateRequestError()
	}

	swap := &models.SwapRequest{
		RequesterID:  requesterID,
		RequestedID:  input.RequestedID,
		SkillOffered: input.SkillOffered,
		SkillWanted:  input.SkillWanted,
		Status:       models.SwapStatusPending,
		Message:      strings.TrimSpace(input.Message),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewSwapRepository(tx).Create(ctx, swap); err != nil {
			return err
		}
		return repository.NewUserRepository(tx).IncrementNotifications(ctx, input.RequestedID)
	})
	if err != nil {
		return nil, err
	}

	observability.SwapTransitions.WithLabelValues(string(models.SwapStatusPending)).Inc()
	s.pushUnreadCount(ctx, input.RequestedID)

	return s.swapRepo.GetByID(ctx, swap.ID)
}

// Respond accepts or declines a pending request. Only the requested user may respond.
func (s *SwapService) Respond(ctx context.Context, userID, swapID uint, accept bool) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if swap.RequestedID != userID {
		return nil, models.NewUnauthorizedError("You can only respond to swap requests sent to you")
	}

	target := models.SwapStatusDeclined
	action := "decline"
	if accept {
		target = models.SwapStatusAccepted
		action = "accept"
	}
	if !swap.Status.CanTransitionTo(target) {
		return nil, models.NewInvalidTransitionError(swap.Status, action)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewSwapRepository(tx).UpdateStatus(ctx, swapID, target); err != nil {
			return err
		}
		return repository.NewUserRepository(tx).IncrementNotifications(ctx, swap.RequesterID)
	})
	if err != nil {
		return nil, err
	}

	observability.SwapTransitions.WithLabelValues(string(target)).Inc()
	s.pushUnreadCount(ctx, swap.RequesterID)

	return s.swapRepo.GetByID(ctx, swapID)
}

// Cancel withdraws a pending request. Only the requester may cancel, and a
// cancelled pending request is deleted outright. Cancelling a request that
// has already left the pending state is a no-op.
func (s *SwapService) Cancel(ctx context.Context, userID, swapID uint) error {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return err
	}

	if swap.RequesterID != userID {
		return models.NewUnauthorizedError("You can only cancel your own swap requests")
	}
	if swap.Status != models.SwapStatusPending {
		return nil
	}

	return s.swapRepo.Delete(ctx, swapID)
}

// Complete marks an accepted swap as finished. Either party may complete it.
// Completion does not touch notification counters.
func (s *SwapService) Complete(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if _, ok := swap.OtherParty(userID); !ok {
		return nil, models.NewUnauthorizedError("You are not a participant in this swap")
	}
	if !swap.Status.CanTransitionTo(models.SwapStatusCompleted) {
		return nil, models.NewInvalidTransitionError(swap.Status, "complete")
	}

	if err := s.swapRepo.UpdateStatus(ctx, swapID, models.SwapStatusCompleted); err != nil {
		return nil, err
	}

	observability.SwapTransitions.WithLabelValues(string(models.SwapStatusCompleted)).Inc()

	return s.swapRepo.GetByID(ctx, swapID)
}

// ForceCancel is the moderation override: it moves a pending request to
// cancelled rather than deleting it, keeping an audit trail.
func (s *SwapService) ForceCancel(ctx context.Context, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.Status.CanTransitionTo(models.SwapStatusCancelled) {
		return nil, models.NewInvalidTransitionError(swap.Status, "cancel")
	}

	if err := s.swapRepo.UpdateStatus(ctx, swapID, models.SwapStatusCancelled); err != nil {
		return nil, err
	}

	observability.SwapTransitions.WithLabelValues(string(models.SwapStatusCancelled)).Inc()

	return s.swapRepo.GetByID(ctx, swapID)
}

// GetByID returns a swap request visible to userID. Admins may view any swap.
func (s *SwapService) GetByID(ctx context.Context, userID, swapID uint, isAdmin bool) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if _, ok := swap.OtherParty(userID); !ok && !isAdmin {
		return nil, models.NewUnauthorizedError("You are not a participant in this swap")
	}
	return swap, nil
}

// ListForUser returns every swap request the user participates in.
func (s *SwapService) ListForUser(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	return s.swapRepo.ListForUser(ctx, userID)
}

// ListByStatus returns the user's swap requests filtered by status.
func (s *SwapService) ListByStatus(ctx context.Context, userID uint, status models.SwapStatus) ([]models.SwapRequest, error) {
	switch status {
	case models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusDeclined,
		models.SwapStatusCompleted, models.SwapStatusCancelled:
	default:
		return nil, models.NewValidationError("Unknown swap status")
	}
	return s.swapRepo.ListByUserAndStatus(ctx, userID, status)
}

// ListReceivedPending returns pending requests awaiting the user's response.
func (s *SwapService) ListReceivedPending(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	return s.swapRepo.ListReceivedPending(ctx, userID)
}

// ListSentPending returns the user's own outstanding requests.
func (s *SwapService) ListSentPending(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	return s.swapRepo.ListSentPending(ctx, userID)
}

// pushUnreadCount publishes the user's current unread counter. Best effort;
// the polling endpoint remains the source of truth.
func (s *SwapService) pushUnreadCount(ctx context.Context, userID uint) {
	if s.notifier == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return
	}
	_ = s.notifier.PublishUnreadCount(ctx, userID, user.UnreadNotifications)
}
