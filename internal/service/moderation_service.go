package service

import (
	"context"
	"log/slog"
	"strings"

	"skillswap/internal/cache"
	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/notifications"
	"skillswap/internal/observability"
	"skillswap/internal/repository"

	"gorm.io/gorm"
)

// PlatformStats aggregates counts for the admin overview.
type PlatformStats struct {
	TotalUsers     int64 `json:"total_users"`
	BannedUsers    int64 `json:"banned_users"`
	PendingSwaps   int64 `json:"pending_swaps"`
	AcceptedSwaps  int64 `json:"accepted_swaps"`
	CompletedSwaps int64 `json:"completed_swaps"`
	CancelledSwaps int64 `json:"cancelled_swaps"`
	FeedbackCount  int64 `json:"feedback_count"`
}

// AdminOverview is the admin landing payload: stats plus recent activity.
type AdminOverview struct {
	Stats       PlatformStats        `json:"stats"`
	RecentUsers []models.User        `json:"recent_users"`
	RecentSwaps []models.SwapRequest `json:"recent_swaps"`
}

// ModerationService provides admin moderation logic.
type ModerationService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

// NewModerationService returns a new ModerationService.
func NewModerationService(db *gorm.DB, notifier *notifications.Notifier) *ModerationService {
	return &ModerationService{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		notifier: notifier,
	}
}

// BanUser bans a member: the account is flagged, hidden from the directory,
// and every pending swap request they participate in is cancelled. All of it
// happens in one transaction.
func (s *ModerationService) BanUser(ctx context.Context, adminID, targetID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, models.NewValidationError("Administrators cannot be banned")
	}
	if user.IsBanned {
		return nil, models.NewValidationError("User is already banned")
	}

	var cancelled int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", targetID).
			Updates(map[string]interface{}{"is_banned": true, "is_public": false}).Error; err != nil {
			return models.NewInternalError(err)
		}
		n, err := repository.NewSwapRepository(tx).CancelAllPendingForUser(ctx, targetID)
		if err != nil {
			return err
		}
		cancelled = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateUser(ctx, targetID)
	if cancelled > 0 {
		observability.SwapTransitions.WithLabelValues(string(models.SwapStatusCancelled)).Add(float64(cancelled))
	}

	middleware.Logger.InfoContext(ctx, "user banned",
		slog.Uint64("admin_id", uint64(adminID)),
		slog.Uint64("target_id", uint64(targetID)),
		slog.Int64("cancelled_swaps", cancelled),
	)

	return s.userRepo.GetByID(ctx, targetID)
}

// UnbanUser lifts a ban and restores directory visibility.
func (s *ModerationService) UnbanUser(ctx context.Context, adminID, targetID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !user.IsBanned {
		return nil, models.NewValidationError("User is not banned")
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", targetID).
		Updates(map[string]interface{}{
			"is_banned": false,
			"is_public": true,
		}).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, targetID)

	middleware.Logger.InfoContext(ctx, "user unbanned",
		slog.Uint64("admin_id", uint64(adminID)),
		slog.Uint64("target_id", uint64(targetID)),
	)

	return s.userRepo.GetByID(ctx, targetID)
}

// Broadcast publishes a platform-wide announcement and pushes it to every
// connected client.
func (s *ModerationService) Broadcast(ctx context.Context, adminID uint, title, content string) (*models.AdminMessage, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, models.NewValidationError("Title and content are required")
	}
	if len(title) > 200 {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}

	msg := &models.AdminMessage{
		Title:     title,
		Content:   content,
		CreatedBy: adminID,
	}
	if err := repository.NewAdminMessageRepository(s.db).Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.PublishAnnouncement(ctx, title, content); err != nil {
			middleware.Logger.WarnContext(ctx, "announcement push failed", slog.String("error", err.Error()))
		}
	}

	return msg, nil
}

// Announcements lists recent platform announcements, newest first.
func (s *ModerationService) Announcements(ctx context.Context, limit, offset int) ([]models.AdminMessage, error) {
	return repository.NewAdminMessageRepository(s.db).List(ctx, limit, offset)
}

// Overview assembles the admin landing payload.
func (s *ModerationService) Overview(ctx context.Context) (*AdminOverview, error) {
	swapRepo := repository.NewSwapRepository(s.db)
	feedbackRepo := repository.NewFeedbackRepository(s.db)

	var stats PlatformStats
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("is_banned = ?", true).
		Count(&stats.BannedUsers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if stats.PendingSwaps, err = swapRepo.CountByStatus(ctx, models.SwapStatusPending); err != nil {
		return nil, err
	}
	if stats.AcceptedSwaps, err = swapRepo.CountByStatus(ctx, models.SwapStatusAccepted); err != nil {
		return nil, err
	}
	if stats.CompletedSwaps, err = swapRepo.CountByStatus(ctx, models.SwapStatusCompleted); err != nil {
		return nil, err
	}
	if stats.CancelledSwaps, err = swapRepo.CountByStatus(ctx, models.SwapStatusCancelled); err != nil {
		return nil, err
	}
	if stats.FeedbackCount, err = feedbackRepo.Count(ctx); err != nil {
		return nil, err
	}

	recentUsers, err := s.userRepo.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}
	recentSwaps, err := swapRepo.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &AdminOverview{
		Stats:       stats,
		RecentUsers: recentUsers,
		RecentSwaps: recentSwaps,
	}, nil
}

// ListUsers returns every account for the admin user table.
func (s *ModerationService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// ListSwaps returns swap requests across all members, optionally filtered by
// status. An empty status means every request.
func (s *ModerationService) ListSwaps(ctx context.Context, status string, limit, offset int) ([]models.SwapRequest, error) {
	filter := models.SwapStatus(strings.TrimSpace(status))
	switch filter {
	case "", models.SwapStatusPending, models.SwapStatusAccepted, models.SwapStatusDeclined,
		models.SwapStatusCompleted, models.SwapStatusCancelled:
	default:
		return nil, models.NewValidationError("Unknown swap status")
	}
	return repository.NewSwapRepository(s.db).ListAll(ctx, filter, limit, offset)
}
