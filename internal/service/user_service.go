package service

import (
	"context"
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// UpdateProfileInput carries optional profile fields; empty values are kept.
type UpdateProfileInput struct {
	UserID       uint
	FirstName    string
	LastName     string
	Location     string
	Availability string
}

// DashboardSummary aggregates a user's activity for the landing view.
type DashboardSummary struct {
	PendingReceived int64                `json:"pending_received"`
	PendingSent     int64                `json:"pending_sent"`
	ActiveSwaps     int64                `json:"active_swaps"`
	CompletedSwaps  int64                `json:"completed_swaps"`
	UnreadCount     int                  `json:"unread_count"`
	RecentSwaps     []models.SwapRequest `json:"recent_swaps"`
}

// UserService provides profile, skill inventory and directory business logic.
type UserService struct {
	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
	swapRepo  repository.SwapRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, skillRepo repository.SkillRepository, swapRepo repository.SwapRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		skillRepo: skillRepo,
		swapRepo:  swapRepo,
	}
}

// GetProfile returns the user with their skill inventory.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByIDWithSkills(ctx, userID)
}

// GetVisibleProfile returns another user's profile. Private profiles are
// reported as not found to anyone but their owner or an admin.
func (s *UserService) GetVisibleProfile(ctx context.Context, viewerID, userID uint, viewerIsAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsPublic && viewerID != userID && !viewerIsAdmin {
		return nil, models.NewNotFoundError("User", userID)
	}
	return user, nil
}

// UpdateProfile applies the provided non-empty fields to the user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != "" {
		if err := validation.ValidateName(in.FirstName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		if err := validation.ValidateName(in.LastName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.LastName = in.LastName
	}
	if in.Location != "" {
		if len(in.Location) > 100 {
			return nil, models.NewValidationError("Location too long (max 100 characters)")
		}
		user.Location = in.Location
	}
	if in.Availability != "" {
		if len(in.Availability) > 200 {
			return nil, models.NewValidationError("Availability too long (max 200 characters)")
		}
		user.Availability = in.Availability
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SetVisibility toggles whether the user appears in the public directory.
func (s *UserService) SetVisibility(ctx context.Context, userID uint, public bool) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.SetVisibility(ctx, userID, public)
}

// SetProfilePhoto stores the photo path on the user's profile.
func (s *UserService) SetProfilePhoto(ctx context.Context, userID uint, path string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.ProfilePhoto = path
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Browse returns public, non-admin members matching the filter, excluding the viewer.
func (s *UserService) Browse(ctx context.Context, viewerID uint, filter repository.BrowseFilter) ([]models.User, error) {
	if filter.Category != "" {
		if err := validation.ValidateSkillCategory(filter.Category); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	return s.userRepo.Browse(ctx, viewerID, filter)
}

// AddOfferedSkill adds a skill the user can teach.
func (s *UserService) AddOfferedSkill(ctx context.Context, userID uint, name, category string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateSkillName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateSkillCategory(category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if category == "" {
		category = "other"
	}

	skill := &models.Skill{Name: name, Category: category, UserID: userID}
	if err := s.skillRepo.AddOffered(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// AddWantedSkill adds a skill the user wants to learn.
func (s *UserService) AddWantedSkill(ctx context.Context, userID uint, name, category string) (*models.SkillWanted, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateSkillName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateSkillCategory(category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if category == "" {
		category = "other"
	}

	skill := &models.SkillWanted{Name: name, Category: category, UserID: userID}
	if err := s.skillRepo.AddWanted(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// RemoveOfferedSkill deletes one of the user's offered skills.
func (s *UserService) RemoveOfferedSkill(ctx context.Context, userID, skillID uint) error {
	return s.skillRepo.RemoveOffered(ctx, userID, skillID)
}

// RemoveWantedSkill deletes one of the user's wanted skills.
func (s *UserService) RemoveWantedSkill(ctx context.Context, userID, skillID uint) error {
	return s.skillRepo.RemoveWanted(ctx, userID, skillID)
}

// UnreadCount returns the user's unread notification counter.
func (s *UserService) UnreadCount(ctx context.Context, userID uint) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return user.UnreadNotifications, nil
}

// ClearNotifications resets the unread counter. Viewing the requests page
// counts as reading everything.
func (s *UserService) ClearNotifications(ctx context.Context, userID uint) error {
	return s.userRepo.ClearNotifications(ctx, userID)
}

// Dashboard assembles the user's landing-page summary.
func (s *UserService) Dashboard(ctx context.Context, userID uint) (*DashboardSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	received, err := s.swapRepo.ListReceivedPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	sent, err := s.swapRepo.ListSentPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	active, err := s.swapRepo.ListByUserAndStatus(ctx, userID, models.SwapStatusAccepted)
	if err != nil {
		return nil, err
	}
	completed, err := s.swapRepo.ListByUserAndStatus(ctx, userID, models.SwapStatusCompleted)
	if err != nil {
		return nil, err
	}

	recent, err := s.swapRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &DashboardSummary{
		PendingReceived: int64(len(received)),
		PendingSent:     int64(len(sent)),
		ActiveSwaps:     int64(len(active)),
		CompletedSwaps:  int64(len(completed)),
		UnreadCount:     user.UnreadNotifications,
		RecentSwaps:     recent,
	}, nil
}
