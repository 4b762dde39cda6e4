package server

import (
	"io"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		Location     string `json:"location"`
		Availability string `json:"availability"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:       currentUserID(c),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Location:     req.Location,
		Availability: req.Availability,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyVisibility handles PUT /api/users/me/visibility
func (s *Server) UpdateMyVisibility(c *fiber.Ctx) error {
	var req struct {
		IsPublic *bool `json:"is_public"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsPublic == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("is_public is required"))
	}

	userID := currentUserID(c)
	if err := s.userService.SetVisibility(c.UserContext(), userID, *req.IsPublic); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"is_public": *req.IsPublic})
}

// UploadMyPhoto handles POST /api/users/me/photo (multipart form, field "photo")
func (s *Server) UploadMyPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A photo file is required"))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}

	userID := currentUserID(c)
	stored, err := s.photoService.Store(service.UploadPhotoInput{
		UserID:      userID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.userService.SetProfilePhoto(c.UserContext(), userID, stored.Path)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"photo": stored,
	})
}

// ServePhoto handles GET /api/photos/* and streams a stored photo from disk.
func (s *Server) ServePhoto(c *fiber.Ctx) error {
	full, err := s.photoService.Resolve(c.Params("*"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.SendFile(full)
}

// BrowseUsers handles GET /api/users with optional skill/category filters.
func (s *Server) BrowseUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	users, err := s.userService.Browse(c.UserContext(), currentUserID(c), repository.BrowseFilter{
		Skill:    c.Query("skill"),
		Category: c.Query("category"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID := currentUserID(c)
	viewerIsAdmin, err := s.isAdminByUserID(c.UserContext(), viewerID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user, err := s.userService.GetVisibleProfile(c.UserContext(), viewerID, targetID, viewerIsAdmin)
	if err != nil {
		return respondServiceError(c, err)
	}

	rating, err := s.feedbackService.Rating(c.UserContext(), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":   user,
		"rating": rating,
	})
}

// GetUnreadCount handles GET /api/notifications
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.userService.UnreadCount(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

// ClearNotifications handles POST /api/notifications/clear
func (s *Server) ClearNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if err := s.userService.ClearNotifications(c.UserContext(), userID); err != nil {
		return respondServiceError(c, err)
	}
	if s.notifier != nil {
		_ = s.notifier.PublishUnreadCount(c.UserContext(), userID, 0)
	}
	return c.JSON(fiber.Map{"unread_count": 0})
}

// GetDashboard handles GET /api/dashboard
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	summary, err := s.userService.Dashboard(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(summary)
}

// GetAnnouncements handles GET /api/announcements
func (s *Server) GetAnnouncements(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	msgs, err := s.moderationService.Announcements(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"announcements": msgs})
}
