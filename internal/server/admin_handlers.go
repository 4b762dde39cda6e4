package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetAdminOverview handles GET /api/admin/overview
func (s *Server) GetAdminOverview(c *fiber.Ctx) error {
	overview, err := s.moderationService.Overview(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(overview)
}

// GetAdminUsers handles GET /api/admin/users
func (s *Server) GetAdminUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	users, err := s.moderationService.ListUsers(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetAdminSwaps handles GET /api/admin/swaps
func (s *Server) GetAdminSwaps(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	swaps, err := s.moderationService.ListSwaps(c.UserContext(), c.Query("status"), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"swaps": swaps})
}

// BanUser handles POST /api/admin/users/:id/ban
func (s *Server) BanUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.moderationService.BanUser(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UnbanUser handles POST /api/admin/users/:id/unban
func (s *Server) UnbanUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.moderationService.UnbanUser(c.UserContext(), currentUserID(c), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// ForceCancelSwap handles POST /api/admin/swaps/:id/cancel
func (s *Server) ForceCancelSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.ForceCancel(c.UserContext(), swapID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(swap)
}

// CreateAnnouncement handles POST /api/admin/announcements
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.moderationService.Broadcast(c.UserContext(), currentUserID(c), req.Title, req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
