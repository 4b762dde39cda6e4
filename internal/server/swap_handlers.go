package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swaps
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	var req service.CreateSwapInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	swap, err := s.swapService.Create(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(swap)
}

// GetMySwaps handles GET /api/swaps with an optional ?status= filter.
func (s *Server) GetMySwaps(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var swaps []models.SwapRequest
	var err error
	if status := c.Query("status"); status != "" {
		swaps, err = s.swapService.ListByStatus(c.UserContext(), userID, models.SwapStatus(status))
	} else {
		swaps, err = s.swapService.ListForUser(c.UserContext(), userID)
	}
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"swaps": swaps})
}

// GetReceivedRequests handles GET /api/swaps/requests.
// Viewing the incoming requests page marks all notifications as read.
func (s *Server) GetReceivedRequests(c *fiber.Ctx) error {
	userID := currentUserID(c)

	swaps, err := s.swapService.ListReceivedPending(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.userService.ClearNotifications(c.UserContext(), userID); err != nil {
		return respondServiceError(c, err)
	}
	if s.notifier != nil {
		_ = s.notifier.PublishUnreadCount(c.UserContext(), userID, 0)
	}

	return c.JSON(fiber.Map{"requests": swaps})
}

// GetSentRequests handles GET /api/swaps/sent
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	swaps, err := s.swapService.ListSentPending(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"requests": swaps})
}

// AcceptSwap handles POST /api/swaps/:id/accept
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Respond(c.UserContext(), currentUserID(c), swapID, true)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(swap)
}

// DeclineSwap handles POST /api/swaps/:id/decline
func (s *Server) DeclineSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Respond(c.UserContext(), currentUserID(c), swapID, false)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(swap)
}

// CompleteSwap handles POST /api/swaps/:id/complete
func (s *Server) CompleteSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.Complete(c.UserContext(), currentUserID(c), swapID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(swap)
}

// CancelSwap handles DELETE /api/swaps/:id
func (s *Server) CancelSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.swapService.Cancel(c.UserContext(), currentUserID(c), swapID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSwap handles GET /api/swaps/:id
func (s *Server) GetSwap(c *fiber.Ctx) error {
	swapID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	isAdmin, err := s.isAdminByUserID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	swap, err := s.swapService.GetByID(c.UserContext(), userID, swapID, isAdmin)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(swap)
}
