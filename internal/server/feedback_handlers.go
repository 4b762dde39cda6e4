package server

import (
	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitFeedback handles POST /api/feedback
func (s *Server) SubmitFeedback(c *fiber.Ctx) error {
	var req service.SubmitFeedbackInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	fb, err := s.feedbackService.Submit(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fb)
}

// GetUserFeedback handles GET /api/users/:id/feedback
func (s *Server) GetUserFeedback(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	items, err := s.feedbackService.ListReceived(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"feedback": items})
}

// GetUserRating handles GET /api/users/:id/rating
func (s *Server) GetUserRating(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	rating, err := s.feedbackService.Rating(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(rating)
}

// GetSwapFeedback handles GET /api/swaps/:id/feedback
func (s *Server) GetSwapFeedback(c *fiber.Ctx) error {
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

	items, err := s.feedbackService.ForSwap(c.UserContext(), userID, swapID, isAdmin)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"feedback": items})
}
