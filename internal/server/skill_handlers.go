package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

type skillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// GetSkillCategories handles GET /api/skills/categories
func (s *Server) GetSkillCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": models.SkillCategories})
}

// AddOfferedSkill handles POST /api/skills/offered
func (s *Server) AddOfferedSkill(c *fiber.Ctx) error {
	var req skillRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.userService.AddOfferedSkill(c.UserContext(), currentUserID(c), req.Name, req.Category)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// RemoveOfferedSkill handles DELETE /api/skills/offered/:id
func (s *Server) RemoveOfferedSkill(c *fiber.Ctx) error {
	skillID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.RemoveOfferedSkill(c.UserContext(), currentUserID(c), skillID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddWantedSkill handles POST /api/skills/wanted
func (s *Server) AddWantedSkill(c *fiber.Ctx) error {
	var req skillRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.userService.AddWantedSkill(c.UserContext(), currentUserID(c), req.Name, req.Category)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// RemoveWantedSkill handles DELETE /api/skills/wanted/:id
func (s *Server) RemoveWantedSkill(c *fiber.Ctx) error {
	skillID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.RemoveWantedSkill(c.UserContext(), currentUserID(c), skillID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
