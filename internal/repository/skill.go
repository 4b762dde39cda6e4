package repository

import (
	"context"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SkillRepository defines persistence operations for offered and wanted skills.
type SkillRepository interface {
	AddOffered(ctx context.Context, skill *models.Skill) error
	AddWanted(ctx context.Context, skill *models.SkillWanted) error
	RemoveOffered(ctx context.Context, userID, skillID uint) error
	RemoveWanted(ctx context.Context, userID, skillID uint) error
	ListOffered(ctx context.Context, userID uint) ([]models.Skill, error)
	ListWanted(ctx context.Context, userID uint) ([]models.SkillWanted, error)
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository returns a new SkillRepository implementation.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) AddOffered(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, skill.UserID)
	return nil
}

func (r *skillRepository) AddWanted(ctx context.Context, skill *models.SkillWanted) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, skill.UserID)
	return nil
}

func (r *skillRepository) RemoveOffered(ctx context.Context, userID, skillID uint) error {
	// Ownership is part of the predicate so one user cannot delete another's skill.
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", skillID, userID).
		Delete(&models.Skill{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Skill", skillID)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

func (r *skillRepository) RemoveWanted(ctx context.Context, userID, skillID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", skillID, userID).
		Delete(&models.SkillWanted{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Skill", skillID)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

func (r *skillRepository) ListOffered(ctx context.Context, userID uint) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

func (r *skillRepository) ListWanted(ctx context.Context, userID uint) ([]models.SkillWanted, error) {
	var skills []models.SkillWanted
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&skills).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}
