package repository

import (
	"context"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// AdminMessageRepository defines persistence operations for announcements.
type AdminMessageRepository interface {
	Create(ctx context.Context, msg *models.AdminMessage) error
	List(ctx context.Context, limit, offset int) ([]models.AdminMessage, error)
}

type adminMessageRepository struct {
	db *gorm.DB
}

// NewAdminMessageRepository returns a new AdminMessageRepository implementation.
func NewAdminMessageRepository(db *gorm.DB) AdminMessageRepository {
	return &adminMessageRepository{db: db}
}

func (r *adminMessageRepository) Create(ctx context.Context, msg *models.AdminMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *adminMessageRepository) List(ctx context.Context, limit, offset int) ([]models.AdminMessage, error) {
	if limit <= 0 {
		limit = 20
	}
	var msgs []models.AdminMessage
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&msgs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}
