package repository

import (
	"context"
	"errors"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapRepository defines persistence operations for swap requests.
type SwapRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*models.SwapRequest, error)
	FindPendingTuple(ctx context.Context, requesterID, requestedID uint, skillOffered, skillWanted string) (*models.SwapRequest, error)
	UpdateStatus(ctx context.Context, id uint, status models.SwapStatus) error
	Delete(ctx context.Context, id uint) error
	CancelAllPendingForUser(ctx context.Context, userID uint) (int64, error)
	ListForUser(ctx context.Context, userID uint) ([]models.SwapRequest, error)
	ListByUserAndStatus(ctx context.Context, userID uint, status models.SwapStatus) ([]models.SwapRequest, error)
	ListReceivedPending(ctx context.Context, userID uint) ([]models.SwapRequest, error)
	ListSentPending(ctx context.Context, userID uint) ([]models.SwapRequest, error)
	CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.SwapRequest, error)
	ListAll(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, error)
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository returns a new SwapRepository implementation.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewDuplicateRequestError()
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Requested").
		First(&swap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

func (r *swapRepository) FindPendingTuple(ctx context.Context, requesterID, requestedID uint, skillOffered, skillWanted string) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND requested_id = ? AND skill_offered = ? AND skill_wanted = ? AND status = ?",
			requesterID, requestedID, skillOffered, skillWanted, models.SwapStatusPending).
		First(&swap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

func (r *swapRepository) UpdateStatus(ctx context.Context, id uint, status models.SwapStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.SwapRequest{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) CancelAllPendingForUser(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("status = ? AND (requester_id = ? OR requested_id = ?)",
			models.SwapStatusPending, userID, userID).
		Update("status", models.SwapStatusCancelled)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *swapRepository) ListForUser(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? OR requested_id = ?", userID, userID).
		Preload("Requester").
		Preload("Requested").
		Order("created_at DESC").
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListByUserAndStatus(ctx context.Context, userID uint, status models.SwapStatus) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("(requester_id = ? OR requested_id = ?) AND status = ?", userID, userID, status).
		Preload("Requester").
		Preload("Requested").
		Order("created_at DESC").
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListReceivedPending(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("requested_id = ? AND status = ?", userID, models.SwapStatusPending).
		Preload("Requester").
		Preload("Requested").
		Order("created_at DESC").
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListSentPending(ctx context.Context, userID uint) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", userID, models.SwapStatusPending).
		Preload("Requester").
		Preload("Requested").
		Order("created_at DESC").
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) CountByStatus(ctx context.Context, status models.SwapStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *swapRepository) ListAll(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.SwapRequest, error) {
	query := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Requested").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var swaps []models.SwapRequest
	if err := query.Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) Recent(ctx context.Context, limit int) ([]models.SwapRequest, error) {
	if limit <= 0 {
		limit = 5
	}
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Requested").
		Order("created_at DESC").
		Limit(limit).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}
