package repository

import (
	"context"
	"errors"

	"fieldbook/internal/models"

	"gorm.io/gorm"
)

// PinRepository defines the interface for map pin data operations
type PinRepository interface {
	Create(ctx context.Context, pin *models.Pin) error
	GetByID(ctx context.Context, id uint) (*models.Pin, error)
	ListActive(ctx context.Context) ([]*models.Pin, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Pin, error)
	Update(ctx context.Context, pin *models.Pin) error
	Delete(ctx context.Context, id uint) error
}

type pinRepository struct {
	db *gorm.DB
}

// NewPinRepository creates a new pin repository
func NewPinRepository(db *gorm.DB) PinRepository {
	return &pinRepository{db: db}
}

func (r *pinRepository) Create(ctx context.Context, pin *models.Pin) error {
	if err := r.db.WithContext(ctx).Create(pin).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *pinRepository) GetByID(ctx context.Context, id uint) (*models.Pin, error) {
	var pin models.Pin
	if err := r.db.WithContext(ctx).Preload("User").First(&pin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Pin", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &pin, nil
}

func (r *pinRepository) ListActive(ctx context.Context) ([]*models.Pin, error) {
	var pins []*models.Pin
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&pins).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return pins, nil
}

func (r *pinRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Pin, error) {
	var pins []*models.Pin
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&pins).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return pins, nil
}

// Update persists coordinate and metadata changes for an existing pin.
func (r *pinRepository) Update(ctx context.Context, pin *models.Pin) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Pin{}).
		Where("id = ?", pin.ID).
		Updates(map[string]any{
			"longitude": pin.Longitude,
			"latitude":  pin.Latitude,
			"metadata":  pin.Metadata,
		}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *pinRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Pin{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
