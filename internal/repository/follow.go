package repository

import (
	"context"

	"fieldbook/internal/cache"
	"fieldbook/internal/models"

	"gorm.io/gorm"
)

// FollowCounts pairs the two counters shown on a profile.
type FollowCounts struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

// FollowRepository defines the interface for follow edge data operations
type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID uint) error
	Delete(ctx context.Context, followerID, followingID uint) error
	Exists(ctx context.Context, followerID, followingID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]models.FollowProfile, error)
	Following(ctx context.Context, userID uint) ([]models.FollowProfile, error)
	Counts(ctx context.Context, userID uint) (*FollowCounts, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followingID uint) error {
	edge := &models.UserFollow{FollowerID: followerID, FollowingID: followingID}
	if err := r.db.WithContext(ctx).Create(edge).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Already following this user")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateFollowCounts(ctx, followerID)
	cache.InvalidateFollowCounts(ctx, followingID)
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.UserFollow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateFollowCounts(ctx, followerID)
	cache.InvalidateFollowCounts(ctx, followingID)
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.FollowProfile, error) {
	var profiles []models.FollowProfile
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id as user_id, users.first_name, users.last_name").
		Joins("JOIN user_follows uf ON uf.follower_id = users.id").
		Where("uf.following_id = ? AND users.deleted_at IS NULL", userID).
		Order("uf.created_at DESC").
		Scan(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.FollowProfile, error) {
	var profiles []models.FollowProfile
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id as user_id, users.first_name, users.last_name").
		Joins("JOIN user_follows uf ON uf.following_id = users.id").
		Where("uf.follower_id = ? AND users.deleted_at IS NULL", userID).
		Order("uf.created_at DESC").
		Scan(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *followRepository) Counts(ctx context.Context, userID uint) (*FollowCounts, error) {
	var counts FollowCounts
	err := cache.CacheAside(ctx, cache.FollowCountsKey(userID), &counts, cache.FollowCountsTTL, func() error {
		if err := r.db.WithContext(ctx).
			Model(&models.UserFollow{}).
			Where("following_id = ?", userID).
			Count(&counts.Followers).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := r.db.WithContext(ctx).
			Model(&models.UserFollow{}).
			Where("follower_id = ?", userID).
			Count(&counts.Following).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &counts, nil
}
