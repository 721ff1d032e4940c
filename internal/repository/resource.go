package repository

import (
	"context"
	"errors"

	"fieldbook/internal/cache"
	"fieldbook/internal/models"

	"gorm.io/gorm"
)

// ResourceRepository defines the interface for community resource data operations
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	GetByID(ctx context.Context, id uint) (*models.Resource, error)
	ListActive(ctx context.Context, limit, offset int) ([]*models.Resource, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Resource, error)
	ByCategory(ctx context.Context, category string) ([]*models.Resource, error)
	Update(ctx context.Context, resource *models.Resource) error
	Delete(ctx context.Context, id uint) error
}

type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	if err := r.db.WithContext(ctx).Create(resource).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateResourceCategory(ctx, resource.Category)
	return nil
}

func (r *resourceRepository) GetByID(ctx context.Context, id uint) (*models.Resource, error) {
	var resource models.Resource
	if err := r.db.WithContext(ctx).First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Resource", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &resource, nil
}

func (r *resourceRepository) ListActive(ctx context.Context, limit, offset int) ([]*models.Resource, error) {
	var resources []*models.Resource
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&resources).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return resources, nil
}

// Search matches the query as a case-insensitive substring of title or description.
func (r *resourceRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Resource, error) {
	var resources []*models.Resource
	like := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("(title ILIKE ? OR description ILIKE ?) AND is_active = ?", like, like, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&resources).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return resources, nil
}

func (r *resourceRepository) ByCategory(ctx context.Context, category string) ([]*models.Resource, error) {
	var resources []*models.Resource
	err := cache.CacheAside(ctx, cache.ResourceCategoryKey(category), &resources, cache.ResourceCategoryTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("category = ? AND is_active = ?", category, true).
			Order("created_at DESC").
			Find(&resources).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	if err := r.db.WithContext(ctx).Save(resource).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateResourceCategory(ctx, resource.Category)
	return nil
}

func (r *resourceRepository) Delete(ctx context.Context, id uint) error {
	resource, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Resource{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateResourceCategory(ctx, resource.Category)
	return nil
}
