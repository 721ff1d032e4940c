package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"fieldbook/internal/models"
	"fieldbook/internal/repository"
)

type ResourceService struct {
	resourceRepo repository.ResourceRepository
	isAdmin      func(ctx context.Context, userID uint) (bool, error)
	now          func() time.Time
}

type CreateResourceInput struct {
	UserID      uint
	Title       string
	Description string
	Link        string
	Category    string
	EndTime     time.Time
}

type UpdateResourceInput struct {
	UserID      uint
	ResourceID  uint
	Title       string
	Description string
	Link        string
	Category    string
	EndTime     time.Time
}

type DeleteResourceInput struct {
	UserID     uint
	ResourceID uint
}

func NewResourceService(
	resourceRepo repository.ResourceRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		isAdmin:      isAdmin,
		now:          time.Now,
	}
}

const (
	maxResourceTitleLen       = 200
	maxResourceDescriptionLen = 5000
)

func (s *ResourceService) CreateResource(ctx context.Context, in CreateResourceInput) (*models.Resource, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("user is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("title is required")
	}
	if len(in.Title) > maxResourceTitleLen {
		return nil, models.NewValidationError("title too long (max 200 characters)")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, models.NewValidationError("description is required")
	}
	if len(in.Description) > maxResourceDescriptionLen {
		return nil, models.NewValidationError("description too long (max 5000 characters)")
	}
	if in.Link == "" {
		return nil, models.NewValidationError("link is required")
	}
	if _, err := url.ParseRequestURI(in.Link); err != nil {
		return nil, models.NewValidationError("link must be a valid URL")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, models.NewValidationError("category is required")
	}
	if in.EndTime.IsZero() {
		return nil, models.NewValidationError("end_time is required")
	}

	resource := &models.Resource{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		Link:        in.Link,
		Category:    strings.ToLower(strings.TrimSpace(in.Category)),
		EndTime:     in.EndTime,
		IsActive:    true,
	}
	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ResourceService) GetResource(ctx context.Context, id uint) (*models.Resource, error) {
	return s.resourceRepo.GetByID(ctx, id)
}

// ListResources returns active, unexpired resources.
func (s *ResourceService) ListResources(ctx context.Context, limit, offset int) ([]*models.Resource, error) {
	resources, err := s.resourceRepo.ListActive(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.filterExpired(resources), nil
}

func (s *ResourceService) SearchResources(ctx context.Context, query string, limit, offset int) ([]*models.Resource, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	resources, err := s.resourceRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.filterExpired(resources), nil
}

func (s *ResourceService) ResourcesByCategory(ctx context.Context, category string) ([]*models.Resource, error) {
	if strings.TrimSpace(category) == "" {
		return nil, models.NewValidationError("category is required")
	}
	resources, err := s.resourceRepo.ByCategory(ctx, strings.ToLower(strings.TrimSpace(category)))
	if err != nil {
		return nil, err
	}
	return s.filterExpired(resources), nil
}

func (s *ResourceService) UpdateResource(ctx context.Context, in UpdateResourceInput) (*models.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if resource.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own resources")
	}

	if in.Title != "" {
		if len(in.Title) > maxResourceTitleLen {
			return nil, models.NewValidationError("title too long (max 200 characters)")
		}
		resource.Title = in.Title
	}
	if in.Description != "" {
		if len(in.Description) > maxResourceDescriptionLen {
			return nil, models.NewValidationError("description too long (max 5000 characters)")
		}
		resource.Description = in.Description
	}
	if in.Link != "" {
		if _, err := url.ParseRequestURI(in.Link); err != nil {
			return nil, models.NewValidationError("link must be a valid URL")
		}
		resource.Link = in.Link
	}
	if in.Category != "" {
		resource.Category = strings.ToLower(strings.TrimSpace(in.Category))
	}
	if !in.EndTime.IsZero() {
		resource.EndTime = in.EndTime
	}

	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

func (s *ResourceService) DeleteResource(ctx context.Context, in DeleteResourceInput) error {
	resource, err := s.resourceRepo.GetByID(ctx, in.ResourceID)
	if err != nil {
		return err
	}

	if resource.UserID != in.UserID {
		if s.isAdmin == nil {
			return models.NewUnauthorizedError("You can only delete your own resources")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own resources")
		}
	}

	return s.resourceRepo.Delete(ctx, in.ResourceID)
}

// filterExpired drops resources whose end_time has passed. Expired rows stay in
// the database for their owners but no longer show in listings.
func (s *ResourceService) filterExpired(resources []*models.Resource) []*models.Resource {
	now := s.now()
	out := resources[:0]
	for _, r := range resources {
		if r.EndTime.IsZero() || r.EndTime.After(now) {
			out = append(out, r)
		}
	}
	return out
}
