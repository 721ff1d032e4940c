package server

import (
	"time"

	"fieldbook/internal/models"
	"fieldbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateResource handles POST /api/health/create
func (s *Server) CreateResource(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Link        string    `json:"link"`
		Category    string    `json:"category"`
		EndTime     time.Time `json:"end_time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	resource, err := s.resourceService.CreateResource(c.Context(), service.CreateResourceInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Category:    req.Category,
		EndTime:     req.EndTime,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resource)
}

// GetResources handles GET /api/health/resources
func (s *Server) GetResources(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	resources, err := s.resourceService.ListResources(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resources)
}

// GetResource handles GET /api/health/:resourceId
func (s *Server) GetResource(c *fiber.Ctx) error {
	resourceID, err := s.parseID(c, "resourceId")
	if err != nil {
		return nil
	}

	resource, err := s.resourceService.GetResource(c.Context(), resourceID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resource)
}

// SearchResources handles GET /api/health/search?query=...
func (s *Server) SearchResources(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	resources, err := s.resourceService.SearchResources(c.Context(), c.Query("query"), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resources)
}

// GetResourcesByCategory handles GET /api/health/category/:category
func (s *Server) GetResourcesByCategory(c *fiber.Ctx) error {
	resources, err := s.resourceService.ResourcesByCategory(c.Context(), c.Params("category"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resources)
}

// UpdateResource handles PUT /api/health/:resourceId
func (s *Server) UpdateResource(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	resourceID, err := s.parseID(c, "resourceId")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Link        string    `json:"link"`
		Category    string    `json:"category"`
		EndTime     time.Time `json:"end_time"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	resource, err := s.resourceService.UpdateResource(c.Context(), service.UpdateResourceInput{
		UserID:      userID,
		ResourceID:  resourceID,
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Category:    req.Category,
		EndTime:     req.EndTime,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(resource)
}

// DeleteResource handles DELETE /api/health/:resourceId/:userId. The userId
// path segment must match the authenticated caller.
func (s *Server) DeleteResource(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	resourceID, err := s.parseID(c, "resourceId")
	if err != nil {
		return nil
	}
	pathUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if pathUserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only delete your own resources"))
	}

	if err := s.resourceService.DeleteResource(c.Context(), service.DeleteResourceInput{
		UserID:     userID,
		ResourceID: resourceID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Resource deleted"})
}
