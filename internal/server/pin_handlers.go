package server

import (
	"fieldbook/internal/models"

	"github.com/gofiber/fiber/v2"
)

func validCoordinates(longitude, latitude float64) bool {
	return longitude >= -180 && longitude <= 180 && latitude >= -90 && latitude <= 90
}

// CreatePin handles POST /api/pins
func (s *Server) CreatePin(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Longitude *float64 `json:"longitude"`
		Latitude  *float64 `json:"latitude"`
		Metadata  string   `json:"metadata"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Longitude == nil || req.Latitude == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("longitude and latitude are required"))
	}
	if !validCoordinates(*req.Longitude, *req.Latitude) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Coordinates out of range"))
	}

	pin := &models.Pin{
		UserID:    userID,
		Longitude: *req.Longitude,
		Latitude:  *req.Latitude,
		Metadata:  req.Metadata,
		IsActive:  true,
	}
	if err := s.pinRepo.Create(ctx, pin); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(pin)
}

// GetPins handles GET /api/pins, every active marker on the map.
func (s *Server) GetPins(c *fiber.Ctx) error {
	pins, err := s.pinRepo.ListActive(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pins)
}

// GetMyPins handles GET /api/pins/mine
func (s *Server) GetMyPins(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	pins, err := s.pinRepo.ListByUser(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pins)
}

// GetPin handles GET /api/pins/:id
func (s *Server) GetPin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	pin, err := s.pinRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(pin)
}

// UpdatePin handles PUT /api/pins/:id. Only coordinates and metadata can
// change; ownership is fixed at creation.
func (s *Server) UpdatePin(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	pinID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Longitude *float64 `json:"longitude"`
		Latitude  *float64 `json:"latitude"`
		Metadata  *string  `json:"metadata"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if pin.UserID != userID {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only update your own pins"))
	}

	if req.Longitude != nil {
		pin.Longitude = *req.Longitude
	}
	if req.Latitude != nil {
		pin.Latitude = *req.Latitude
	}
	if !validCoordinates(pin.Longitude, pin.Latitude) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Coordinates out of range"))
	}
	if req.Metadata != nil {
		pin.Metadata = *req.Metadata
	}

	if err := s.pinRepo.Update(ctx, pin); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(pin)
}

// DeletePin handles DELETE /api/pins/:id
func (s *Server) DeletePin(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	pinID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	pin, err := s.pinRepo.GetByID(ctx, pinID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if pin.UserID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, adminErr)
		}
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("You can only delete your own pins"))
		}
	}

	if err := s.pinRepo.Delete(ctx, pinID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Pin deleted"})
}
