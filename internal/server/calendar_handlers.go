package server

import (
	"time"

	"fieldbook/internal/cache"
	"fieldbook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateEvent handles POST /api/calendar/create
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		StartTime   time.Time `json:"start_time"`
		EndTime     time.Time `json:"end_time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("title is required"))
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("start_time and end_time are required"))
	}
	if !req.EndTime.After(req.StartTime) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("end_time must be after start_time"))
	}

	event := &models.Event{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// GetEvent handles GET /api/calendar/:eventId
func (s *Server) GetEvent(c *fiber.Ctx) error {
	eventID, err := s.parseID(c, "eventId")
	if err != nil {
		return nil
	}

	event, err := s.eventRepo.GetByID(c.Context(), eventID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(event)
}

// GetAllEvents handles GET /api/calendar/getAllEvents
func (s *Server) GetAllEvents(c *fiber.Ctx) error {
	page := parsePagination(c, 50)
	events, err := s.eventRepo.ListAll(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(events)
}

// GetEventsOnDate handles GET /api/calendar/onDate/:date where date is
// YYYY-MM-DD.
func (s *Server) GetEventsOnDate(c *fiber.Ctx) error {
	date, err := time.Parse("2006-01-02", c.Params("date"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid date, expected YYYY-MM-DD"))
	}

	events, err := s.eventRepo.OnDate(c.Context(), date)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(events)
}

// GetEventsForMonth handles GET /api/calendar/forMonth/:year/:month. The month
// bounds are computed here so the repository query stays portable.
func (s *Server) GetEventsForMonth(c *fiber.Ctx) error {
	ctx := c.Context()

	year, err := c.ParamsInt("year")
	if err != nil || year < 1970 || year > 9999 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid year"))
	}
	month, err := c.ParamsInt("month")
	if err != nil || month < 1 || month > 12 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid month"))
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var events []*models.Event
	cacheErr := cache.CacheAside(ctx, cache.EventsMonthKey(year, month), &events, cache.EventsMonthTTL, func() error {
		var fetchErr error
		events, fetchErr = s.eventRepo.InRange(ctx, start, end)
		return fetchErr
	})
	if cacheErr != nil {
		return respondServiceError(c, cacheErr)
	}

	return c.JSON(events)
}

// requireEventOwner loads the event and enforces that the path userId matches
// the caller and the caller owns the event (admins bypass ownership).
func (s *Server) requireEventOwner(c *fiber.Ctx) (*models.Event, error) {
	userID := c.Locals("userID").(uint)

	eventID, err := s.parseID(c, "eventId")
	if err != nil {
		return nil, errResponseWritten
	}
	pathUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil, errResponseWritten
	}

	if pathUserID != userID {
		_ = models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You can only manage your own events"))
		return nil, errResponseWritten
	}

	event, err := s.eventRepo.GetByID(c.Context(), eventID)
	if err != nil {
		_ = respondServiceError(c, err)
		return nil, errResponseWritten
	}

	if event.UserID != userID {
		admin, adminErr := s.isAdmin(c, userID)
		if adminErr != nil {
			_ = models.RespondWithError(c, fiber.StatusInternalServerError, adminErr)
			return nil, errResponseWritten
		}
		if !admin {
			_ = models.RespondWithError(c, fiber.StatusForbidden,
				models.NewUnauthorizedError("You can only manage your own events"))
			return nil, errResponseWritten
		}
	}

	return event, nil
}

// UpdateEvent handles PUT /api/calendar/:eventId/:userId
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	event, err := s.requireEventOwner(c)
	if err != nil {
		return nil
	}

	var req struct {
		Title       string     `json:"title"`
		Description *string    `json:"description"`
		Location    *string    `json:"location"`
		StartTime   *time.Time `json:"start_time"`
		EndTime     *time.Time `json:"end_time"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if !event.EndTime.After(event.StartTime) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("end_time must be after start_time"))
	}

	if err := s.eventRepo.Update(c.Context(), event); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/calendar/:eventId/:userId
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	event, err := s.requireEventOwner(c)
	if err != nil {
		return nil
	}

	if err := s.eventRepo.Delete(c.Context(), event.ID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Event deleted"})
}
