package repository

import (
	"context"
	"errors"
	"time"

	"fieldbook/internal/cache"
	"fieldbook/internal/models"

	"gorm.io/gorm"
)

// EventRepository defines the interface for calendar event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Event, error)
	OnDate(ctx context.Context, date time.Time) ([]*models.Event, error)
	InRange(ctx context.Context, start, end time.Time) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateEventsMonth(ctx, event.StartTime.Year(), int(event.StartTime.Month()))
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &event, nil
}

func (r *eventRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Event, error) {
	var events []*models.Event
	if err := r.db.WithContext(ctx).
		Order("start_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

// OnDate returns events starting within the calendar day of date,
// in the location attached to date.
func (r *eventRepository) OnDate(ctx context.Context, date time.Time) ([]*models.Event, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return r.InRange(ctx, dayStart, dayStart.AddDate(0, 0, 1))
}

// InRange returns events with start_time in [start, end), ordered by start.
// Callers compute the bounds; the query stays portable across databases.
func (r *eventRepository) InRange(ctx context.Context, start, end time.Time) ([]*models.Event, error) {
	var events []*models.Event
	if err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

// Update saves the event and invalidates the month caches on both sides of a
// reschedule.
func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	existing, err := r.GetByID(ctx, event.ID)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateEventsMonth(ctx, existing.StartTime.Year(), int(existing.StartTime.Month()))
	cache.InvalidateEventsMonth(ctx, event.StartTime.Year(), int(event.StartTime.Month()))
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uint) error {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Event{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateEventsMonth(ctx, event.StartTime.Year(), int(event.StartTime.Month()))
	return nil
}
