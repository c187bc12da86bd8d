package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prplkane/umazona-website/internal/models"
	"github.com/prplkane/umazona-website/internal/repositories"
)

var (
	ErrMissingFields   = errors.New("event_name and event_date are required")
	ErrDateUnparseable = errors.New("event_date is not a parseable date")
	ErrEventNotFound   = errors.New("event not found")
)

// eventDateLayouts are the accepted date formats, most specific first.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseEventDate parses a date string in any accepted layout and
// normalizes it to UTC.
func ParseEventDate(raw string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrDateUnparseable
}

// CreateEventInput is the single-record create payload.
type CreateEventInput struct {
	Name           string `json:"event_name"`
	Date           string `json:"event_date"`
	StartTime      string `json:"start_time"`
	Address        string `json:"address"`
	Details        string `json:"details"`
	ThemeImage     string `json:"theme_image"`
	OrganizerNotes string `json:"organizer_notes"`
	Status         string `json:"status"`
}

// UpdateEventInput carries a partial update; nil fields keep their prior
// value.
type UpdateEventInput struct {
	Name           *string `json:"event_name"`
	Date           *string `json:"event_date"`
	StartTime      *string `json:"start_time"`
	Address        *string `json:"address"`
	Details        *string `json:"details"`
	ThemeImage     *string `json:"theme_image"`
	OrganizerNotes *string `json:"organizer_notes"`
	Status         *string `json:"status"`
}

// EventService owns the single-record admin path and the retention sweep.
type EventService struct {
	repo   repositories.EventRepository
	logger *slog.Logger

	now func() time.Time
}

func NewEventService(repo repositories.EventRepository, logger *slog.Logger) *EventService {
	return &EventService{repo: repo, logger: logger, now: time.Now}
}

// Create inserts a new event. Any pre-existing row with the identical
// (name, date) pair is deleted first, so resubmission is idempotent on
// that composite key.
func (s *EventService) Create(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	if in.Name == "" || in.Date == "" {
		return nil, ErrMissingFields
	}

	date, err := ParseEventDate(in.Date)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteByNameAndDate(ctx, in.Name, date); err != nil {
		return nil, fmt.Errorf("failed to replace existing event: %w", err)
	}

	event := &models.Event{
		Name:           in.Name,
		Date:           date,
		StartTime:      in.StartTime,
		Address:        in.Address,
		Details:        in.Details,
		ThemeImage:     in.ThemeImage,
		OrganizerNotes: in.OrganizerNotes,
		Status:         models.NormalizeStatus(in.Status),
	}

	return s.repo.Insert(ctx, event)
}

// Update applies supplied fields only. A supplied but unparseable date
// rejects the whole update.
func (s *EventService) Update(ctx context.Context, id int64, in UpdateEventInput) (*models.Event, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrEventNotFound
	}

	fields := make(map[string]any)
	if in.Name != nil {
		fields["event_name"] = *in.Name
	}
	if in.Date != nil {
		date, err := ParseEventDate(*in.Date)
		if err != nil {
			return nil, err
		}
		fields["event_date"] = date
	}
	if in.StartTime != nil {
		fields["start_time"] = *in.StartTime
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.Details != nil {
		fields["details"] = *in.Details
	}
	if in.ThemeImage != nil {
		fields["theme_image"] = *in.ThemeImage
	}
	if in.OrganizerNotes != nil {
		fields["organizer_notes"] = *in.OrganizerNotes
	}
	if in.Status != nil {
		fields["status"] = models.NormalizeStatus(*in.Status)
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *EventService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEventNotFound
	}
	return nil
}

// ListPublic sweeps stale rows, then returns remaining events ascending
// by date with upcoming status only.
func (s *EventService) ListPublic(ctx context.Context) ([]models.Event, error) {
	if _, err := s.Sweep(ctx); err != nil {
		s.logger.Error("inline retention sweep failed", "error", err)
	}

	all, err := s.repo.ListAsc(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(all))
	for _, e := range all {
		if e.Status != models.StatusCompleted {
			events = append(events, e)
		}
	}
	return events, nil
}

// ListAdmin returns all events descending by date, full payload.
func (s *EventService) ListAdmin(ctx context.Context) ([]models.Event, error) {
	return s.repo.ListDesc(ctx)
}

// Sweep removes completed events and events dated more than one day in
// the past. Idempotent.
func (s *EventService) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-24 * time.Hour)

	count, err := s.repo.DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.logger.Info("retention sweep removed stale events", "count", count)
	}
	return count, nil
}
