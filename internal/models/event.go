package models

import (
	"context"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
)

// NormalizeStatus maps any input to one of the two valid status values.
// Everything other than the case-insensitive literal "completed" is
// "upcoming".
func NormalizeStatus(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), StatusCompleted) {
		return StatusCompleted
	}
	return StatusUpcoming
}

// Event is one scheduled (or past) trivia night.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID             int64     `json:"id" bun:"id,pk,autoincrement"`
	Name           string    `json:"event_name" bun:"event_name,notnull"`
	Date           time.Time `json:"event_date" bun:"event_date,notnull"`
	StartTime      string    `json:"start_time,omitempty" bun:"start_time"`
	Address        string    `json:"address,omitempty" bun:"address"`
	Details        string    `json:"details,omitempty" bun:"details"`
	ThemeImage     string    `json:"theme_image,omitempty" bun:"theme_image"`
	OrganizerNotes string    `json:"organizer_notes,omitempty" bun:"organizer_notes"`
	Status         string    `json:"status" bun:"status,notnull,default:'upcoming'"`
	UpdatedAt      time.Time `json:"updated_at" bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeAppendModelHook = (*Event)(nil)

func (e *Event) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery, *bun.UpdateQuery:
		e.UpdatedAt = time.Now()
	}
	return nil
}

// PublicEvent is the event shape exposed on unauthenticated routes.
// Organizer notes never leave the admin surface.
type PublicEvent struct {
	ID         int64     `json:"id"`
	Name       string    `json:"event_name"`
	Date       time.Time `json:"event_date"`
	StartTime  string    `json:"start_time,omitempty"`
	Address    string    `json:"address,omitempty"`
	Details    string    `json:"details,omitempty"`
	ThemeImage string    `json:"theme_image,omitempty"`
	Status     string    `json:"status"`
}

// Public strips admin-only fields from the event.
func (e *Event) Public() PublicEvent {
	return PublicEvent{
		ID:         e.ID,
		Name:       e.Name,
		Date:       e.Date,
		StartTime:  e.StartTime,
		Address:    e.Address,
		Details:    e.Details,
		ThemeImage: e.ThemeImage,
		Status:     e.Status,
	}
}
