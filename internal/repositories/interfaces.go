package repositories

import (
	"context"
	"time"

	"github.com/prplkane/umazona-website/internal/models"
)

// EventRepository is the single funnel for event table mutations.
type EventRepository interface {
	ListAsc(ctx context.Context) ([]models.Event, error)
	ListDesc(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Insert(ctx context.Context, event *models.Event) (*models.Event, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	DeleteByID(ctx context.Context, id int64) (bool, error)
	DeleteByNameAndDate(ctx context.Context, name string, date time.Time) error

	// DeleteStale removes completed events and events dated before the
	// cutoff. Returns the number of rows removed.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)

	// ReplaceAll deletes every row and inserts the given rows inside one
	// transaction. Individual insert failures are collected, not fatal.
	ReplaceAll(ctx context.Context, events []models.Event) (inserted int, rowErrs []error, err error)
}

type ContactRepository interface {
	Insert(ctx context.Context, contact *models.Contact) (*models.Contact, error)
}
