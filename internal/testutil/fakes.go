package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prplkane/umazona-website/internal/models"
)

// FakeEventRepository is an in-memory EventRepository for service and
// handler tests.
type FakeEventRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.Event

	// FailInsertNames makes Insert and ReplaceAll fail for rows with these
	// event names, to exercise partial-success paths.
	FailInsertNames map[string]bool
}

func NewFakeEventRepository() *FakeEventRepository {
	return &FakeEventRepository{}
}

// Rows returns a copy of the stored events.
func (f *FakeEventRepository) Rows() []models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Event, len(f.rows))
	copy(out, f.rows)
	return out
}

func (f *FakeEventRepository) ListAsc(ctx context.Context) ([]models.Event, error) {
	return f.sorted(true), nil
}

func (f *FakeEventRepository) ListDesc(ctx context.Context) ([]models.Event, error) {
	return f.sorted(false), nil
}

func (f *FakeEventRepository) sorted(asc bool) []models.Event {
	out := f.Rows()
	sort.Slice(out, func(i, j int) bool {
		if asc {
			return out[i].Date.Before(out[j].Date)
		}
		return out[j].Date.Before(out[i].Date)
	})
	return out
}

func (f *FakeEventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (f *FakeEventRepository) Insert(ctx context.Context, event *models.Event) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insertLocked(event)
}

func (f *FakeEventRepository) insertLocked(event *models.Event) (*models.Event, error) {
	if f.FailInsertNames[event.Name] {
		return nil, fmt.Errorf("simulated insert failure for %q", event.Name)
	}

	f.nextID++
	event.ID = f.nextID
	event.UpdatedAt = time.Now()
	f.rows = append(f.rows, *event)
	return event, nil
}

func (f *FakeEventRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.rows {
		if f.rows[i].ID != id {
			continue
		}
		for field, value := range fields {
			switch field {
			case "event_name":
				f.rows[i].Name = value.(string)
			case "event_date":
				f.rows[i].Date = value.(time.Time)
			case "start_time":
				f.rows[i].StartTime = value.(string)
			case "address":
				f.rows[i].Address = value.(string)
			case "details":
				f.rows[i].Details = value.(string)
			case "theme_image":
				f.rows[i].ThemeImage = value.(string)
			case "organizer_notes":
				f.rows[i].OrganizerNotes = value.(string)
			case "status":
				f.rows[i].Status = value.(string)
			}
		}
		f.rows[i].UpdatedAt = time.Now()
		return nil
	}
	return nil
}

func (f *FakeEventRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeEventRepository) DeleteByNameAndDate(ctx context.Context, name string, date time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.rows[:0]
	for _, row := range f.rows {
		if !(row.Name == name && row.Date.Equal(date)) {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return nil
}

func (f *FakeEventRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var removed int64
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.Status == models.StatusCompleted || row.Date.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return removed, nil
}

func (f *FakeEventRepository) ReplaceAll(ctx context.Context, events []models.Event) (int, []error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rows = nil

	var (
		inserted int
		rowErrs  []error
	)
	for i := range events {
		row := events[i]
		if _, err := f.insertLocked(&row); err != nil {
			rowErrs = append(rowErrs, err)
			continue
		}
		inserted++
	}
	return inserted, rowErrs, nil
}

// FakeContactRepository is an in-memory ContactRepository.
type FakeContactRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.Contact
}

func NewFakeContactRepository() *FakeContactRepository {
	return &FakeContactRepository{}
}

func (f *FakeContactRepository) Insert(ctx context.Context, contact *models.Contact) (*models.Contact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	contact.ID = f.nextID
	if contact.SubmittedAt.IsZero() {
		contact.SubmittedAt = time.Now()
	}
	f.rows = append(f.rows, *contact)
	return contact, nil
}

func (f *FakeContactRepository) Rows() []models.Contact {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Contact, len(f.rows))
	copy(out, f.rows)
	return out
}
