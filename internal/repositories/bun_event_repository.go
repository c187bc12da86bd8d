package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/prplkane/umazona-website/internal/models"
	"github.com/prplkane/umazona-website/internal/util"
)

type BunEventRepository struct {
	db bun.IDB
}

func NewBunEventRepository(db bun.IDB) EventRepository {
	return &BunEventRepository{db: db}
}

func (r *BunEventRepository) ListAsc(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.NewSelect().
		Model(&events).
		Order("event_date ASC").
		Scan(ctx)
	return events, err
}

func (r *BunEventRepository) ListDesc(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.NewSelect().
		Model(&events).
		Order("event_date DESC").
		Scan(ctx)
	return events, err
}

func (r *BunEventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event := new(models.Event)
	err := r.db.NewSelect().
		Model(event).
		Where("id = ?", id).
		Scan(ctx)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	return event, err
}

func (r *BunEventRepository) Insert(ctx context.Context, event *models.Event) (*models.Event, error) {
	_, err := r.db.NewInsert().
		Model(event).
		Exec(ctx)
	return event, err
}

func (r *BunEventRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	q := r.db.NewUpdate().
		Model(&models.Event{}).
		Where("id = ?", id).
		Set("updated_at = ?", time.Now())

	q = util.ApplyFieldUpdates(q, fields)

	_, err := q.Exec(ctx)
	return err
}

func (r *BunEventRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.NewDelete().
		Model(&models.Event{}).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *BunEventRepository) DeleteByNameAndDate(ctx context.Context, name string, date time.Time) error {
	_, err := r.db.NewDelete().
		Model(&models.Event{}).
		Where("event_name = ?", name).
		Where("event_date = ?", date).
		Exec(ctx)
	return err
}

func (r *BunEventRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.NewDelete().
		Model(&models.Event{}).
		Where("status = ? OR event_date < ?", models.StatusCompleted, cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *BunEventRepository) ReplaceAll(ctx context.Context, events []models.Event) (int, []error, error) {
	var (
		inserted int
		rowErrs  []error
	)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model(&models.Event{}).
			Where("1 = 1").
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete old events: %w", err)
		}

		for i := range events {
			if _, err := tx.NewInsert().
				Model(&events[i]).
				Exec(ctx); err != nil {
				rowErrs = append(rowErrs, fmt.Errorf("row %d (%s): %w", i, events[i].Name, err))
				continue
			}
			inserted++
		}
		return nil
	})

	return inserted, rowErrs, err
}
