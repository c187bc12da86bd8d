package services

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// NewRetentionCron schedules the hourly retention sweep. The caller owns
// starting and stopping the returned cron.
func NewRetentionCron(events *EventService, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc("@every 1h", func() {
		if _, err := events.Sweep(context.Background()); err != nil {
			logger.Error("scheduled retention sweep failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}
