package ingest

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/prplkane/umazona-website/internal/models"
	"github.com/prplkane/umazona-website/internal/services"
)

// csvEvent mirrors the upload schema: event_name,event_date,address,details.
type csvEvent struct {
	Name    string `csv:"event_name"`
	Date    string `csv:"event_date"`
	Address string `csv:"address"`
	Details string `csv:"details"`
}

// RowError is a per-row parse failure. Row indexes are zero-based over
// data rows, the header excluded.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// parseEventsCSV reads the upload and converts rows to event records.
// Rows with an unparseable date are returned as RowErrors and skipped;
// they count as individual row failures, not a file failure.
func parseEventsCSV(r io.Reader) ([]models.Event, []RowError, error) {
	var rows []csvEvent
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if err == gocsv.ErrEmptyCSVFile {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	var (
		events  []models.Event
		rowErrs []RowError
	)
	for i, row := range rows {
		if row.Name == "" || row.Date == "" {
			rowErrs = append(rowErrs, RowError{Row: i, Err: fmt.Errorf("event_name and event_date are required")})
			continue
		}

		date, err := services.ParseEventDate(row.Date)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i, Err: err})
			continue
		}

		events = append(events, models.Event{
			Name:    row.Name,
			Date:    date,
			Address: row.Address,
			Details: row.Details,
			Status:  models.StatusUpcoming,
		})
	}

	return events, rowErrs, nil
}
