package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventsCSV(t *testing.T) {
	t.Run("well-formed rows", func(t *testing.T) {
		csv := "event_name,event_date,address,details\n" +
			"Quiz Night,2025-03-01,Main St 1,Bring friends\n" +
			"Trivia Tuesday,2025-03-04 19:30,Side St 2,Weekly\n"

		events, rowErrs, err := parseEventsCSV(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Empty(t, rowErrs)
		require.Len(t, events, 2)
		assert.Equal(t, "Quiz Night", events[0].Name)
		assert.Equal(t, "Main St 1", events[0].Address)
		assert.Equal(t, 19, events[1].Date.Hour())
	})

	t.Run("empty file", func(t *testing.T) {
		events, rowErrs, err := parseEventsCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, events)
		assert.Empty(t, rowErrs)
	})

	t.Run("header only", func(t *testing.T) {
		events, rowErrs, err := parseEventsCSV(strings.NewReader("event_name,event_date,address,details\n"))
		require.NoError(t, err)
		assert.Empty(t, events)
		assert.Empty(t, rowErrs)
	})

	t.Run("bad rows are skipped not fatal", func(t *testing.T) {
		csv := "event_name,event_date,address,details\n" +
			"Good,2025-03-01,Addr,Det\n" +
			",2025-03-02,Addr,missing name\n" +
			"Bad Date,someday,Addr,Det\n" +
			"Also Good,2025-03-03,Addr,Det\n"

		events, rowErrs, err := parseEventsCSV(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Len(t, rowErrs, 2)
		require.Len(t, events, 2)
		assert.Equal(t, "Good", events[0].Name)
		assert.Equal(t, "Also Good", events[1].Name)
	})
}
