package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prplkane/umazona-website/internal/models"
	"github.com/prplkane/umazona-website/internal/testutil"
)

func newTestWatcher(t *testing.T) (*Watcher, *testutil.FakeEventRepository, string) {
	t.Helper()

	dir := t.TempDir()
	repo := testutil.NewFakeEventRepository()
	w, err := NewWatcher(dir, repo, slog.Default())
	require.NoError(t, err)
	return w, repo, dir
}

func writeUpload(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TargetFileName), []byte(content), 0644))
}

func archivedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(dir, archiveDirName))
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestIngest_ReplacesAndArchives(t *testing.T) {
	w, repo, dir := newTestWatcher(t)

	_, err := repo.Insert(context.Background(), &models.Event{Name: "old", Date: time.Now()})
	require.NoError(t, err)

	writeUpload(t, dir, "event_name,event_date,address,details\n"+
		"Quiz Night,2025-03-01,Main St 1,Bring friends\n"+
		"Trivia Tuesday,2025-03-04,Side St 2,Weekly\n")

	require.NoError(t, w.ingest(context.Background()))

	rows := repo.Rows()
	require.Len(t, rows, 2, "ingestion fully replaces previous contents")
	assert.Equal(t, "Quiz Night", rows[0].Name)

	archived := archivedFiles(t, dir)
	require.Len(t, archived, 1)
	assert.True(t, strings.HasPrefix(archived[0], "processed_"))
	assert.True(t, strings.HasSuffix(archived[0], "_"+TargetFileName))

	_, err = os.Stat(filepath.Join(dir, TargetFileName))
	assert.True(t, os.IsNotExist(err), "source file is moved, not left in place")
}

func TestIngest_EmptyUploadPreservesEvents(t *testing.T) {
	w, repo, dir := newTestWatcher(t)

	_, err := repo.Insert(context.Background(), &models.Event{Name: "keep me", Date: time.Now()})
	require.NoError(t, err)

	writeUpload(t, dir, "")

	require.NoError(t, w.ingest(context.Background()))

	rows := repo.Rows()
	require.Len(t, rows, 1, "an empty CSV must not wipe the table")
	assert.Equal(t, "keep me", rows[0].Name)
	assert.Empty(t, archivedFiles(t, dir), "nothing processed, nothing archived")
}

func TestIngest_PartialRowFailures(t *testing.T) {
	w, repo, dir := newTestWatcher(t)
	repo.FailInsertNames = map[string]bool{"Broken": true}

	writeUpload(t, dir, "event_name,event_date,address,details\n"+
		"Good One,2025-03-01,A,D\n"+
		"Broken,2025-03-02,A,D\n"+
		"Good Two,2025-03-03,A,D\n")

	require.NoError(t, w.ingest(context.Background()))

	rows := repo.Rows()
	require.Len(t, rows, 2, "exactly the successful rows exist post-ingestion")

	assert.Len(t, archivedFiles(t, dir), 1, "the file is archived even when some rows fail")
}

func TestIngest_AllRowsInvalidStillReplacesAndArchives(t *testing.T) {
	w, repo, dir := newTestWatcher(t)

	_, err := repo.Insert(context.Background(), &models.Event{Name: "old", Date: time.Now()})
	require.NoError(t, err)

	writeUpload(t, dir, "event_name,event_date,address,details\n"+
		"Quiz Night,not-a-date,A,D\n"+
		",2025-03-01,A,D\n")

	require.NoError(t, w.ingest(context.Background()))

	assert.Empty(t, repo.Rows(), "every row failed individually, so zero rows survive the replace")
	assert.Len(t, archivedFiles(t, dir), 1, "a real upload is archived even when no row is usable")
}

func TestProcess_BusyFlagDropsOverlappingTrigger(t *testing.T) {
	w, _, dir := newTestWatcher(t)
	writeUpload(t, dir, "event_name,event_date,address,details\nQuiz,2025-03-01,A,D\n")

	w.mu.Lock()
	w.busy = true
	w.mu.Unlock()

	// Must return promptly without touching the file.
	w.process()

	_, err := os.Stat(filepath.Join(dir, TargetFileName))
	assert.NoError(t, err, "overlapping trigger must not process the file")
}

func TestWatcher_EndToEnd(t *testing.T) {
	w, repo, dir := newTestWatcher(t)
	require.NoError(t, w.Start())
	defer w.Close()

	writeUpload(t, dir, "event_name,event_date,address,details\nQuiz Night,2025-03-01,A,D\n")

	require.Eventually(t, func() bool {
		return len(repo.Rows()) == 1
	}, 5*time.Second, 50*time.Millisecond, "a dropped file is picked up and ingested")

	assert.Equal(t, "Quiz Night", repo.Rows()[0].Name)
}
