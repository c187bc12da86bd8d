package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/prplkane/umazona-website/internal/repositories"
)

const (
	// TargetFileName is the exact upload filename the watcher reacts to.
	TargetFileName = "events.csv"

	archiveDirName = "archive"

	// debounceDelay lets the writer finish flushing before the file is
	// opened.
	debounceDelay = time.Second

	processTimeout = 2 * time.Minute
)

// Watcher monitors the uploads directory for events.csv and performs the
// full replace-and-archive ingestion cycle on detection.
type Watcher struct {
	uploadsDir string
	targetPath string
	archiveDir string

	repo   repositories.EventRepository
	logger *slog.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}

	mu    sync.Mutex
	timer *time.Timer
	busy  bool
}

func NewWatcher(uploadsDir string, repo repositories.EventRepository, logger *slog.Logger) (*Watcher, error) {
	archiveDir := filepath.Join(uploadsDir, archiveDirName)
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	return &Watcher{
		uploadsDir: uploadsDir,
		targetPath: filepath.Join(uploadsDir, TargetFileName),
		archiveDir: archiveDir,
		repo:       repo,
		logger:     logger,
		done:       make(chan struct{}),
	}, nil
}

// Start processes a pre-existing upload, then watches for new ones.
func (w *Watcher) Start() error {
	if _, err := os.Stat(w.targetPath); err == nil {
		w.logger.Info("found existing upload on startup, processing", "path", w.targetPath)
		w.schedule()
	} else {
		w.logger.Info("no upload found on startup, waiting", "file", TargetFileName, "dir", w.uploadsDir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(w.uploadsDir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.uploadsDir, err)
	}
	w.fsw = fsw

	go w.loop()

	w.logger.Info("monitoring for uploads", "file", TargetFileName, "dir", w.uploadsDir)
	return nil
}

func (w *Watcher) Close() error {
	close(w.done)
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != TargetFileName {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.logger.Info("upload event detected", "op", event.Op.String(), "path", event.Name)
			w.schedule()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// schedule (re)arms the debounce timer. Rapid successive events collapse
// into one processing run.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.process)
}

// process runs one ingestion cycle. A per-path busy flag guarantees
// at-most-one concurrent ingestion; overlapping triggers are dropped and
// the file's next change event re-triggers processing.
func (w *Watcher) process() {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		w.logger.Warn("ingestion already in progress, dropping trigger", "path", w.targetPath)
		return
	}
	w.busy = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	if err := w.ingest(ctx); err != nil {
		w.logger.Error("ingestion failed", "path", w.targetPath, "error", err)
	}
}

func (w *Watcher) ingest(ctx context.Context) error {
	w.logger.Info("processing upload", "path", w.targetPath)

	f, err := os.Open(w.targetPath)
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}

	rows, rowErrs, err := parseEventsCSV(f)
	f.Close()
	if err != nil {
		return err
	}

	for _, rowErr := range rowErrs {
		w.logger.Error("skipping unusable CSV row", "error", rowErr)
	}

	// An upload with zero data rows preserves the existing events; this
	// keeps an accidental truncation upload from wiping the table. A file
	// whose rows all failed individually is still a real upload: it is
	// applied (ending with an empty table) and archived.
	if len(rows) == 0 && len(rowErrs) == 0 {
		w.logger.Info("CSV file is empty, no data to process")
		return nil
	}

	w.logger.Info("updating events from CSV", "rows", len(rows))

	inserted, insertErrs, err := w.repo.ReplaceAll(ctx, rows)
	if err != nil {
		return fmt.Errorf("failed to replace events: %w", err)
	}
	for _, insertErr := range insertErrs {
		w.logger.Error("failed to insert CSV row", "error", insertErr)
	}
	w.logger.Info("inserted new events", "count", inserted)

	w.archive()
	return nil
}

// archive renames the processed upload into the archive directory with a
// timestamped name so the same filename can be dropped again. Rename
// failure leaves the file in place for the next modification event.
func (w *Watcher) archive() {
	archivePath := filepath.Join(w.archiveDir,
		fmt.Sprintf("processed_%d_%s", time.Now().UnixMilli(), TargetFileName))

	if err := os.Rename(w.targetPath, archivePath); err != nil {
		w.logger.Error("failed to archive upload", "path", w.targetPath, "error", err)
		return
	}
	w.logger.Info("archived upload", "to", archivePath)
}
