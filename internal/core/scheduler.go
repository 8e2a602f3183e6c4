package core

// scheduler.go reloads the payroll source file in the background.
//
// Payroll exports are usually replaced in place once a month. When a reload
// interval is configured, the scheduler stats the file on every tick and
// re-ingests it if its modification time moved. Failures are logged and the
// current dataset stays in use; a file that failed is retried only once it
// changes again.

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"
)

// StartReloadScheduler polls path every interval until ctx is cancelled.
// It blocks; run it in its own goroutine.
func (s *Service) StartReloadScheduler(ctx context.Context, path string, interval time.Duration) {
	if interval <= 0 {
		return
	}

	s.log.Info("reload scheduler started", "path", path, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("reload scheduler stopped")
			return
		case <-ticker.C:
			s.reloadIfChanged(ctx, path)
		}
	}
}

// reloadIfChanged re-ingests path when it is newer than the last load.
// It reports whether a reload happened.
func (s *Service) reloadIfChanged(ctx context.Context, path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("reload stat failed", "path", path, "error", err)
		}
		return false
	}

	s.mu.RLock()
	last, seen := s.sourceMod[path]
	s.mu.RUnlock()
	if seen && !info.ModTime().After(last) {
		return false
	}

	start := time.Now()
	if _, err := s.IngestFile(ctx, path); err != nil {
		// A busy limiter is transient; anything else waits for a new file.
		if !errors.Is(err, ErrIngestBusy) {
			s.mu.Lock()
			s.sourceMod[path] = info.ModTime()
			s.mu.Unlock()
		}
		s.log.Error("reload failed", "path", path, "error", err)
		return false
	}
	s.log.Info("source reloaded",
		"path", path,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return true
}
