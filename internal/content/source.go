package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 500 * time.Millisecond

// Source hands out the current portfolio. Sessions take one snapshot when
// they start and keep it for their whole lifetime.
type Source struct {
	path    string
	current atomic.Pointer[Portfolio]
	logger  *log.Logger
}

// NewSource loads path (or the embedded default when path is empty).
func NewSource(path string, logger *log.Logger) (*Source, error) {
	p, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Source{path: path, logger: logger}
	s.current.Store(p)
	return s, nil
}

// StaticSource wraps an already loaded portfolio; Watch is a no-op on it.
func StaticSource(p *Portfolio) *Source {
	s := &Source{logger: log.Default()}
	s.current.Store(p)
	return s
}

// Current returns the latest valid portfolio.
func (s *Source) Current() *Portfolio {
	return s.current.Load()
}

// Reload re-reads the backing file. A failed reload keeps the previous
// portfolio in place.
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}
	p, err := LoadFile(s.path)
	if err != nil {
		return err
	}
	s.current.Store(p)
	return nil
}

// Watch reloads the portfolio whenever its file changes until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are still picked up.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create content watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	s.logger.Info("watching portfolio", "event", "content_watch", "path", s.path)

	target := filepath.Clean(s.path)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, s.reloadAndLog)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("content watcher error", "event", "content_watch_error", "err", err)
		}
	}
}

func (s *Source) reloadAndLog() {
	if err := s.Reload(); err != nil {
		s.logger.Warn("portfolio reload rejected", "event", "content_reload_failed", "path", s.path, "err", err)
		return
	}
	s.logger.Info("portfolio reloaded", "event", "content_reloaded", "path", s.path)
}
