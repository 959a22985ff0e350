package adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	m "github.com/mouse-blink/codeaudit/internal/model"
)

// ChangeWatcher reports batches of changed source files until ctx is done.
type ChangeWatcher interface {
	Watch(ctx context.Context, roots []m.Path, filter SourceFilter, onChange func([]m.Path)) error
}

// FSWatcher implements ChangeWatcher with fsnotify. Bursts of events are
// collected until the tree has been quiet for the debounce delay.
type FSWatcher struct {
	fs       SourceFSAdapter
	debounce time.Duration
	log      zerolog.Logger
}

// NewFSWatcher creates a watcher that walks directories through fs.
func NewFSWatcher(fs SourceFSAdapter, debounce time.Duration, log zerolog.Logger) *FSWatcher {
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	return &FSWatcher{fs: fs, debounce: debounce, log: log}
}

// SetDebounce changes the quiet period for later Watch calls. Non-positive
// values are ignored.
func (w *FSWatcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

type watchRoot struct {
	path      string
	recursive bool
	file      bool
}

type watchSession struct {
	*FSWatcher

	notify *fsnotify.Watcher
	roots  []watchRoot
	filter SourceFilter
}

// Watch blocks until ctx is cancelled, calling onChange with the sorted set of
// analyzable files touched by each burst of events.
func (w *FSWatcher) Watch(ctx context.Context, roots []m.Path, filter SourceFilter, onChange func([]m.Path)) error {
	s, err := w.open(roots, filter)
	if err != nil {
		return err
	}

	defer func() { _ = s.notify.Close() }()

	return s.run(ctx, onChange)
}

func (w *FSWatcher) open(roots []m.Path, filter SourceFilter) (*watchSession, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start watcher: %w", err)
	}

	s := &watchSession{FSWatcher: w, notify: notify, filter: filter}

	for _, root := range roots {
		path, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			_ = notify.Close()
			return nil, err
		}

		info, err := w.fs.FileInfo(m.Path(path))
		if err != nil {
			_ = notify.Close()
			return nil, fmt.Errorf("root path error: %w", err)
		}

		r := watchRoot{path: path, recursive: recursive, file: !info.IsDir()}
		s.roots = append(s.roots, r)

		if r.file {
			err = s.add(filepath.Dir(path))
		} else {
			err = s.addTree(r, path)
		}

		if err != nil {
			_ = notify.Close()
			return nil, err
		}
	}

	return s, nil
}

func (s *watchSession) add(dir string) error {
	if slices.Contains(s.notify.WatchList(), dir) {
		return nil
	}

	if err := s.notify.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	s.log.Debug().Str("dir", dir).Msg("watching directory")

	return nil
}

// addTree watches dir and, for recursive roots, every directory below it
// that is not excluded.
func (s *watchSession) addTree(r watchRoot, dir string) error {
	return s.fs.Walk(m.Path(dir), r.recursive, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(r.path, path)
		if err != nil {
			return err
		}

		if s.filter.Excluded(rel) {
			return filepath.SkipDir
		}

		return s.add(path)
	})
}

// owner returns the root that path belongs to.
func (s *watchSession) owner(path string) (watchRoot, string, bool) {
	for _, r := range s.roots {
		if r.file {
			if path == r.path {
				return r, filepath.Base(path), true
			}

			continue
		}

		rel, err := filepath.Rel(r.path, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
			continue
		}

		if !r.recursive && strings.ContainsRune(rel, os.PathSeparator) {
			continue
		}

		return r, rel, true
	}

	return watchRoot{}, "", false
}

func (s *watchSession) handle(ev fsnotify.Event, pending map[m.Path]struct{}) bool {
	r, rel, ok := s.owner(ev.Name)
	if !ok || s.filter.Excluded(rel) {
		return false
	}

	if ev.Has(fsnotify.Create) && r.recursive {
		if info, err := s.fs.FileInfo(m.Path(ev.Name)); err == nil && info.IsDir() {
			if err := s.addTree(r, ev.Name); err != nil {
				s.log.Warn().Err(err).Str("dir", ev.Name).Msg("failed to watch new directory")
			}

			return false
		}
	}

	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}

	if !s.filter.Accepts(m.KindForPath(m.Path(ev.Name))) {
		return false
	}

	pending[m.Path(ev.Name)] = struct{}{}

	return true
}

func (s *watchSession) run(ctx context.Context, onChange func([]m.Path)) error {
	pending := make(map[m.Path]struct{})

	timer := time.NewTimer(s.debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-s.notify.Events:
			if !ok {
				return nil
			}

			if s.handle(ev, pending) {
				timer.Reset(s.debounce)
			}

		case err, ok := <-s.notify.Errors:
			if !ok {
				return nil
			}

			if errors.Is(err, fsnotify.ErrEventOverflow) {
				s.log.Warn().Msg("watch event queue overflowed, some changes may be missed")
				continue
			}

			return fmt.Errorf("watch error: %w", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}

			changed := make([]m.Path, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}

			clear(pending)
			slices.Sort(changed)

			s.log.Info().Int("files", len(changed)).Msg("changes detected")
			onChange(changed)
		}
	}
}
