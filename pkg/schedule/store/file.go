package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/schedule"
)

// File stores each event as <id>.toml or <id>.json in a directory.
type File struct {
	mu     sync.RWMutex
	dir    string
	format schedule.Format
	logger *log.Logger
}

// NewFile creates a file store rooted at dir. If dir is empty it defaults
// to ~/.config/signupboard/events. New events are written in format
// (TOML when empty); existing files keep their encoding.
func NewFile(dir string, format schedule.Format, logger *log.Logger) (*File, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "signupboard", "events")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create event dir %s", dir)
	}
	if format == "" {
		format = schedule.FormatTOML
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &File{dir: dir, format: format, logger: logger}, nil
}

// Dir returns the directory events are stored in.
func (s *File) Dir() string { return s.dir }

// find returns the existing document for id, if any.
func (s *File) find(id string) (string, bool) {
	for _, ext := range []string{".toml", ".json"} {
		path := filepath.Join(s.dir, id+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func (s *File) Get(ctx context.Context, id string) (*schedule.Event, error) {
	if err := errors.ValidateID("event", id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	path, ok := s.find(id)
	if !ok {
		return nil, ErrNotFound
	}
	return schedule.ReadFile(path)
}

func (s *File) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read event dir: %w", err)
	}

	var out []Summary
	for _, entry := range entries {
		if entry.IsDir() || !IsEventFile(entry.Name()) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		ev, err := schedule.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable event file", "path", path, "err", err)
			continue
		}
		out = append(out, Summarize(ev))
	}
	sortSummaries(out)
	return out, nil
}

func (s *File) Put(ctx context.Context, ev *schedule.Event) error {
	if err := prepare(ev); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.find(ev.ID)
	if !ok {
		path = filepath.Join(s.dir, ev.ID+"."+string(s.format))
	}

	// Readers never see a partially written document.
	tmp, err := os.CreateTemp(s.dir, "."+ev.ID+"-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := schedule.WriteFile(tmpPath, ev); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	s.logger.Debug("stored event", "id", ev.ID, "path", path)
	return nil
}

func (s *File) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateID("event", id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.find(id)
	if !ok {
		return ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// Close does nothing for the file store.
func (s *File) Close() error { return nil }

// IsEventFile reports whether name looks like an event document.
func IsEventFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := filepath.Ext(name)
	return ext == ".toml" || ext == ".json"
}

var _ Store = (*File)(nil)
