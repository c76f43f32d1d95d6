// Package store persists signup board events.
//
// Three backends implement [Store]:
//   - [Memory]: in-process map, for tests and ephemeral servers
//   - [File]: one TOML or JSON document per event in a directory, for the CLI
//   - [Mongo]: one MongoDB document per event, for shared deployments
//
// Every backend hands out deep copies, so callers may modify returned
// events freely and must call [Store.Put] to persist changes.
//
//	st, err := store.Open(ctx, store.Config{Kind: store.KindFile, Path: dir})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	ev, err := st.Get(ctx, "spring-con")
package store

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/schedule"
)

// ErrNotFound is returned when an event does not exist.
var ErrNotFound = errors.New(errors.ErrCodeEventNotFound, "event not found")

// Store persists events keyed by their id.
type Store interface {
	// Get returns the event with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*schedule.Event, error)

	// List returns a summary of every stored event, ordered by id.
	List(ctx context.Context) ([]Summary, error)

	// Put assigns missing ids, validates the event and stores it,
	// replacing any event with the same id.
	Put(ctx context.Context, ev *schedule.Event) error

	// Delete removes the event with the given id or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Summary is a short description of a stored event.
type Summary struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Days   []string `json:"days"`
	Tables int      `json:"tables"`
	Games  int      `json:"games"`
}

// Summarize builds the summary of ev. Deleted games are not counted.
func Summarize(ev *schedule.Event) Summary {
	s := Summary{ID: ev.ID, Name: ev.Name, Tables: len(ev.Tables)}
	for _, d := range ev.Days {
		s.Days = append(s.Days, d.ID)
	}
	for _, g := range ev.Games {
		if !g.Deleted {
			s.Games++
		}
	}
	return s
}

// Kind names a storage backend.
type Kind string

const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindMongo  Kind = "mongo"
)

// Config selects and configures a backend for [Open].
type Config struct {
	Kind Kind

	// Path is the directory of the file backend.
	Path string

	// Format is the document encoding used by the file backend for new
	// events. Defaults to TOML.
	Format schedule.Format

	// URI and Database configure the MongoDB backend.
	URI      string
	Database string

	Logger *log.Logger
}

// Open creates the backend described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	switch Kind(strings.ToLower(string(cfg.Kind))) {
	case KindMemory:
		return NewMemory(), nil
	case KindFile, "":
		return NewFile(cfg.Path, cfg.Format, logger)
	case KindMongo:
		return NewMongo(ctx, cfg.URI, cfg.Database, logger)
	default:
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown store %q (want memory, file or mongo)", cfg.Kind)
	}
}

// Update loads event id, applies fn and stores the result. The event is
// not written when fn returns an error.
func Update(ctx context.Context, s Store, id string, fn func(*schedule.Event) error) (*schedule.Event, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(ev); err != nil {
		return nil, err
	}
	if err := s.Put(ctx, ev); err != nil {
		return nil, fmt.Errorf("store event %s: %w", id, err)
	}
	return ev, nil
}

// prepare assigns ids and validates ev before it is stored.
func prepare(ev *schedule.Event) error {
	if ev == nil {
		return errors.New(errors.ErrCodeInvalidInput, "event cannot be nil")
	}
	ev.AssignIDs()
	return ev.Validate()
}

func sortSummaries(s []Summary) {
	slices.SortFunc(s, func(a, b Summary) int { return strings.Compare(a.ID, b.ID) })
}
