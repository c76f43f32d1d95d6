package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/signupboard/pkg/board"
	"github.com/matzehuels/signupboard/pkg/cache"
	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/observability"
	"github.com/matzehuels/signupboard/pkg/schedule"
	"github.com/matzehuels/signupboard/pkg/schedule/store"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the store, cache and logger - it
// doesn't keep pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The store may be nil when events are always passed in directly.
func NewRunner(st store.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Store:  st,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.EventID == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "event id is required")
	}

	loadStart := time.Now()
	ev, err := r.Load(ctx, opts.EventID)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	result, err := r.ExecuteEvent(ctx, ev, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// ExecuteEvent runs the layout → render stages for an event that is
// already loaded, for example one read from a file.
func (r *Runner) ExecuteEvent(ctx context.Context, ev *schedule.Event, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Event:     ev,
		Artifacts: make(map[string][]byte),
	}
	if h, err := cache.HashJSON(ev); err == nil {
		result.EventHash = h
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	b, boardHit, err := r.BuildWithCacheInfo(ctx, ev, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Board = b
	result.Stats.Counts = b.Counts()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.BoardHit = boardHit

	logger := r.logger(opts)
	logger.Info("computed board",
		"event", ev.ID,
		"days", result.Stats.Days,
		"placements", result.Stats.Placements,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, b, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load fetches an event from the runner's store.
func (r *Runner) Load(ctx context.Context, eventID string) (*schedule.Event, error) {
	if r.Store == nil {
		return nil, errors.New(errors.ErrCodeConfiguration, "no event store configured")
	}
	if err := errors.ValidateID("event", eventID); err != nil {
		return nil, err
	}
	ev, err := r.Store.Get(ctx, eventID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Wrap(errors.ErrCodeEventNotFound, err, "event %q not found", eventID)
		}
		return nil, fmt.Errorf("load event %s: %w", eventID, err)
	}
	return ev, nil
}

// BuildWithCacheInfo lays out ev with caching and returns cache hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, ev *schedule.Event, opts Options) (board.Board, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return board.Board{}, false, err
	}
	if ev == nil {
		return board.Board{}, false, errors.New(errors.ErrCodeInvalidInput, "event cannot be nil")
	}

	// Compute cache key
	eventHash, err := cache.HashJSON(ev)
	if err != nil {
		return board.Board{}, false, fmt.Errorf("hash event: %w", err)
	}
	cacheKey := r.Keyer.BoardKey(eventHash, opts.BoardKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := board.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "board")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "board")
	}

	hooks := observability.Board()
	hooks.OnLayoutStart(ctx, ev.ID, len(ev.Days))
	start := time.Now()

	b, err := board.Build(ev, opts.BuildOptions())
	if err != nil {
		hooks.OnLayoutComplete(ctx, ev.ID, 0, 0, time.Since(start), err)
		return board.Board{}, false, err
	}
	counts := b.Counts()
	hooks.OnLayoutComplete(ctx, ev.ID, counts.Placements, counts.Dropped, time.Since(start), nil)
	r.logProblems(r.logger(opts), b)

	// Cache the result
	if data, err := board.Marshal(b); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLBoard); err == nil {
			observability.Cache().OnCacheSet(ctx, "board", len(data))
		} else {
			r.logger(opts).Debug("cache write failed", "err", err)
		}
	}

	return b, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, ev *schedule.Event, opts Options) (board.Board, error) {
	b, _, err := r.BuildWithCacheInfo(ctx, ev, opts)
	return b, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, b board.Board, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Compute cache key from board data
	boardData, err := board.Marshal(b)
	if err != nil {
		return nil, false, fmt.Errorf("serialize board for cache key: %w", err)
	}
	boardHash := cache.Hash(boardData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(boardHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}

	// Render all formats
	hooks := observability.Board()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderBoard(ctx, b, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(boardHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, b board.Board, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, b, opts)
	return artifacts, err
}

// Close releases resources held by the runner (the cache and the store).
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// logger returns the logger of a single run.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// logProblems warns about days without a schedule and dropped games.
func (r *Runner) logProblems(logger *log.Logger, b board.Board) {
	for _, d := range b.Days {
		if d.Unavailable != "" {
			logger.Warn("day has no schedule", "day", d.DayID, "reason", d.Unavailable)
			continue
		}
		for _, t := range d.Tables {
			for _, dr := range t.Dropped {
				logger.Warn("dropped game", "day", d.DayID, "table", t.TableID, "game", dr.ID, "reason", dr.Reason)
			}
		}
	}
}
