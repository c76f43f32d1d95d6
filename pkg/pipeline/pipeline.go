// Package pipeline provides the load → layout → render pipeline of the
// signup board.
//
// This package implements the complete pipeline used by the CLI, the HTTP
// API and the terminal preview. By centralizing it, every entry point gets
// the same defaults, caching and logging.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Fetch the event from a [store.Store] (or take one read from a file)
//  2. Layout: Run the timeline engine over every selected day and table
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(st, c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    EventID: "spring-con",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	ev, err := runner.Load(ctx, "spring-con")
//	b, err := runner.Build(ctx, ev, opts)
//	artifacts, err := runner.Render(ctx, b, opts)
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/signupboard/pkg/board"
	"github.com/matzehuels/signupboard/pkg/cache"
	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/schedule"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultExtensionHours is the number of hours shown after each day's
	// nominal end when neither the options nor the event say otherwise.
	DefaultExtensionHours = 2

	// DefaultLaneHeight is the height of one lane in pixels.
	DefaultLaneHeight = 60

	// DefaultWidth is the width of the timeline area in pixels.
	DefaultWidth = 1200
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"

	// FormatConflicts is the Graphviz rendering (SVG) of the overlap graph.
	FormatConflicts = "conflicts"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:       true,
	FormatPNG:       true,
	FormatPDF:       true,
	FormatJSON:      true,
	FormatDOT:       true,
	FormatConflicts: true,
}

// FileExtension returns the file extension used when writing format.
func FileExtension(format string) string {
	if format == FormatConflicts {
		return "conflicts.svg"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the board pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	EventID string `json:"event_id,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Layout options
	Days []string `json:"days,omitempty"`

	// ExtensionHours overrides DefaultExtensionHours. The event's own
	// setting still wins over both.
	ExtensionHours *int `json:"extension_hours,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	LaneHeight int      `json:"lane_height,omitempty"`
	Width      int      `json:"width,omitempty"`

	// Day selects the day rendered by the DOT and conflict formats and
	// restricts the SVG to one day. Empty means the first available day
	// for DOT and all days for SVG.
	Day       string `json:"day,omitempty"`
	Highlight string `json:"highlight,omitempty"`

	// Runtime options (not serialized)

	// Logger receives the warnings of this run, such as dropped games.
	// Nil means the runner's logger.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Event is the laid out event.
	Event *schedule.Event

	// EventHash is the content hash of the event.
	EventHash string

	// Board is the laid out timeline.
	Board board.Board

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	board.Counts
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BoardHit  bool // Whether the board came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot, conflicts)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats parses a comma-separated format list. Empty means SVG.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{FormatSVG}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.ExtensionHours == nil {
		ext := DefaultExtensionHours
		o.ExtensionHours = &ext
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if *o.ExtensionHours < 0 {
		return errors.New(errors.ErrCodeConfiguration, "extension hours cannot be negative: %d", *o.ExtensionHours)
	}
	for _, d := range o.Days {
		if err := errors.ValidateID("day", d); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.LaneHeight == 0 {
		o.LaneHeight = DefaultLaneHeight
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.LaneHeight < 0 || o.Width < 0 {
		return errors.New(errors.ErrCodeConfiguration, "lane height and width must be positive")
	}
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults checks all fields and applies defaults for the
// full pipeline. Calling it repeatedly has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// BuildOptions returns the options for [board.Build].
func (o *Options) BuildOptions() board.BuildOptions {
	o.SetLayoutDefaults()
	return board.BuildOptions{ExtensionHours: *o.ExtensionHours, Days: o.Days}
}

// BoardKeyOpts returns cache key options for layout computation.
func (o *Options) BoardKeyOpts() cache.BoardKeyOpts {
	o.SetLayoutDefaults()
	return cache.BoardKeyOpts{ExtensionHours: *o.ExtensionHours, Days: o.Days}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Day:        o.Day,
		LaneHeight: o.LaneHeight,
		Width:      o.Width,
		Highlight:  o.Highlight,
	}
}
