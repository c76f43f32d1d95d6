// Package cache stores computed boards and rendered artifacts.
//
// Layout is cheap but rendering PNG or PDF shells out to external tools,
// so the board runner keeps both stages behind a [Cache]:
//   - [NullCache]: caching disabled
//   - [FileCache]: hash-sharded JSON entries on disk, for the CLI
//   - [RedisCache]: shared cache for server deployments
//
// Keys are produced by a [Keyer] from content hashes, so changing an event
// or a layout option naturally misses the old entries.
package cache

import (
	"context"
	"fmt"
	"slices"
	"time"
)

// Default entry lifetimes.
const (
	TTLBoard    = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the cached value and whether it was found.
	// Expired or corrupt entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// BoardKeyOpts are the layout options a cached board depends on.
type BoardKeyOpts struct {
	ExtensionHours int      `json:"extension_hours"`
	Days           []string `json:"days,omitempty"`
}

// ArtifactKeyOpts are the render options a cached artifact depends on.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Day        string `json:"day,omitempty"`
	LaneHeight int    `json:"lane_height,omitempty"`
	Width      int    `json:"width,omitempty"`
	Highlight  string `json:"highlight,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// BoardKey keys a board computed from the event with hash eventHash.
	BoardKey(eventHash string, opts BoardKeyOpts) string

	// ArtifactKey keys one rendered format of the board with hash boardHash.
	ArtifactKey(boardHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// BoardKey returns "board:<hash>" over the event hash and options.
// The order of opts.Days does not matter.
func (DefaultKeyer) BoardKey(eventHash string, opts BoardKeyOpts) string {
	opts.Days = slices.Clone(opts.Days)
	slices.Sort(opts.Days)
	return hashKey("board", eventHash, opts)
}

// ArtifactKey returns "artifact:<format>:<hash>".
func (DefaultKeyer) ArtifactKey(boardHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), boardHash, opts)
}

var _ Keyer = DefaultKeyer{}
