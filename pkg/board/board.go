// Package board lays out a whole signup board event.
//
// A [Board] is the serializable result of running the timeline engine over
// every selected day and table of a [schedule.Event]. It is what the
// renderers, the HTTP API and the terminal preview consume, and what the
// pipeline caches.
//
//	b, err := board.Build(ev, board.BuildOptions{ExtensionHours: 2})
//	for _, day := range b.Days {
//	    if day.Unavailable != "" {
//	        // render the "no schedule" fallback
//	        continue
//	    }
//	    for _, table := range day.Tables {
//	        // table.Placements carry percentage Left/Width and a Lane
//	    }
//	}
package board

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/timeline"
)

// Board is the laid out timeline of one event.
type Board struct {
	EventID        string     `json:"event_id" bson:"event_id"`
	EventName      string     `json:"event_name,omitempty" bson:"event_name,omitempty"`
	ExtensionHours int        `json:"extension_hours" bson:"extension_hours"`
	Days           []DayBoard `json:"days" bson:"days"`
}

// DayBoard is the timeline of one day.
type DayBoard struct {
	DayID string `json:"day_id" bson:"day_id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Date  string `json:"date,omitempty" bson:"date,omitempty"`

	// Window is nil when the day could not be laid out.
	Window  *Window               `json:"window,omitempty" bson:"window,omitempty"`
	Markers []timeline.HourMarker `json:"markers,omitempty" bson:"markers,omitempty"`
	Tables  []TableBoard          `json:"tables,omitempty" bson:"tables,omitempty"`

	// Unavailable explains why the day shows no schedule.
	Unavailable string `json:"unavailable,omitempty" bson:"unavailable,omitempty"`
}

// Available reports whether the day has a timeline.
func (d DayBoard) Available() bool { return d.Unavailable == "" && d.Window != nil }

// Window is the serialized form of a [timeline.DayWindow], in minutes
// since midnight of the day.
type Window struct {
	Start          int `json:"start" bson:"start"`
	End            int `json:"end" bson:"end"`
	ExtensionHours int `json:"extension_hours" bson:"extension_hours"`
	VisibleEnd     int `json:"visible_end" bson:"visible_end"`
	AxisEnd        int `json:"axis_end" bson:"axis_end"`
}

// NewWindow captures w.
func NewWindow(w timeline.DayWindow) *Window {
	return &Window{
		Start:          w.Start(),
		End:            w.End(),
		ExtensionHours: w.ExtensionHours(),
		VisibleEnd:     w.VisibleEnd(),
		AxisEnd:        w.AxisEnd(),
	}
}

// DayWindow rebuilds the timeline window.
func (w Window) DayWindow() (timeline.DayWindow, error) {
	return timeline.NewDayWindow(w.Start, w.End, w.ExtensionHours)
}

// TableBoard is the timeline of one table on one day.
type TableBoard struct {
	TableID    string             `json:"table_id" bson:"table_id"`
	Name       string             `json:"name,omitempty" bson:"name,omitempty"`
	Lanes      int                `json:"lanes" bson:"lanes"`
	Placements []Placement        `json:"placements" bson:"placements"`
	Hidden     int                `json:"hidden,omitempty" bson:"hidden,omitempty"`
	Dropped    []timeline.Dropped `json:"dropped,omitempty" bson:"dropped,omitempty"`
}

// Placement is a laid out game with the details renderers show.
type Placement struct {
	ID    string  `json:"id" bson:"id"`
	Name  string  `json:"name" bson:"name"`
	Left  float64 `json:"left" bson:"left"`
	Width float64 `json:"width" bson:"width"`
	Lane  int     `json:"lane" bson:"lane"`

	// Start and End are HH:MM clocks of the unclipped game.
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`

	Host       string `json:"host,omitempty" bson:"host,omitempty"`
	Players    int    `json:"players" bson:"players"`
	MaxPlayers int    `json:"max_players,omitempty" bson:"max_players,omitempty"`
}

// Right returns Left + Width, exact to within [timeline.Epsilon].
func (p Placement) Right() float64 { return p.Left + p.Width }

// Full reports whether the game has reached its player limit.
func (p Placement) Full() bool { return p.MaxPlayers > 0 && p.Players >= p.MaxPlayers }

// Day returns the day board with the given id.
func (b *Board) Day(id string) (*DayBoard, bool) {
	for i := range b.Days {
		if b.Days[i].DayID == id {
			return &b.Days[i], true
		}
	}
	return nil, false
}

// Counts summarizes a board.
type Counts struct {
	Days        int
	Unavailable int
	Tables      int
	Placements  int
	Hidden      int
	Dropped     int
	MaxLanes    int
}

// Counts tallies the board's contents.
func (b *Board) Counts() Counts {
	c := Counts{Days: len(b.Days)}
	for _, d := range b.Days {
		if !d.Available() {
			c.Unavailable++
		}
		c.Tables += len(d.Tables)
		for _, t := range d.Tables {
			c.Placements += len(t.Placements)
			c.Hidden += t.Hidden
			c.Dropped += len(t.Dropped)
			c.MaxLanes = max(c.MaxLanes, t.Lanes)
		}
	}
	return c
}

// =============================================================================
// Board Serialization API
// =============================================================================

// Marshal serializes a Board to pretty-printed JSON bytes.
func Marshal(b Board) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Board.
func Unmarshal(data []byte) (Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return Board{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal board")
	}
	if b.EventID == "" {
		return Board{}, errors.New(errors.ErrCodeInvalidFormat, "board is missing event_id")
	}
	return b, nil
}

// WriteFile writes a Board to a JSON file.
func WriteFile(b Board, path string) error {
	data, err := Marshal(b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Board from a JSON file.
func ReadFile(path string) (Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
