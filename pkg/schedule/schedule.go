package schedule

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/signupboard/pkg/errors"
)

// Event is one signup board: a set of days, the tables available on them
// and the games registered on those tables.
type Event struct {
	ID   string `json:"id" toml:"id" bson:"_id"`
	Name string `json:"name" toml:"name" bson:"name"`

	// ExtensionHours overrides the configured number of hours appended
	// after each day's end. Nil means "use the configured default".
	ExtensionHours *int `json:"extension_hours,omitempty" toml:"extension_hours,omitempty" bson:"extension_hours,omitempty"`

	Days   []Day   `json:"days" toml:"days" bson:"days"`
	Tables []Table `json:"tables" toml:"tables" bson:"tables"`
	Games  []Game  `json:"games" toml:"games" bson:"games"`
}

// Day is one day of an event with its nominal opening hours.
type Day struct {
	ID    string `json:"id" toml:"id" bson:"id"`
	Label string `json:"label,omitempty" toml:"label,omitempty" bson:"label,omitempty"`
	Date  string `json:"date,omitempty" toml:"date,omitempty" bson:"date,omitempty"`
	Start string `json:"start" toml:"start" bson:"start"`
	End   string `json:"end" toml:"end" bson:"end"`
}

// Table is a physical table games are registered on.
type Table struct {
	ID   string `json:"id" toml:"id" bson:"id"`
	Name string `json:"name,omitempty" toml:"name,omitempty" bson:"name,omitempty"`
}

// Game is one game registered on a table for one day.
type Game struct {
	ID      string `json:"id" toml:"id" bson:"id"`
	Name    string `json:"name" toml:"name" bson:"name"`
	TableID string `json:"table" toml:"table" bson:"table"`
	DayID   string `json:"day" toml:"day" bson:"day"`

	// Start is an HH:MM clock string; empty while the game is unscheduled.
	Start string `json:"start,omitempty" toml:"start,omitempty" bson:"start,omitempty"`

	// Duration is the planned length in minutes.
	Duration int `json:"duration" toml:"duration" bson:"duration"`

	// Deleted marks a soft-deleted game; it stays stored but is not shown.
	Deleted bool `json:"deleted,omitempty" toml:"deleted,omitempty" bson:"deleted,omitempty"`

	Host       string   `json:"host,omitempty" toml:"host,omitempty" bson:"host,omitempty"`
	Players    []string `json:"players,omitempty" toml:"players,omitempty" bson:"players,omitempty"`
	MaxPlayers int      `json:"max_players,omitempty" toml:"max_players,omitempty" bson:"max_players,omitempty"`
}

// Day returns the day with the given id.
func (e *Event) Day(id string) (*Day, bool) {
	i := slices.IndexFunc(e.Days, func(d Day) bool { return d.ID == id })
	if i < 0 {
		return nil, false
	}
	return &e.Days[i], true
}

// Table returns the table with the given id.
func (e *Event) Table(id string) (*Table, bool) {
	i := slices.IndexFunc(e.Tables, func(t Table) bool { return t.ID == id })
	if i < 0 {
		return nil, false
	}
	return &e.Tables[i], true
}

// Game returns the game with the given id.
func (e *Event) Game(id string) (*Game, bool) {
	i := slices.IndexFunc(e.Games, func(g Game) bool { return g.ID == id })
	if i < 0 {
		return nil, false
	}
	return &e.Games[i], true
}

// GamesFor returns the games registered on table tableID for day dayID,
// including soft-deleted ones, in stored order.
func (e *Event) GamesFor(dayID, tableID string) []Game {
	var out []Game
	for _, g := range e.Games {
		if g.DayID == dayID && g.TableID == tableID {
			out = append(out, g)
		}
	}
	return out
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() *Event {
	c := *e
	if e.ExtensionHours != nil {
		ext := *e.ExtensionHours
		c.ExtensionHours = &ext
	}
	c.Days = slices.Clone(e.Days)
	c.Tables = slices.Clone(e.Tables)
	c.Games = make([]Game, len(e.Games))
	for i, g := range e.Games {
		g.Players = slices.Clone(g.Players)
		c.Games[i] = g
	}
	if e.Games == nil {
		c.Games = nil
	}
	return &c
}

// AssignIDs gives a fresh UUID to the event and to every day, table and
// game that has no id yet. Existing ids are kept.
func (e *Event) AssignIDs() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	for i := range e.Days {
		if e.Days[i].ID == "" {
			e.Days[i].ID = uuid.NewString()
		}
	}
	for i := range e.Tables {
		if e.Tables[i].ID == "" {
			e.Tables[i].ID = uuid.NewString()
		}
	}
	for i := range e.Games {
		if e.Games[i].ID == "" {
			e.Games[i].ID = uuid.NewString()
		}
	}
}

// Validate checks the structure of the event: valid and unique ids, games
// referring to existing days and tables, and well-formed clock strings.
//
// Opening hours that do not form a valid window are not rejected here; the
// board shows those days as unavailable instead.
func (e *Event) Validate() error {
	if err := errors.ValidateID("event", e.ID); err != nil {
		return err
	}
	if e.ExtensionHours != nil && *e.ExtensionHours < 0 {
		return errors.New(errors.ErrCodeConfiguration, "event %s: extension hours cannot be negative", e.ID)
	}

	days := make(map[string]bool, len(e.Days))
	for _, d := range e.Days {
		if err := errors.ValidateID("day", d.ID); err != nil {
			return err
		}
		if days[d.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate day id %q", d.ID)
		}
		days[d.ID] = true
		if _, err := ParseClock(d.Start); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidClock, err, "day %s start", d.ID)
		}
		if _, err := ParseClock(d.End); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidClock, err, "day %s end", d.ID)
		}
	}

	tables := make(map[string]bool, len(e.Tables))
	for _, t := range e.Tables {
		if err := errors.ValidateID("table", t.ID); err != nil {
			return err
		}
		if tables[t.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate table id %q", t.ID)
		}
		tables[t.ID] = true
	}

	games := make(map[string]bool, len(e.Games))
	for _, g := range e.Games {
		if err := errors.ValidateID("game", g.ID); err != nil {
			return err
		}
		if games[g.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate game id %q", g.ID)
		}
		games[g.ID] = true
		if !days[g.DayID] {
			return errors.New(errors.ErrCodeInvalidInput, "game %s refers to unknown day %q", g.ID, g.DayID)
		}
		if !tables[g.TableID] {
			return errors.New(errors.ErrCodeInvalidInput, "game %s refers to unknown table %q", g.ID, g.TableID)
		}
		if g.Start != "" {
			if _, err := ParseClock(g.Start); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidClock, err, "game %s start", g.ID)
			}
		}
	}
	return nil
}
