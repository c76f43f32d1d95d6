package board

import (
	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/schedule"
	"github.com/matzehuels/signupboard/pkg/timeline"
)

// BuildOptions selects what [Build] lays out.
type BuildOptions struct {
	// ExtensionHours is used unless the event overrides it.
	ExtensionHours int

	// Days restricts the board to these day ids, in this order.
	// Empty means every day of the event in stored order.
	Days []string
}

// Build lays out ev. Every table of the event appears on every available
// day, in the event's table order, even when it has no games.
//
// A day whose window is invalid is kept with Unavailable set instead of
// failing the whole board. An unknown day id in opts.Days fails with
// [errors.ErrCodeDayNotFound].
func Build(ev *schedule.Event, opts BuildOptions) (Board, error) {
	if ev == nil {
		return Board{}, errors.New(errors.ErrCodeInvalidInput, "event cannot be nil")
	}
	ext := ev.Extension(opts.ExtensionHours)
	if ext < 0 {
		return Board{}, errors.New(errors.ErrCodeConfiguration, "extension hours cannot be negative: %d", ext)
	}

	dayIDs := opts.Days
	if len(dayIDs) == 0 {
		for _, d := range ev.Days {
			dayIDs = append(dayIDs, d.ID)
		}
	}

	b := Board{
		EventID:        ev.ID,
		EventName:      ev.Name,
		ExtensionHours: ext,
		Days:           make([]DayBoard, 0, len(dayIDs)),
	}
	for _, id := range dayIDs {
		d, ok := ev.Day(id)
		if !ok {
			return Board{}, errors.New(errors.ErrCodeDayNotFound, "day %q not found in event %s", id, ev.ID)
		}
		db, err := buildDay(ev, d, ext)
		if err != nil {
			return Board{}, err
		}
		b.Days = append(b.Days, db)
	}
	return b, nil
}

func buildDay(ev *schedule.Event, d *schedule.Day, ext int) (DayBoard, error) {
	db := DayBoard{DayID: d.ID, Label: d.Label, Date: d.Date}

	w, err := d.Window(ext)
	if err != nil {
		db.Unavailable = errors.UserMessage(err)
		return db, nil
	}
	items, err := ev.ItemsForDay(d.ID)
	if err != nil {
		return DayBoard{}, err
	}

	db.Window = NewWindow(w)
	db.Markers = timeline.HourMarkers(w)

	byTable := make(map[string][]timeline.Item)
	for _, it := range items {
		byTable[it.TableID] = append(byTable[it.TableID], it)
	}

	db.Tables = make([]TableBoard, 0, len(ev.Tables))
	for _, t := range ev.Tables {
		tl := timeline.LayoutTable(w, byTable[t.ID])
		db.Tables = append(db.Tables, tableBoard(ev, t, tl))
	}
	return db, nil
}

func tableBoard(ev *schedule.Event, t schedule.Table, tl timeline.TableLayout) TableBoard {
	tb := TableBoard{
		TableID:    t.ID,
		Name:       t.Name,
		Lanes:      tl.Lanes,
		Placements: make([]Placement, 0, len(tl.Placements)),
		Hidden:     tl.Hidden,
		Dropped:    tl.Dropped,
	}
	for _, p := range tl.Placements {
		g, ok := ev.Game(p.ID)
		if !ok {
			continue
		}
		start, _ := schedule.ParseClock(g.Start)
		tb.Placements = append(tb.Placements, Placement{
			ID:         p.ID,
			Name:       g.Name,
			Left:       p.Left,
			Width:      p.Width,
			Lane:       p.Lane,
			Start:      schedule.FormatClock(start),
			End:        schedule.FormatClock(start + g.Duration),
			Host:       g.Host,
			Players:    len(g.Players),
			MaxPlayers: g.MaxPlayers,
		})
	}
	return tb
}
