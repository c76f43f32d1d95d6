package timeline

import (
	"cmp"
	"slices"
)

// Item is one scheduled game on one table, as supplied by the schedule.
// The engine never modifies items.
type Item struct {
	ID      string `json:"id"`
	TableID string `json:"table_id,omitempty"`

	// Start is the start time in minutes. A nil Start marks a game whose
	// start time is missing; such games are dropped, not placed.
	Start *int `json:"start_minutes"`

	// Duration is the length of the game in minutes.
	Duration int `json:"duration_minutes"`

	// Active is false for soft-deleted games, which are skipped silently.
	Active bool `json:"active"`
}

// StartAt returns a pointer to minutes, for building [Item] literals.
func StartAt(minutes int) *int { return &minutes }

// End returns the end of the item in minutes. It must only be called on
// items with a start time.
func (it Item) End() int { return *it.Start + it.Duration }

// DropReason explains why an item was rejected.
type DropReason string

// Reasons for dropping malformed items.
const (
	DropMissingID        DropReason = "missing_id"
	DropMissingStart     DropReason = "missing_start"
	DropNegativeDuration DropReason = "negative_duration"
)

// Dropped records a malformed item that was left out of the layout.
type Dropped struct {
	ID      string     `json:"id" bson:"id"`
	TableID string     `json:"table_id,omitempty" bson:"table_id,omitempty"`
	Reason  DropReason `json:"reason" bson:"reason"`
}

// Placement is the visual position of one item.
type Placement struct {
	ID      string  `json:"id" bson:"id"`
	TableID string  `json:"table_id,omitempty" bson:"table_id,omitempty"`
	Left    float64 `json:"left" bson:"left"`
	Width   float64 `json:"width" bson:"width"`
	Lane    int     `json:"lane" bson:"lane"`
}

// Epsilon is the tolerance, in axis percent, for comparing placement
// edges. Left and Width are rounded separately, so the Right of one game
// may exceed the Left of the next game in its lane by a few ULPs.
const Epsilon = 1e-9

// Right returns Left + Width. It is exact only to within [Epsilon].
func (p Placement) Right() float64 { return p.Left + p.Width }

// Overlaps reports whether p and q share more than [Epsilon] of the axis.
// Games that merely touch do not overlap.
func (p Placement) Overlaps(q Placement) bool {
	return p.Left < q.Right()-Epsilon && q.Left < p.Right()-Epsilon
}

// TableLayout is the result of laying out the games of one table.
type TableLayout struct {
	TableID string `json:"table_id,omitempty"`

	// Placements are ordered by start time, ties broken by id.
	Placements []Placement `json:"placements"`

	// Lanes is the number of lanes the placements occupy.
	Lanes int `json:"lanes"`

	// Hidden counts valid items lying entirely outside the axis.
	Hidden int `json:"hidden,omitempty"`

	// Dropped lists malformed items, in input order.
	Dropped []Dropped `json:"dropped,omitempty"`
}

// LayoutTable computes placements for the games of one table.
//
// Inactive items are skipped and malformed items are reported in Dropped.
// The remaining items are sorted by start time (ties broken by id), mapped
// onto the axis, filtered to those intersecting it, assigned lanes in that
// same order and finally clipped to [0,100].
func LayoutTable(w DayWindow, items []Item) TableLayout {
	var out TableLayout

	valid := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.Active {
			continue
		}
		if reason, ok := validate(it); !ok {
			out.Dropped = append(out.Dropped, Dropped{ID: it.ID, TableID: it.TableID, Reason: reason})
			continue
		}
		valid = append(valid, it)
	}

	slices.SortStableFunc(valid, compareItems)

	visible := make([]Item, 0, len(valid))
	spans := make([]Span, 0, len(valid))
	for _, it := range valid {
		s := Span{ID: it.ID, Start: ToPct(w, *it.Start), End: ToPct(w, it.End())}
		if s.End <= 0 || s.Start >= 100 {
			out.Hidden++
			continue
		}
		visible = append(visible, it)
		spans = append(spans, s)
	}

	lanes := AssignLanes(spans)
	out.Lanes = LaneCount(lanes)
	out.Placements = make([]Placement, len(spans))
	for i, s := range spans {
		left := max(0, s.Start)
		width := max(0, min(100, s.End)-left)
		out.Placements[i] = Placement{
			ID:      visible[i].ID,
			TableID: visible[i].TableID,
			Left:    left,
			Width:   width,
			Lane:    lanes[i],
		}
	}
	return out
}

// DayLayout is the layout of every table of one day.
type DayLayout struct {
	Markers []HourMarker  `json:"markers"`
	Tables  []TableLayout `json:"tables"`
}

// LayoutDay groups items by TableID and lays out each table. Tables are
// returned in ascending id order.
func LayoutDay(w DayWindow, items []Item) DayLayout {
	byTable := make(map[string][]Item)
	for _, it := range items {
		byTable[it.TableID] = append(byTable[it.TableID], it)
	}

	ids := make([]string, 0, len(byTable))
	for id := range byTable {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	day := DayLayout{
		Markers: HourMarkers(w),
		Tables:  make([]TableLayout, 0, len(ids)),
	}
	for _, id := range ids {
		tl := LayoutTable(w, byTable[id])
		tl.TableID = id
		day.Tables = append(day.Tables, tl)
	}
	return day
}

func validate(it Item) (DropReason, bool) {
	switch {
	case it.ID == "":
		return DropMissingID, false
	case it.Start == nil:
		return DropMissingStart, false
	case it.Duration < 0:
		return DropNegativeDuration, false
	}
	return "", true
}

func compareItems(a, b Item) int {
	if c := cmp.Compare(*a.Start, *b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
