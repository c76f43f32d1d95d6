package schedule

import (
	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/timeline"
)

// Bounds parses the day's opening hours into minute offsets.
func (d Day) Bounds() (start, end int, err error) {
	if start, err = ParseClock(d.Start); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeConfiguration, err, "day %s has no valid start time (%q)", d.ID, d.Start)
	}
	if end, err = ParseClock(d.End); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeConfiguration, err, "day %s has no valid end time (%q)", d.ID, d.End)
	}
	return start, end, nil
}

// Window builds the timeline window of the day with the given extension.
// Any failure is reported with code [errors.ErrCodeConfiguration].
func (d Day) Window(extensionHours int) (timeline.DayWindow, error) {
	start, end, err := d.Bounds()
	if err != nil {
		return timeline.DayWindow{}, err
	}
	if end <= start {
		return timeline.DayWindow{}, errors.New(errors.ErrCodeConfiguration,
			"day %s must end after it starts (%s-%s)", d.ID, d.Start, d.End)
	}
	w, err := timeline.NewDayWindow(start, end, extensionHours)
	if err != nil {
		return timeline.DayWindow{}, errors.Wrap(errors.ErrCodeConfiguration, err, "day %s", d.ID)
	}
	return w, nil
}

// Extension returns the event's extension hours, falling back to def.
func (e *Event) Extension(def int) int {
	if e.ExtensionHours != nil {
		return *e.ExtensionHours
	}
	return def
}

// Window builds the timeline window of day dayID. defaultExt is used
// unless the event overrides the extension hours.
func (e *Event) Window(dayID string, defaultExt int) (timeline.DayWindow, error) {
	d, ok := e.Day(dayID)
	if !ok {
		return timeline.DayWindow{}, errors.New(errors.ErrCodeDayNotFound, "day %q not found in event %s", dayID, e.ID)
	}
	return d.Window(e.Extension(defaultExt))
}

// ItemsForDay converts the games of day dayID into timeline items.
//
// Soft-deleted games become inactive items. A game without a parseable start
// clock becomes an item without a start time. On days ending past midnight,
// game clocks earlier than the day start are moved to the next calendar day.
func (e *Event) ItemsForDay(dayID string) ([]timeline.Item, error) {
	d, ok := e.Day(dayID)
	if !ok {
		return nil, errors.New(errors.ErrCodeDayNotFound, "day %q not found in event %s", dayID, e.ID)
	}
	dayStart, dayEnd, boundsErr := d.Bounds()
	wraps := boundsErr == nil && dayEnd > timeline.MinutesPerDay

	var items []timeline.Item
	for _, g := range e.Games {
		if g.DayID != dayID {
			continue
		}
		it := timeline.Item{
			ID:       g.ID,
			TableID:  g.TableID,
			Duration: g.Duration,
			Active:   !g.Deleted,
		}
		if start, err := ParseClock(g.Start); err == nil {
			if wraps && start < dayStart {
				start += timeline.MinutesPerDay
			}
			it.Start = timeline.StartAt(start)
		}
		items = append(items, it)
	}
	return items, nil
}
