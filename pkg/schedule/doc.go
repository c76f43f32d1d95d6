// Package schedule models the events, days, tables and games of a signup
// board and converts them into timeline inputs.
//
// An [Event] spans one or more [Day] values. Each day has nominal opening
// hours written as HH:MM clock strings. Games are registered on a [Table]
// for one day with a start clock and a duration in minutes.
//
// # Clock Times
//
// Clock strings are parsed by [ParseClock] into minute offsets. Hours up to
// 47 are accepted so days running past midnight can be written explicitly
// ("20:00" to "26:00"). Games on such a day may use either notation: a game
// clock earlier than the day start is moved to the following calendar day.
//
// # Timeline Conversion
//
//	w, err := ev.Window(dayID, defaultExtensionHours)
//	items, err := ev.ItemsForDay(dayID)
//	layout := timeline.LayoutTable(w, items)
//
// Games whose start clock is missing or malformed become items without a
// start time, so the timeline engine reports them as dropped rather than
// failing the whole table.
//
// # Files
//
// Events are stored as JSON or TOML documents; see [ReadFile] and [WriteFile].
package schedule
