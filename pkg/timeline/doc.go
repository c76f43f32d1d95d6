// Package timeline computes the visual layout of scheduled games on a day
// timeline.
//
// # Overview
//
// A signup board shows, for every event day, one row per table with the
// games registered on that table drawn as boxes along a time axis. This
// package turns already-scheduled games into percentage coordinates on that
// axis and stacks overlapping games into lanes so that no two boxes on the
// same table collide:
//
//   - [DayWindow] and [ToPct] map absolute minute offsets onto a [0,100] axis.
//   - [AssignLanes] packs time spans into lanes with a greedy first-fit scan.
//   - [LayoutTable] composes the two and emits one [Placement] per visible game.
//   - [HourMarkers] produces the axis labels, including a trailing marker at 100%.
//
// The package never schedules games. Start times are decided elsewhere and
// arrive as plain minute offsets (see the schedule package for HH:MM parsing).
//
// # The Axis
//
// A day window covers the nominal opening hours, extended by a configurable
// number of hours to absorb overrunning games, plus one reserved hour so a
// game ending exactly at the extended boundary is not clipped:
//
//	start ─────────── end ──── end+ext ──── end+ext+60
//	  0%                                       100%
//
// Minute offsets are not wall-clock times of day. A day running past
// midnight simply has an end above 1440; the mapper never wraps.
//
// # Lanes
//
// Games on one table are sorted by start (ties broken by id) and assigned to
// the first lane whose previous game has already ended. Intervals are
// half-open: a game ending at 11:00 and one starting at 11:00 share a lane.
// Processing in start order makes the greedy scan optimal, so the number of
// lanes equals the largest set of mutually overlapping games.
//
// # Malformed Input
//
// Inactive games are skipped. Games without an id, without a start time, or
// with a negative duration are reported in [TableLayout.Dropped] instead of
// failing the whole table. Games entirely outside the axis are a normal
// outcome and are only counted in [TableLayout.Hidden].
//
// # Concurrency
//
// Every function is pure and holds no state between calls, so layouts can be
// computed concurrently from any number of goroutines.
package timeline
