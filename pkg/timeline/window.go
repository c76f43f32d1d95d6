package timeline

import (
	"fmt"

	"github.com/matzehuels/signupboard/pkg/errors"
)

const (
	// MinutesPerHour is the number of minutes in one hour.
	MinutesPerHour = 60

	// MinutesPerDay is the number of minutes in one day.
	MinutesPerDay = 24 * MinutesPerHour

	// axisBuffer is the reserved time after the extended end so games
	// ending exactly at the boundary stay fully visible.
	axisBuffer = MinutesPerHour
)

// DayWindow is the visible time range of one event day.
//
// A DayWindow can only be obtained from [NewDayWindow], which guarantees
// End > Start and ExtensionHours >= 0. The zero value is a degenerate but
// safe window (0:00 to 0:00, axis of one hour).
type DayWindow struct {
	start          int
	end            int
	extensionHours int
}

// NewDayWindow validates and returns a day window. start and end are minute
// offsets (end may exceed [MinutesPerDay] for days running past midnight).
//
// It returns an error with code [errors.ErrCodeConfiguration] when the day
// does not end after it starts or when extensionHours is negative.
func NewDayWindow(start, end, extensionHours int) (DayWindow, error) {
	if end <= start {
		return DayWindow{}, errors.New(errors.ErrCodeConfiguration,
			"day window must end after it starts (start %d, end %d)", start, end)
	}
	if extensionHours < 0 {
		return DayWindow{}, errors.New(errors.ErrCodeConfiguration,
			"extension hours cannot be negative: %d", extensionHours)
	}
	return DayWindow{start: start, end: end, extensionHours: extensionHours}, nil
}

// MustDayWindow is like [NewDayWindow] but panics on invalid input.
// It is intended for tests and package-level fixtures.
func MustDayWindow(start, end, extensionHours int) DayWindow {
	w, err := NewDayWindow(start, end, extensionHours)
	if err != nil {
		panic(err)
	}
	return w
}

// Start returns the nominal start of the day in minutes.
func (w DayWindow) Start() int { return w.start }

// End returns the nominal end of the day in minutes.
func (w DayWindow) End() int { return w.end }

// ExtensionHours returns the number of hours appended after End.
func (w DayWindow) ExtensionHours() int { return w.extensionHours }

// VisibleEnd returns End extended by the configured extension hours.
func (w DayWindow) VisibleEnd() int { return w.end + w.extensionHours*MinutesPerHour }

// AxisEnd returns the minute mapped to 100%: VisibleEnd plus one reserved hour.
func (w DayWindow) AxisEnd() int { return w.VisibleEnd() + axisBuffer }

// Span returns the number of minutes covered by the axis. It is always positive.
func (w DayWindow) Span() int { return w.AxisEnd() - w.start }

// String formats the window as "09:00-18:00 +2h".
func (w DayWindow) String() string {
	return fmt.Sprintf("%s-%s +%dh", clock(w.start), clock(w.end), w.extensionHours)
}

// ToPct maps a minute offset onto the window's [0,100] axis.
//
// Any offset is accepted: values before Start map below 0 and values after
// AxisEnd map above 100. The mapping is strictly increasing in minutes, with
// ToPct(w, w.Start()) == 0 and ToPct(w, w.AxisEnd()) == 100.
func ToPct(w DayWindow, minutes int) float64 {
	return float64(minutes-w.start) / float64(w.Span()) * 100
}

// clock formats minutes as HH:MM, wrapping hours past midnight.
func clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", mod(floorDiv(minutes, MinutesPerHour), 24), mod(minutes, MinutesPerHour))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
