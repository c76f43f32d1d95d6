package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/timeline"
)

// maxClockHour allows explicit after-midnight notation up to 47:59.
const maxClockHour = 47

// ErrNoClock is returned by [ParseClock] for an empty clock string.
var ErrNoClock = errors.New(errors.ErrCodeInvalidClock, "no time given")

// ParseClock parses an "HH:MM" (or "H:MM") clock string into minutes.
//
// Hours 0 through 47 are accepted; minutes must be 0 through 59. Surrounding
// whitespace is ignored. An empty string returns [ErrNoClock].
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNoClock
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 || !digits(hh) || !digits(mm) {
		return 0, errors.New(errors.ErrCodeInvalidClock, "invalid time %q (want HH:MM)", s)
	}

	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > maxClockHour {
		return 0, errors.New(errors.ErrCodeInvalidClock, "invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, errors.New(errors.ErrCodeInvalidClock, "invalid minute in %q", s)
	}
	return h*timeline.MinutesPerHour + m, nil
}

// digits reports whether s holds only ASCII digits. strconv.Atoi alone
// would accept a sign.
func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatClock formats minutes as HH:MM on a 24-hour clock, wrapping past
// midnight.
func FormatClock(minutes int) string {
	minutes %= timeline.MinutesPerDay
	if minutes < 0 {
		minutes += timeline.MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/timeline.MinutesPerHour, minutes%timeline.MinutesPerHour)
}
