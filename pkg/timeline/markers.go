package timeline

// HourMarker is an axis label at a whole-hour boundary.
type HourMarker struct {
	// Hour is the wall-clock hour (0-23); hours past midnight wrap.
	Hour int `json:"hour" bson:"hour"`

	// Minute is zero for whole-hour markers. Only the final marker can
	// carry a non-zero minute when the axis does not end on the hour.
	Minute int `json:"minute,omitempty" bson:"minute,omitempty"`

	// Left is the marker position on the [0,100] axis.
	Left float64 `json:"left" bson:"left"`

	// Final marks the trailing marker pinned to the end of the axis.
	Final bool `json:"final,omitempty" bson:"final,omitempty"`
}

// Label formats the marker as HH:MM.
func (m HourMarker) Label() string {
	return clock(m.Hour*MinutesPerHour + m.Minute)
}

// HourMarkers returns the axis labels for w.
//
// One marker is emitted for every whole hour from floor(Start/60) through
// ceil(VisibleEnd/60), keeping only those whose position falls in [0,100].
// A final marker at exactly 100% labelled with the axis end is always
// appended, so renderers never special-case the right edge.
func HourMarkers(w DayWindow) []HourMarker {
	first := floorDiv(w.Start(), MinutesPerHour)
	last := ceilDiv(w.VisibleEnd(), MinutesPerHour)

	markers := make([]HourMarker, 0, last-first+2)
	for h := first; h <= last; h++ {
		left := ToPct(w, h*MinutesPerHour)
		if left < 0 || left > 100 {
			continue
		}
		markers = append(markers, HourMarker{Hour: mod(h, 24), Left: left})
	}

	axisEnd := w.AxisEnd()
	markers = append(markers, HourMarker{
		Hour:   mod(floorDiv(axisEnd, MinutesPerHour), 24),
		Minute: mod(axisEnd, MinutesPerHour),
		Left:   100,
		Final:  true,
	})
	return markers
}
