package timeline

// Span is a half-open interval [Start, End) on the percentage axis.
type Span struct {
	ID    string
	Start float64
	End   float64
}

// Overlaps reports whether two spans intersect. Spans that only touch
// (one ends where the other starts) do not overlap.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// AssignLanes packs spans into lanes and returns the lane of each span,
// index-aligned with the input.
//
// Spans are processed in the order supplied. Each span goes to the lowest
// lane whose last span ends at or before the span's start; if there is none,
// a new lane is opened. The result depends only on the input order.
//
// When spans are sorted by Start this greedy scan is optimal: the number of
// lanes equals the maximum number of spans overlapping at any instant, which
// is why [LayoutTable] always sorts before calling it. In any other order
// lanes never collide but more lanes than necessary may be used.
func AssignLanes(spans []Span) []int {
	lanes := make([]int, len(spans))
	var ends []float64 // end of the last span placed in each lane

	for i, s := range spans {
		lane := -1
		for l, end := range ends {
			if end <= s.Start {
				lane = l
				break
			}
		}
		if lane < 0 {
			lane = len(ends)
			ends = append(ends, s.End)
		} else {
			ends[lane] = s.End
		}
		lanes[i] = lane
	}
	return lanes
}

// LaneCount returns the number of lanes used by an assignment.
func LaneCount(lanes []int) int {
	n := 0
	for _, l := range lanes {
		if l+1 > n {
			n = l + 1
		}
	}
	return n
}
