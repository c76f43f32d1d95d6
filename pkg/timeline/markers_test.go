package timeline

import "testing"

func TestHourMarkers(t *testing.T) {
	w := MustDayWindow(540, 1080, 1) // 09:00-18:00, visible to 19:00, axis to 20:00

	markers := HourMarkers(w)

	// 09..19 inclusive plus the final marker at 20:00
	if len(markers) != 12 {
		t.Fatalf("got %d markers, want 12: %+v", len(markers), markers)
	}
	if markers[0].Hour != 9 || markers[0].Left != 0 {
		t.Errorf("first marker = %+v, want hour 9 at 0", markers[0])
	}
	for i, m := range markers[:len(markers)-1] {
		if m.Hour != 9+i {
			t.Errorf("marker %d hour = %d, want %d", i, m.Hour, 9+i)
		}
		if m.Final {
			t.Errorf("marker %d should not be final", i)
		}
		if m.Left < 0 || m.Left >= 100 {
			t.Errorf("marker %d left = %v out of range", i, m.Left)
		}
	}

	last := markers[len(markers)-1]
	if !last.Final || last.Left != 100 || last.Hour != 20 || last.Minute != 0 {
		t.Errorf("final marker = %+v, want 20:00 at 100", last)
	}
	if last.Label() != "20:00" {
		t.Errorf("final label = %q, want 20:00", last.Label())
	}
}

func TestHourMarkersUnalignedStart(t *testing.T) {
	w := MustDayWindow(570, 1050, 0) // 09:30-17:30, axis to 18:30

	markers := HourMarkers(w)

	// 09:00 falls before the axis and is filtered out
	if markers[0].Hour != 10 {
		t.Errorf("first marker hour = %d, want 10", markers[0].Hour)
	}
	if markers[0].Left <= 0 {
		t.Errorf("first marker left = %v, want > 0", markers[0].Left)
	}

	last := markers[len(markers)-1]
	if last.Hour != 18 || last.Minute != 30 || !last.Final {
		t.Errorf("final marker = %+v, want 18:30", last)
	}
	if last.Label() != "18:30" {
		t.Errorf("final label = %q, want 18:30", last.Label())
	}

	// ceil(17:30) = 18:00 is still on the axis
	prev := markers[len(markers)-2]
	if prev.Hour != 18 || prev.Final {
		t.Errorf("last regular marker = %+v, want 18:00", prev)
	}
}

func TestHourMarkersWrapPastMidnight(t *testing.T) {
	w := MustDayWindow(1320, 1500, 0) // 22:00-01:00, axis to 02:00

	markers := HourMarkers(w)
	want := []int{22, 23, 0, 1, 2}
	if len(markers) != len(want) {
		t.Fatalf("got %d markers, want %d: %+v", len(markers), len(want), markers)
	}
	for i, h := range want {
		if markers[i].Hour != h {
			t.Errorf("marker %d hour = %d, want %d", i, markers[i].Hour, h)
		}
	}
}

func TestHourMarkersIncreasing(t *testing.T) {
	w := MustDayWindow(485, 1333, 3)
	markers := HourMarkers(w)
	for i := 1; i < len(markers); i++ {
		if markers[i].Left <= markers[i-1].Left {
			t.Errorf("marker %d left %v not after %v", i, markers[i].Left, markers[i-1].Left)
		}
	}
}
