package schedule

import (
	"testing"

	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/timeline"
)

func TestDayWindow(t *testing.T) {
	tests := []struct {
		name    string
		day     Day
		ext     int
		start   int
		axisEnd int
		wantErr bool
	}{
		{"regular day", Day{ID: "d", Start: "09:00", End: "18:00"}, 1, 540, 1200, false},
		{"no extension", Day{ID: "d", Start: "10:00", End: "16:00"}, 0, 600, 1020, false},
		{"past midnight", Day{ID: "d", Start: "20:00", End: "26:00"}, 0, 1200, 1620, false},
		{"end before start", Day{ID: "d", Start: "18:00", End: "09:00"}, 1, 0, 0, true},
		{"empty window", Day{ID: "d", Start: "09:00", End: "09:00"}, 1, 0, 0, true},
		{"missing end", Day{ID: "d", Start: "09:00"}, 1, 0, 0, true},
		{"negative extension", Day{ID: "d", Start: "09:00", End: "18:00"}, -1, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := tt.day.Window(tt.ext)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeConfiguration) {
					t.Errorf("Window() error = %v, want code %s", err, errors.ErrCodeConfiguration)
				}
				return
			}
			if err != nil {
				t.Fatalf("Window() error = %v", err)
			}
			if w.Start() != tt.start || w.AxisEnd() != tt.axisEnd {
				t.Errorf("Window() = %v (axis end %d), want start %d axis end %d", w, w.AxisEnd(), tt.start, tt.axisEnd)
			}
		})
	}
}

func TestEventWindowExtension(t *testing.T) {
	ev := sampleEvent()

	w, err := ev.Window("sat", 2)
	if err != nil {
		t.Fatalf("Window() error = %v", err)
	}
	if w.ExtensionHours() != 2 {
		t.Errorf("ExtensionHours = %d, want default 2", w.ExtensionHours())
	}

	ev.ExtensionHours = intPtr(0)
	w, err = ev.Window("sat", 2)
	if err != nil {
		t.Fatalf("Window() error = %v", err)
	}
	if w.ExtensionHours() != 0 {
		t.Errorf("ExtensionHours = %d, want event override 0", w.ExtensionHours())
	}

	if _, err := ev.Window("mon", 2); !errors.Is(err, errors.ErrCodeDayNotFound) {
		t.Errorf("Window(mon) error = %v, want DAY_NOT_FOUND", err)
	}
}

func TestItemsForDay(t *testing.T) {
	ev := sampleEvent()

	items, err := ev.ItemsForDay("sat")
	if err != nil {
		t.Fatalf("ItemsForDay() error = %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("got %d items, want 5", len(items))
	}

	byID := make(map[string]timeline.Item)
	for _, it := range items {
		byID[it.ID] = it
	}
	if it := byID["brass"]; it.Start == nil || *it.Start != 570 || it.Duration != 90 || !it.Active || it.TableID != "t1" {
		t.Errorf("brass = %+v", it)
	}
	if it := byID["gone"]; it.Active {
		t.Error("deleted game should be inactive")
	}
	if it := byID["tbd"]; it.Start != nil {
		t.Errorf("unscheduled game start = %d, want nil", *it.Start)
	}

	if _, err := ev.ItemsForDay("mon"); !errors.Is(err, errors.ErrCodeDayNotFound) {
		t.Errorf("ItemsForDay(mon) error = %v, want DAY_NOT_FOUND", err)
	}
}

func TestItemsForDayPastMidnight(t *testing.T) {
	ev := &Event{
		ID:     "night",
		Days:   []Day{{ID: "fri", Start: "20:00", End: "26:00"}},
		Tables: []Table{{ID: "t1"}},
		Games: []Game{
			{ID: "late", TableID: "t1", DayID: "fri", Start: "01:00", Duration: 60},
			{ID: "explicit", TableID: "t1", DayID: "fri", Start: "25:00", Duration: 60},
			{ID: "evening", TableID: "t1", DayID: "fri", Start: "21:00", Duration: 60},
		},
	}

	items, err := ev.ItemsForDay("fri")
	if err != nil {
		t.Fatalf("ItemsForDay() error = %v", err)
	}
	want := map[string]int{"late": 1500, "explicit": 1500, "evening": 1260}
	for _, it := range items {
		if *it.Start != want[it.ID] {
			t.Errorf("%s start = %d, want %d", it.ID, *it.Start, want[it.ID])
		}
	}
}

func TestItemsForDayNoWrapOnRegularDay(t *testing.T) {
	ev := sampleEvent()
	ev.Games = append(ev.Games, Game{ID: "early", TableID: "t1", DayID: "sat", Start: "07:00", Duration: 30})

	items, err := ev.ItemsForDay("sat")
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if it.ID == "early" && *it.Start != 420 {
			t.Errorf("early start = %d, want 420", *it.Start)
		}
	}

	w, _ := ev.Window("sat", 1)
	tl := timeline.LayoutTable(w, items)
	if tl.Hidden == 0 {
		t.Error("game before the window should be hidden")
	}
}
