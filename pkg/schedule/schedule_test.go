package schedule

import (
	"testing"

	"github.com/matzehuels/signupboard/pkg/errors"
)

func intPtr(v int) *int { return &v }

func sampleEvent() *Event {
	return &Event{
		ID:   "spring-con",
		Name: "Spring Con",
		Days: []Day{
			{ID: "sat", Label: "Saturday", Start: "09:00", End: "18:00"},
			{ID: "sun", Label: "Sunday", Start: "10:00", End: "16:00"},
		},
		Tables: []Table{
			{ID: "t1", Name: "Table 1"},
			{ID: "t2", Name: "Table 2"},
		},
		Games: []Game{
			{ID: "catan", Name: "Catan", TableID: "t1", DayID: "sat", Start: "09:00", Duration: 60, MaxPlayers: 4},
			{ID: "brass", Name: "Brass", TableID: "t1", DayID: "sat", Start: "09:30", Duration: 90},
			{ID: "azul", Name: "Azul", TableID: "t2", DayID: "sat", Start: "11:00", Duration: 30},
			{ID: "gone", Name: "Gone", TableID: "t2", DayID: "sat", Start: "12:00", Duration: 30, Deleted: true},
			{ID: "tbd", Name: "TBD", TableID: "t2", DayID: "sat", Duration: 45},
			{ID: "ark", Name: "Ark Nova", TableID: "t1", DayID: "sun", Start: "10:00", Duration: 150},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Event)
		code   errors.Code
	}{
		{"valid", func(*Event) {}, ""},
		{"empty event id", func(e *Event) { e.ID = "" }, errors.ErrCodeInvalidID},
		{"negative extension", func(e *Event) { e.ExtensionHours = intPtr(-1) }, errors.ErrCodeConfiguration},
		{"duplicate day", func(e *Event) { e.Days[1].ID = "sat" }, errors.ErrCodeInvalidInput},
		{"bad day clock", func(e *Event) { e.Days[0].Start = "9am" }, errors.ErrCodeInvalidClock},
		{"duplicate table", func(e *Event) { e.Tables[1].ID = "t1" }, errors.ErrCodeInvalidInput},
		{"table id with slash", func(e *Event) { e.Tables[0].ID = "a/b" }, errors.ErrCodeInvalidID},
		{"duplicate game", func(e *Event) { e.Games[1].ID = "catan" }, errors.ErrCodeInvalidInput},
		{"unknown day", func(e *Event) { e.Games[0].DayID = "mon" }, errors.ErrCodeInvalidInput},
		{"unknown table", func(e *Event) { e.Games[0].TableID = "t9" }, errors.ErrCodeInvalidInput},
		{"bad game clock", func(e *Event) { e.Games[0].Start = "25:99" }, errors.ErrCodeInvalidClock},
		// Inverted opening hours are a per-day rendering problem, not a
		// structural one.
		{"inverted day hours", func(e *Event) { e.Days[1].End = "08:00" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := sampleEvent()
			tt.modify(ev)
			err := ev.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLookups(t *testing.T) {
	ev := sampleEvent()

	if d, ok := ev.Day("sun"); !ok || d.Label != "Sunday" {
		t.Errorf("Day(sun) = %v, %v", d, ok)
	}
	if _, ok := ev.Day("mon"); ok {
		t.Error("Day(mon) found, want missing")
	}
	if tb, ok := ev.Table("t2"); !ok || tb.Name != "Table 2" {
		t.Errorf("Table(t2) = %v, %v", tb, ok)
	}
	g, ok := ev.Game("brass")
	if !ok {
		t.Fatal("Game(brass) not found")
	}
	g.Players = append(g.Players, "ann")
	if len(ev.Games[1].Players) != 1 {
		t.Error("Game() should return a pointer into the event")
	}

	got := ev.GamesFor("sat", "t2")
	if len(got) != 3 {
		t.Errorf("GamesFor(sat, t2) = %d games, want 3", len(got))
	}
}

func TestClone(t *testing.T) {
	ev := sampleEvent()
	ev.ExtensionHours = intPtr(2)
	ev.Games[0].Players = []string{"ann"}

	c := ev.Clone()
	*c.ExtensionHours = 5
	c.Days[0].Start = "08:00"
	c.Games[0].Players[0] = "bob"

	if *ev.ExtensionHours != 2 {
		t.Error("clone shares ExtensionHours")
	}
	if ev.Days[0].Start != "09:00" {
		t.Error("clone shares Days")
	}
	if ev.Games[0].Players[0] != "ann" {
		t.Error("clone shares Players")
	}
}

func TestAssignIDs(t *testing.T) {
	ev := &Event{
		Days:   []Day{{Start: "09:00", End: "17:00"}, {ID: "keep", Start: "09:00", End: "17:00"}},
		Tables: []Table{{Name: "Main"}},
	}
	ev.AssignIDs()

	if ev.ID == "" || ev.Days[0].ID == "" || ev.Tables[0].ID == "" {
		t.Fatalf("AssignIDs left empty ids: %+v", ev)
	}
	if ev.Days[1].ID != "keep" {
		t.Errorf("existing id overwritten: %q", ev.Days[1].ID)
	}
	if ev.Days[0].ID == ev.ID {
		t.Error("ids should be distinct")
	}
	if err := ev.Validate(); err != nil {
		t.Errorf("Validate() after AssignIDs = %v", err)
	}
}
