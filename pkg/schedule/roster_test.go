package schedule

import (
	"testing"

	"github.com/matzehuels/signupboard/pkg/errors"
)

func TestJoinLeave(t *testing.T) {
	g := &Game{ID: "catan", MaxPlayers: 2}

	if err := g.Join("ann"); err != nil {
		t.Fatalf("Join(ann) = %v", err)
	}
	if err := g.Join(" ann "); err != nil {
		t.Fatalf("second Join(ann) = %v", err)
	}
	if len(g.Players) != 1 {
		t.Errorf("Players = %v, want [ann]", g.Players)
	}
	if err := g.Join("bob"); err != nil {
		t.Fatalf("Join(bob) = %v", err)
	}
	if !g.Full() {
		t.Error("Full() = false with 2/2 players")
	}
	if err := g.Join("cat"); !errors.Is(err, errors.ErrCodeRosterFull) {
		t.Errorf("Join(cat) = %v, want ROSTER_FULL", err)
	}

	if err := g.Leave("ann"); err != nil {
		t.Fatalf("Leave(ann) = %v", err)
	}
	if g.Joined("ann") || !g.Joined("bob") {
		t.Errorf("Players = %v, want [bob]", g.Players)
	}
	if err := g.Leave("ann"); !errors.IsNotFound(err) {
		t.Errorf("Leave(ann) again = %v, want not found", err)
	}
}

func TestJoinValidation(t *testing.T) {
	g := &Game{ID: "x"}
	if err := g.Join(""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Join(empty) = %v, want INVALID_INPUT", err)
	}

	g.Deleted = true
	if err := g.Join("ann"); !errors.Is(err, errors.ErrCodeGameNotFound) {
		t.Errorf("Join on deleted game = %v, want GAME_NOT_FOUND", err)
	}

	unlimited := &Game{ID: "y"}
	for _, p := range []string{"a", "b", "c", "d", "e"} {
		if err := unlimited.Join(p); err != nil {
			t.Fatalf("Join(%s) = %v", p, err)
		}
	}
	if unlimited.Full() {
		t.Error("game without a limit should never be full")
	}
}
