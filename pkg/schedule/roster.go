package schedule

import (
	"slices"
	"strings"

	"github.com/matzehuels/signupboard/pkg/errors"
)

// Full reports whether the game has reached its player limit.
// A MaxPlayers of zero means unlimited.
func (g *Game) Full() bool {
	return g.MaxPlayers > 0 && len(g.Players) >= g.MaxPlayers
}

// Joined reports whether player is on the roster.
func (g *Game) Joined(player string) bool {
	return slices.Contains(g.Players, player)
}

// Join adds player to the game's roster. Joining twice is a no-op.
func (g *Game) Join(player string) error {
	player = strings.TrimSpace(player)
	if player == "" {
		return errors.New(errors.ErrCodeInvalidInput, "player name cannot be empty")
	}
	if g.Deleted {
		return errors.New(errors.ErrCodeGameNotFound, "game %s has been removed", g.ID)
	}
	if g.Joined(player) {
		return nil
	}
	if g.Full() {
		return errors.New(errors.ErrCodeRosterFull, "game %s is full (%d players)", g.ID, g.MaxPlayers)
	}
	g.Players = append(g.Players, player)
	return nil
}

// Leave removes player from the game's roster.
func (g *Game) Leave(player string) error {
	player = strings.TrimSpace(player)
	i := slices.Index(g.Players, player)
	if i < 0 {
		return errors.New(errors.ErrCodeNotFound, "%q is not signed up for game %s", player, g.ID)
	}
	g.Players = slices.Delete(g.Players, i, i+1)
	return nil
}
