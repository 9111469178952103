package engine

import (
	"errors"
	"testing"
)

type actionCategory uint8

const (
	categoryTileless actionCategory = iota
	categoryTile
	categoryPlayer
)

var allActions = []struct {
	action   Action
	category actionCategory
	player   Player
}{
	{ActionNone, categoryTileless, 0},
	{ActionCallChiiOrDeclareKan, categoryTile, 0},
	{ActionCallChiiWithRedFive, categoryTile, 0},
	{ActionDeclareRiichi, categoryTile, 0},
	{ActionCallKanByRight, categoryPlayer, PlayerRight},
	{ActionCallKanByOpposite, categoryPlayer, PlayerOpposite},
	{ActionCallKanByLeft, categoryPlayer, PlayerLeft},
	{ActionCallPonByRight, categoryPlayer, PlayerRight},
	{ActionCallPonByOpposite, categoryPlayer, PlayerOpposite},
	{ActionCallPonByLeft, categoryPlayer, PlayerLeft},
	{ActionCallPonByRightWithRedFive, categoryPlayer, PlayerRight},
	{ActionCallPonByOppositeWithRedFive, categoryPlayer, PlayerOpposite},
	{ActionCallPonByLeftWithRedFive, categoryPlayer, PlayerLeft},
	{ActionCallRonByRight, categoryPlayer, PlayerRight},
	{ActionCallRonByOpposite, categoryPlayer, PlayerOpposite},
	{ActionCallRonByLeft, categoryPlayer, PlayerLeft},
	{ActionDeclareKita, categoryTileless, 0},
	{ActionDeclareTsumo, categoryTileless, 0},
	{ActionDeclareMulligan, categoryTileless, 0},
}

// TestActionCategories verifies HasTile and HasPlayer partition the actions.
func TestActionCategories(t *testing.T) {
	for _, tt := range allActions {
		hasTile, hasPlayer := tt.action.HasTile(), tt.action.HasPlayer()
		if hasTile && hasPlayer {
			t.Errorf("%s: both HasTile and HasPlayer", tt.action)
		}
		if hasTile != (tt.category == categoryTile) {
			t.Errorf("%s.HasTile() = %v", tt.action, hasTile)
		}
		if hasPlayer != (tt.category == categoryPlayer) {
			t.Errorf("%s.HasPlayer() = %v", tt.action, hasPlayer)
		}
		if HasTile(uint8(tt.action)) != hasTile || HasPlayer(uint8(tt.action)) != hasPlayer {
			t.Errorf("%s: raw predicates disagree with methods", tt.action)
		}
		if uint8(tt.action)>>6 == 0 {
			t.Errorf("%s: top two bits are 00", tt.action)
		}
	}
}

// TestActionPlayer verifies the embedded seat of every player call.
func TestActionPlayer(t *testing.T) {
	for _, tt := range allActions {
		p, ok := tt.action.Player()
		if ok != (tt.category == categoryPlayer) {
			t.Errorf("%s.Player() ok = %v", tt.action, ok)
			continue
		}
		if !ok {
			continue
		}
		if p != tt.player {
			t.Errorf("%s.Player() = %s, want %s", tt.action, p, tt.player)
		}
		if got := tt.action.PlayerUnchecked(); got != tt.player {
			t.Errorf("%s.PlayerUnchecked() = %s, want %s", tt.action, got, tt.player)
		}
	}
}

// TestActionWithPlayer verifies every (call, seat) pair encodes and decodes.
func TestActionWithPlayer(t *testing.T) {
	bases := []Action{
		ActionCallKanByRight,
		ActionCallPonByRight,
		ActionCallPonByRightWithRedFive,
		ActionCallRonByRight,
	}
	for _, base := range bases {
		for _, p := range []Player{PlayerRight, PlayerOpposite, PlayerLeft} {
			a, err := base.WithPlayer(p)
			if err != nil {
				t.Fatalf("%s.WithPlayer(%s): %v", base, p, err)
			}
			parsed, err := ParseAction(uint8(a))
			if err != nil {
				t.Fatalf("ParseAction(%#08b): %v", uint8(a), err)
			}
			got, ok := parsed.Player()
			if !ok || got != p || parsed.Base() != base {
				t.Errorf("%s by %s decoded to (%s, %s, %v)", base, p, parsed.Base(), got, ok)
			}
		}
	}

	if _, err := ActionDeclareRiichi.WithPlayer(PlayerLeft); err == nil {
		t.Error("WithPlayer on riichi: expected error")
	}
	if _, err := ActionCallRonByLeft.WithPlayer(Player(0b11)); !errors.Is(err, ErrInvalidDiscriminant) {
		t.Errorf("WithPlayer(0b11): want ErrInvalidDiscriminant, got %v", err)
	}
}

// TestParseActionRejectsUnknown verifies bytes outside the table fail.
func TestParseActionRejectsUnknown(t *testing.T) {
	valid := make(map[uint8]bool)
	for _, tt := range allActions {
		valid[uint8(tt.action)] = true
	}
	for raw := 0; raw < 256; raw++ {
		_, err := ParseAction(uint8(raw))
		if valid[uint8(raw)] {
			if err != nil {
				t.Errorf("ParseAction(%#08b): unexpected error %v", raw, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidDiscriminant) {
			t.Errorf("ParseAction(%#08b): want ErrInvalidDiscriminant, got %v", raw, err)
		}
	}
}

// TestActionHasRedFive verifies which calls resolve a red five.
func TestActionHasRedFive(t *testing.T) {
	want := map[Action]bool{
		ActionCallChiiWithRedFive:          true,
		ActionCallPonByRightWithRedFive:    true,
		ActionCallPonByOppositeWithRedFive: true,
		ActionCallPonByLeftWithRedFive:     true,
	}
	for _, tt := range allActions {
		if got := tt.action.HasRedFive(); got != want[tt.action] {
			t.Errorf("%s.HasRedFive() = %v", tt.action, got)
		}
	}
}
