package engine

import (
	"errors"
	"testing"
)

// TestDecodeBareTiles verifies every tile code decodes as a bare tile in
// either mode.
func TestDecodeBareTiles(t *testing.T) {
	for raw := 0; raw < NumTileCodes; raw++ {
		step := TileOrAction(raw)
		if !step.IsTile() || step.IsAction() {
			t.Fatalf("%d: not classified as a tile", raw)
		}
		for _, mode := range []Mode{ModeCall, ModeDeclare} {
			a, tile, err := step.Decode(mode)
			if err != nil {
				t.Fatalf("Decode(%d, %s): %v", raw, mode, err)
			}
			if a != ActionNone || uint8(tile) != uint8(raw) {
				t.Errorf("Decode(%d, %s) = (%s, %s)", raw, mode, a, tile)
			}
		}
	}
}

// TestDecodeCallRoundTrip verifies tile-embedding calls on every numbered
// tile survive encode then decode in call mode.
func TestDecodeCallRoundTrip(t *testing.T) {
	tags := []Action{ActionCallChiiOrDeclareKan, ActionCallChiiWithRedFive, ActionDeclareRiichi}
	for _, tag := range tags {
		for tile := PinOne; tile <= ManNine; tile++ {
			step := Encode(tag, tile)
			if !step.IsAction() {
				t.Fatalf("%s %s: classified as a tile", tag, tile)
			}
			a, got, err := step.Decode(ModeCall)
			if err != nil {
				t.Fatalf("Decode(%s %s): %v", tag, tile, err)
			}
			if a != tag || got != tile {
				t.Errorf("%s %s decoded to (%s, %s)", tag, tile, a, got)
			}
		}
	}
}

// TestDecodeDeclareRoundTrip verifies declared kan and riichi on every tile,
// honors included, survive encode then decode in declare mode.
func TestDecodeDeclareRoundTrip(t *testing.T) {
	for _, tag := range []Action{ActionCallChiiOrDeclareKan, ActionDeclareRiichi} {
		for tile := PinOne; tile <= MaxTile; tile++ {
			a, got, err := Encode(tag, tile).Decode(ModeDeclare)
			if err != nil {
				t.Fatalf("Decode(%s %s): %v", tag, tile, err)
			}
			if a != tag || got != tile {
				t.Errorf("%s %s decoded to (%s, %s)", tag, tile, a, got)
			}
		}
	}
}

// TestDecodeTilelessActions verifies actions without a tile decode whole and
// identically in both modes.
func TestDecodeTilelessActions(t *testing.T) {
	for _, tt := range allActions {
		if tt.category == categoryTile {
			continue
		}
		for _, mode := range []Mode{ModeCall, ModeDeclare} {
			a, tile, err := Encode(tt.action, TileNone).Decode(mode)
			if err != nil {
				t.Fatalf("Decode(%s, %s): %v", tt.action, mode, err)
			}
			if a != tt.action || tile != TileNone {
				t.Errorf("Decode(%s, %s) = (%s, %s)", tt.action, mode, a, tile)
			}
		}
	}
}

// TestDecodePonWithRedFiveByLeft covers a player-embedding call end to end.
func TestDecodePonWithRedFiveByLeft(t *testing.T) {
	step := TileOrAction(0b1111_0110)
	a, tile, err := step.Decode(ModeCall)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a != ActionCallPonByLeftWithRedFive {
		t.Errorf("action = %s, want %s", a, ActionCallPonByLeftWithRedFive)
	}
	if tile != TileNone {
		t.Errorf("tile = %s, want none", tile)
	}
	if p, ok := a.Player(); !ok || p != PlayerLeft {
		t.Errorf("player = (%s, %v), want left", p, ok)
	}
}

// TestDecodeWrongModeIsStructurallyValid documents that a red-five chii read
// in declare mode silently becomes a kan on a different tile.
func TestDecodeWrongModeIsStructurallyValid(t *testing.T) {
	step := Encode(ActionCallChiiWithRedFive, PinTwo)
	a, tile, err := step.Decode(ModeDeclare)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if a != ActionCallChiiOrDeclareKan || tile != HonorNorth {
		t.Errorf("decoded to (%s, %s), want (%s, %s)", a, tile, ActionCallChiiOrDeclareKan, HonorNorth)
	}
}

// TestDecodeInvalid verifies malformed bytes fail instead of defaulting.
func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  uint8
		mode Mode
	}{
		{"bare tile above honors", 0b0010_0110, ModeDeclare},
		{"bare tile 63", 0b0011_1111, ModeCall},
		{"declared kan tile 63", 0b0111_1111, ModeDeclare},
		{"riichi tile 38", 0b1010_0110, ModeDeclare},
		{"call tag 101", 0b1010_0001, ModeCall},
		{"unassigned 11 byte", 0b1100_0000, ModeDeclare},
		{"kan player 11", 0b1110_1011, ModeCall},
		{"ron player 11", 0b1111_1011, ModeDeclare},
	}
	for _, tt := range tests {
		a, tile, err := TileOrAction(tt.raw).Decode(tt.mode)
		if !errors.Is(err, ErrInvalidDiscriminant) {
			t.Errorf("%s: want ErrInvalidDiscriminant, got (%s, %s, %v)", tt.name, a, tile, err)
		}
	}
}
