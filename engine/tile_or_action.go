package engine

import "fmt"

// Mode tells the decoder how a tile-embedding action byte was produced. The
// byte alone does not carry it; the reader supplies it from turn order.
type Mode uint8

const (
	// ModeDeclare is a step taken from the acting player's own hand
	// (declared kan, riichi). Tag in the top 2 bits, tile in the low 6.
	ModeDeclare Mode = iota
	// ModeCall responds to another player's discard (chii). Tag in the top
	// 3 bits, tile in the low 5: honors cannot be chii'd, so 5 bits suffice.
	ModeCall
)

func (m Mode) String() string {
	if m == ModeCall {
		return "call"
	}
	return "declare"
}

const (
	tileTagMask = 0b1100_0000

	callTagMask  = 0b1110_0000
	callTileMask = 0b0001_1111

	declareTagMask  = 0b1100_0000
	declareTileMask = 0b0011_1111
)

// TileOrAction is one raw step of a hand log.
type TileOrAction uint8

// IsTile reports whether the step is a bare tile (draw or discard). Every
// tile has 00 as its top two bits and every action has a set bit there.
func (s TileOrAction) IsTile() bool { return uint8(s)&tileTagMask == 0 }

// IsAction is the complement of IsTile.
func (s TileOrAction) IsAction() bool { return !s.IsTile() }

// Decode resolves the step into an action and a tile. A bare tile yields
// ActionNone; an action without an embedded tile yields TileNone. mode only
// matters for tile-embedding actions.
func (s TileOrAction) Decode(mode Mode) (Action, Tile, error) {
	raw := uint8(s)
	if s.IsTile() {
		t, err := ParseTile(raw)
		if err != nil {
			return ActionNone, TileNone, err
		}
		return ActionNone, t, nil
	}

	if !HasTile(raw) {
		a, err := ParseAction(raw)
		if err != nil {
			return ActionNone, TileNone, err
		}
		return a, TileNone, nil
	}

	tagMask, tileMask := uint8(declareTagMask), uint8(declareTileMask)
	if mode == ModeCall {
		tagMask, tileMask = callTagMask, callTileMask
	}
	a, err := ParseAction(raw & tagMask)
	if err != nil {
		return ActionNone, TileNone, fmt.Errorf("%s step %#02x: %w", mode, raw, err)
	}
	t, err := ParseTile(raw & tileMask)
	if err != nil {
		return ActionNone, TileNone, fmt.Errorf("%s step %#02x: %w", mode, raw, err)
	}
	return a, t, nil
}

// Encode builds the step byte for an action with an optional tile. The tile
// is ORed into the low bits and must be TileNone unless a.HasTile().
func Encode(a Action, t Tile) TileOrAction {
	return TileOrAction(uint8(a) | uint8(t))
}
