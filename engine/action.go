package engine

import "fmt"

// Action is a non-tile step as a tagged byte. The top bits select the
// variant and the low bits optionally carry a Tile or a Player:
//
//	01x? ????  chii (x=1: a red five resolved from hand) or declared kan; tile in low bits
//	10?? ????  riichi; tile in low 6 bits
//	1110 10pp  kan called from player pp
//	1110 11pp  pon called from player pp
//	1111 01pp  pon called from player pp, with a red five
//	1111 10pp  ron on player pp
//	1111 11xx  tileless declarations (kita, tsumo, mulligan, none)
//
// No Action has 00 as its top two bits; that range belongs to bare tiles.
type Action uint8

const (
	// ActionNone is not a real step. It differs from TileNone so an
	// accidentally stored zero value still reads as a tile.
	ActionNone Action = 0b1111_1111

	// Called chii and declared kan never happen at the same point of a
	// hand, so they share a tag. Closed and converted kan are not told apart.
	ActionCallChiiOrDeclareKan Action = 0b0100_0000
	ActionCallChiiWithRedFive  Action = ActionCallChiiOrDeclareKan | chiiRedFiveFlag

	ActionDeclareRiichi Action = 0b1000_0000

	ActionCallKanByRight    Action = 0b1110_1000
	ActionCallKanByOpposite Action = 0b1110_1001
	ActionCallKanByLeft     Action = 0b1110_1010

	ActionCallPonByRight    Action = 0b1110_1100
	ActionCallPonByOpposite Action = 0b1110_1101
	ActionCallPonByLeft     Action = 0b1110_1110

	ActionCallPonByRightWithRedFive    Action = 0b1111_0100
	ActionCallPonByOppositeWithRedFive Action = 0b1111_0101
	ActionCallPonByLeftWithRedFive     Action = 0b1111_0110

	ActionCallRonByRight    Action = 0b1111_1000
	ActionCallRonByOpposite Action = 0b1111_1001
	ActionCallRonByLeft     Action = 0b1111_1010

	ActionDeclareKita     Action = 0b1111_1100
	ActionDeclareTsumo    Action = 0b1111_1101
	ActionDeclareMulligan Action = 0b1111_1110
)

const (
	// chiiRedFiveFlag separates the two chii tags.
	chiiRedFiveFlag = 0b0010_0000
	// declarationGroup is the upper 6 bits shared by the tileless declarations.
	declarationGroup = 0b11_1111
)

var actionNames = map[Action]string{
	ActionNone:                         "none",
	ActionCallChiiOrDeclareKan:         "chii-or-kan",
	ActionCallChiiWithRedFive:          "chii-red-five",
	ActionDeclareRiichi:                "riichi",
	ActionCallKanByRight:               "kan-right",
	ActionCallKanByOpposite:            "kan-opposite",
	ActionCallKanByLeft:                "kan-left",
	ActionCallPonByRight:               "pon-right",
	ActionCallPonByOpposite:            "pon-opposite",
	ActionCallPonByLeft:                "pon-left",
	ActionCallPonByRightWithRedFive:    "pon-red-five-right",
	ActionCallPonByOppositeWithRedFive: "pon-red-five-opposite",
	ActionCallPonByLeftWithRedFive:     "pon-red-five-left",
	ActionCallRonByRight:               "ron-right",
	ActionCallRonByOpposite:            "ron-opposite",
	ActionCallRonByLeft:                "ron-left",
	ActionDeclareKita:                  "kita",
	ActionDeclareTsumo:                 "tsumo",
	ActionDeclareMulligan:              "mulligan",
}

// ParseAction decodes a raw tag byte with any embedded tile already masked
// off. Bytes that are not an enumerated Action fail.
func ParseAction(raw uint8) (Action, error) {
	a := Action(raw)
	if _, ok := actionNames[a]; !ok {
		return ActionNone, fmt.Errorf("%w: action %#08b", ErrInvalidDiscriminant, raw)
	}
	return a, nil
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%#08b)", uint8(a))
}

// HasTile reports whether a raw action byte embeds a Tile in its low bits:
// its top two bits read as a number below 3.
func HasTile(raw uint8) bool {
	return raw>>6 < 0b11
}

// HasPlayer reports whether a raw action byte embeds a Player in its low two
// bits: the top bits are 11 and the upper six bits are not the tileless
// declaration group.
func HasPlayer(raw uint8) bool {
	return !HasTile(raw) && raw>>2 < declarationGroup
}

// HasTile reports whether a carries a tile.
func (a Action) HasTile() bool { return HasTile(uint8(a)) }

// HasPlayer reports whether a names another player.
func (a Action) HasPlayer() bool { return HasPlayer(uint8(a)) }

// PlayerUnchecked returns the low two bits as a Player without checking
// HasPlayer. The result is meaningless for actions without a player.
func (a Action) PlayerUnchecked() Player {
	return Player(uint8(a) & playerMask)
}

// Player returns the embedded seat, or false when a names no player.
func (a Action) Player() (Player, bool) {
	if !a.HasPlayer() {
		return 0, false
	}
	return a.PlayerUnchecked(), true
}

// Base clears the embedded player, mapping every call to its ...ByRight
// form. Actions without a player are returned unchanged.
func (a Action) Base() Action {
	if !a.HasPlayer() {
		return a
	}
	return a &^ playerMask
}

// WithPlayer returns the call of the same kind as a made on p.
func (a Action) WithPlayer(p Player) (Action, error) {
	if !a.HasPlayer() {
		return ActionNone, fmt.Errorf("action %s does not name a player", a)
	}
	if _, err := ParsePlayer(uint8(p)); err != nil {
		return ActionNone, err
	}
	return a.Base() | Action(p), nil
}

// HasRedFive reports whether the call additionally resolved a red five from
// the caller's hand.
func (a Action) HasRedFive() bool {
	switch a.Base() {
	case ActionCallChiiWithRedFive, ActionCallPonByRightWithRedFive:
		return true
	}
	return false
}
