package engine

import "fmt"

// Player is a seat relative to the acting player. It only exists inside the
// low 2 bits of a player-embedding Action.
type Player uint8

const (
	PlayerRight    Player = 0b00 // next to act
	PlayerOpposite Player = 0b01
	PlayerLeft     Player = 0b10
)

const playerMask = 0b0000_0011

// ParsePlayer decodes a 2-bit seat. 0b11 is reserved and rejected.
func ParsePlayer(raw uint8) (Player, error) {
	if raw > uint8(PlayerLeft) {
		return 0, fmt.Errorf("%w: player %d", ErrInvalidDiscriminant, raw)
	}
	return Player(raw), nil
}

func (p Player) String() string {
	switch p {
	case PlayerRight:
		return "right"
	case PlayerOpposite:
		return "opposite"
	case PlayerLeft:
		return "left"
	}
	return fmt.Sprintf("Player(%d)", uint8(p))
}
