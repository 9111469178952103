package engine

import "fmt"

// Suit classifies a Tile. Wind and Dragon are the honor suits.
type Suit uint8

const (
	SuitPin Suit = iota
	SuitSou
	SuitMan
	SuitWind
	SuitDragon
)

var suitNames = [...]string{"pin", "sou", "man", "wind", "dragon"}

func (s Suit) String() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return fmt.Sprintf("Suit(%d)", uint8(s))
}

// IsHonor reports whether s is Wind or Dragon.
func (s Suit) IsHonor() bool { return s == SuitWind || s == SuitDragon }

// Tile is one playing tile as a single-byte code.
//
// Layout: 0 is TileNone, then three 10-value numbered blocks (Pin, Sou, Man),
// each ranks one through nine with the red five placed between five and six,
// then a 7-value honor block. Every code fits in the low 6 bits so that a tile
// can ride in the low bits of an Action byte.
type Tile uint8

const (
	TileNone Tile = iota

	PinOne
	PinTwo
	PinThree
	PinFour
	PinFive
	PinRedFive
	PinSix
	PinSeven
	PinEight
	PinNine

	SouOne
	SouTwo
	SouThree
	SouFour
	SouFive
	SouRedFive
	SouSix
	SouSeven
	SouEight
	SouNine

	ManOne
	ManTwo
	ManThree
	ManFour
	ManFive
	ManRedFive
	ManSix
	ManSeven
	ManEight
	ManNine

	HonorEast
	HonorSouth
	HonorWest
	HonorNorth
	HonorRedDragon
	HonorWhiteDragon
	HonorGreenDragon
)

const (
	suitBlockSize = 10
	// MaxTile is the highest valid tile code.
	MaxTile = HonorGreenDragon
	// NumTileCodes counts every valid code including TileNone.
	NumTileCodes = int(MaxTile) + 1
)

var tileNames = [NumTileCodes]string{
	"none",
	"1p", "2p", "3p", "4p", "5p", "0p", "6p", "7p", "8p", "9p",
	"1s", "2s", "3s", "4s", "5s", "0s", "6s", "7s", "8s", "9s",
	"1m", "2m", "3m", "4m", "5m", "0m", "6m", "7m", "8m", "9m",
	"east", "south", "west", "north", "red", "white", "green",
}

// ParseTile decodes a raw tile code.
func ParseTile(raw uint8) (Tile, error) {
	if raw > uint8(MaxTile) {
		return TileNone, fmt.Errorf("%w: tile %d", ErrInvalidDiscriminant, raw)
	}
	return Tile(raw), nil
}

// String returns the short notation (1p..9p, 0p for the red five, winds and
// dragons by name).
func (t Tile) String() string {
	if t <= MaxTile {
		return tileNames[t]
	}
	return fmt.Sprintf("Tile(%d)", uint8(t))
}

// Suit returns the suit of t. ok is false for TileNone and out-of-range codes.
func (t Tile) Suit() (s Suit, ok bool) {
	if t == TileNone || t > MaxTile {
		return 0, false
	}
	switch block := (uint8(t) - 1) / suitBlockSize; block {
	case 0, 1, 2:
		return Suit(block), true
	}
	if t <= HonorNorth {
		return SuitWind, true
	}
	return SuitDragon, true
}

// IsHonor reports whether t is a wind or dragon.
func (t Tile) IsHonor() bool {
	s, ok := t.Suit()
	return ok && s.IsHonor()
}

// IsRedFive reports whether t is the red five of its suit.
func (t Tile) IsRedFive() bool {
	return t == PinRedFive || t == SouRedFive || t == ManRedFive
}

// isFive covers both the plain and the red five of every numbered suit.
func (t Tile) isFive() bool {
	switch t {
	case PinFive, PinRedFive, SouFive, SouRedFive, ManFive, ManRedFive:
		return true
	}
	return false
}

// Compare orders t against other for meld adjacency. ok is false when the
// two are not comparable: different suits, either is TileNone, or two
// distinct honors. A red five compares equal to the plain five of its suit.
// cmp is -1, 0 or +1.
func (t Tile) Compare(other Tile) (cmp int, ok bool) {
	ts, tok := t.Suit()
	os, ook := other.Suit()
	if !tok || !ook || ts != os {
		return 0, false
	}
	if t == other {
		return 0, true
	}
	if ts.IsHonor() {
		return 0, false
	}
	if t.isFive() && other.isFive() {
		return 0, true
	}
	if t < other {
		return -1, true
	}
	return 1, true
}
