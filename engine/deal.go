package engine

import "fmt"

const (
	// SetSize is the number of tiles in a standard four-player set.
	SetSize      = 136
	HandSize     = 13
	DeadWallSize = 14

	minDealTiles = 4*HandSize + DeadWallSize
)

// FullSet returns the standard 136-tile set: four copies of every kind, with
// one of the four fives of each numbered suit replaced by its red five.
func FullSet() []Tile {
	tiles := make([]Tile, 0, SetSize)
	for _, base := range [...]Tile{PinOne, SouOne, ManOne} {
		for copyIdx := 0; copyIdx < 4; copyIdx++ {
			for t := base; t < base+suitBlockSize; t++ {
				switch {
				case t.IsRedFive():
				case copyIdx == 3 && t.isFive():
					tiles = append(tiles, t+1) // the red five follows its plain five
				default:
					tiles = append(tiles, t)
				}
			}
		}
	}
	for copyIdx := 0; copyIdx < 4; copyIdx++ {
		for t := HonorEast; t <= HonorGreenDragon; t++ {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// Shuffle permutes tiles in place with a Fisher-Yates shuffle driven by an
// xorshift64 stream seeded with seed. The same seed always yields the same
// order.
func Shuffle(tiles []Tile, seed uint64) {
	rng := seed
	if rng == 0 {
		rng = 1 // xorshift can't start at 0
	}
	for i := len(tiles) - 1; i > 0; i-- {
		rng ^= rng << 13
		rng ^= rng >> 7
		rng ^= rng << 17
		j := int(rng % uint64(i+1))
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
}

// Deal splits tiles into an initial state. Seat hands are taken from the end
// of the slice (east first), then the dead wall; the rest is the live wall.
// Counters and wind are left at their defaults.
func Deal(tiles []Tile) (InitialState, error) {
	if len(tiles) < minDealTiles {
		return InitialState{}, fmt.Errorf("deal needs at least %d tiles, got %d", minDealTiles, len(tiles))
	}
	rest := tiles
	take := func(n int) []Tile {
		out := make([]Tile, n)
		copy(out, rest[len(rest)-n:])
		rest = rest[:len(rest)-n]
		return out
	}

	var s InitialState
	s.EastHand = take(HandSize)
	s.SouthHand = take(HandSize)
	s.WestHand = take(HandSize)
	s.NorthHand = take(HandSize)
	s.DeadWall = take(DeadWallSize)
	s.LiveWall = take(len(rest))
	return s, nil
}
