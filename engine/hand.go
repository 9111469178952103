package engine

import (
	"fmt"
	"iter"
	"slices"
)

// Wind is a seat or round wind.
type Wind uint8

const (
	WindEast Wind = iota
	WindSouth
	WindWest
	WindNorth
)

var windNames = [...]string{"east", "south", "west", "north"}

// ParseWind decodes a raw wind value.
func ParseWind(raw uint8) (Wind, error) {
	if raw > uint8(WindNorth) {
		return WindEast, fmt.Errorf("%w: wind %d", ErrInvalidDiscriminant, raw)
	}
	return Wind(raw), nil
}

func (w Wind) String() string {
	if int(w) < len(windNames) {
		return windNames[w]
	}
	return fmt.Sprintf("Wind(%d)", uint8(w))
}

// InitialState is the deal snapshot a hand starts from. The zero value is
// the default: empty hands and walls, zero counters, east round.
type InitialState struct {
	EastHand  []Tile
	SouthHand []Tile
	WestHand  []Tile
	NorthHand []Tile
	DeadWall  []Tile
	LiveWall  []Tile

	RepeatCount          uint8
	HanbaCount           uint8
	UnclaimedRiichiCount uint8

	PrevailingWind Wind
}

// Clone returns a deep copy.
func (s InitialState) Clone() InitialState {
	c := s
	c.EastHand = slices.Clone(s.EastHand)
	c.SouthHand = slices.Clone(s.SouthHand)
	c.WestHand = slices.Clone(s.WestHand)
	c.NorthHand = slices.Clone(s.NorthHand)
	c.DeadWall = slices.Clone(s.DeadWall)
	c.LiveWall = slices.Clone(s.LiveWall)
	return c
}

// Equal compares every field. A nil and an empty tile list are equal.
func (s InitialState) Equal(o InitialState) bool {
	return slices.Equal(s.EastHand, o.EastHand) &&
		slices.Equal(s.SouthHand, o.SouthHand) &&
		slices.Equal(s.WestHand, o.WestHand) &&
		slices.Equal(s.NorthHand, o.NorthHand) &&
		slices.Equal(s.DeadWall, o.DeadWall) &&
		slices.Equal(s.LiveWall, o.LiveWall) &&
		s.RepeatCount == o.RepeatCount &&
		s.HanbaCount == o.HanbaCount &&
		s.UnclaimedRiichiCount == o.UnclaimedRiichiCount &&
		s.PrevailingWind == o.PrevailingWind
}

// Hands returns the four seat hands in east, south, west, north order.
func (s InitialState) Hands() [4][]Tile {
	return [4][]Tile{s.EastHand, s.SouthHand, s.WestHand, s.NorthHand}
}

// Hand is a deal plus the append-only log of its steps, one byte each.
// Steps are never removed or reordered once appended.
type Hand struct {
	initial InitialState
	steps   []byte
}

// NewHand returns a hand with a zero initial state.
func NewHand() *Hand { return &Hand{} }

// NewHandFrom starts an empty log on init. The hand takes ownership of init.
func NewHandFrom(init InitialState) *Hand {
	return &Hand{initial: init}
}

// RestoreHand rebuilds a hand from a persisted log. steps is copied; its
// bytes are not decoded until read.
func RestoreHand(init InitialState, steps []byte) *Hand {
	return &Hand{initial: init, steps: slices.Clone(steps)}
}

// Draw logs a drawn tile.
func (h *Hand) Draw(t Tile) *Hand {
	h.steps = append(h.steps, uint8(t))
	return h
}

// Discard logs a discarded tile. At the byte level it is identical to Draw;
// the position in turn order tells the two apart.
func (h *Hand) Discard(t Tile) *Hand {
	h.steps = append(h.steps, uint8(t))
	return h
}

// Act logs an action with an optional tile. Pass TileNone for actions that
// carry no tile; a tile is only meaningful when a.HasTile().
func (h *Hand) Act(a Action, t Tile) *Hand {
	h.steps = append(h.steps, uint8(Encode(a, t)))
	return h
}

// InitialState returns the deal snapshot. The slices are shared with the
// hand and must not be modified.
func (h *Hand) InitialState() InitialState { return h.initial }

// Len returns the number of logged steps.
func (h *Hand) Len() int { return len(h.steps) }

// Bytes returns a copy of the raw step log.
func (h *Hand) Bytes() []byte { return slices.Clone(h.steps) }

// Equal reports whether both hands hold the same deal and step log.
func (h *Hand) Equal(o *Hand) bool {
	return h.initial.Equal(o.initial) && slices.Equal(h.steps, o.steps)
}

// Parts takes the deal and the step sequence out of h, leaving h empty.
// The sequence yields each logged byte in order without decoding it, and is
// single-pass: ranging over it again resumes where the last range stopped.
func (h *Hand) Parts() (InitialState, iter.Seq[TileOrAction]) {
	init, steps := h.initial, h.steps
	*h = Hand{}
	return init, func(yield func(TileOrAction) bool) {
		for len(steps) > 0 {
			s := TileOrAction(steps[0])
			steps = steps[1:]
			if !yield(s) {
				return
			}
		}
	}
}
