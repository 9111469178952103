package engine

import (
	"fmt"
	"iter"
)

// Step is one decoded entry of a hand log.
type Step struct {
	Index  int
	Mode   Mode
	Action Action
	Tile   Tile
}

// IsTile reports whether the step was a bare draw or discard.
func (s Step) IsTile() bool { return s.Action == ActionNone }

func (s Step) String() string {
	switch {
	case s.IsTile():
		return s.Tile.String()
	case s.Tile != TileNone:
		return s.Action.String() + " " + s.Tile.String()
	}
	return s.Action.String()
}

// phase tracks where the log is in turn order, which is all a reader needs
// to pick the Mode of the next step.
type phase uint8

const (
	phaseDraw      phase = iota // next bare tile is a draw
	phaseHolding                // acting player holds an extra tile
	phaseDiscarded              // a discard is open to calls
	phaseEnded                  // win or abortive draw was declared
)

func (p phase) mode() Mode {
	if p == phaseDiscarded {
		return ModeCall
	}
	return ModeDeclare
}

// next advances p past a decoded step.
func (p phase) next(a Action) phase {
	if a == ActionNone {
		switch p {
		case phaseHolding:
			return phaseDiscarded
		case phaseEnded:
			return phaseEnded
		}
		return phaseHolding
	}

	switch a.Base() {
	case ActionCallChiiOrDeclareKan:
		if p == phaseDiscarded {
			return phaseHolding // chii: caller discards next
		}
		return phaseDraw // declared kan: replacement draw
	case ActionCallChiiWithRedFive, ActionCallPonByRight, ActionCallPonByRightWithRedFive:
		return phaseHolding
	case ActionDeclareRiichi:
		return phaseDiscarded // riichi names its discard
	case ActionCallKanByRight, ActionDeclareKita:
		return phaseDraw
	case ActionCallRonByRight, ActionDeclareTsumo, ActionDeclareMulligan:
		return phaseEnded
	}
	return p
}

// Replay decodes steps in order, choosing each step's Mode from the turn
// order implied by the steps before it: a tile-embedding action right after
// a discard is a call, anything else is a declaration. The first decode
// error is yielded with its index and ends the sequence.
//
// Replay assumes the log starts with the dealer's first draw.
func Replay(steps iter.Seq[TileOrAction]) iter.Seq2[Step, error] {
	return func(yield func(Step, error) bool) {
		p := phaseDraw
		i := 0
		for raw := range steps {
			mode := p.mode()
			a, t, err := raw.Decode(mode)
			if err != nil {
				yield(Step{Index: i, Mode: mode}, fmt.Errorf("step %d: %w", i, err))
				return
			}
			if !yield(Step{Index: i, Mode: mode, Action: a, Tile: t}, nil) {
				return
			}
			p = p.next(a)
			i++
		}
	}
}
