package codec

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/jason-s-yu/riichi/engine"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encOptions := cbor.CoreDetEncOptions()
	// Empty walls are written as empty byte strings, not null.
	encOptions.NilContainers = cbor.NilContainerAsEmpty
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		// Records are written by this package only; anything else in the
		// map is a corrupt or foreign record.
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

type handRecord struct {
	Initial initialRecord `cbor:"i"`
	Steps   []byte        `cbor:"a,omitempty"`
}

// Counters are omitted at zero, their default. The tile lists and the wind
// are always written and must be present on decode: a nil list or wind means
// the key was absent, since an empty byte string decodes to an empty slice.
type initialRecord struct {
	East  []byte `cbor:"e"`
	South []byte `cbor:"s"`
	West  []byte `cbor:"w"`
	North []byte `cbor:"n"`
	Dead  []byte `cbor:"d"`
	Live  []byte `cbor:"t"`

	Repeat          uint8 `cbor:"x,omitempty"`
	Hanba           uint8 `cbor:"h,omitempty"`
	UnclaimedRiichi uint8 `cbor:"r,omitempty"`

	PrevailingWind *uint8 `cbor:"p"`
}

// MarshalHand encodes h. The hand is not modified.
func MarshalHand(h *engine.Hand) ([]byte, error) {
	rec := handRecord{
		Initial: fromInitialState(h.InitialState()),
		Steps:   h.Bytes(),
	}
	data, err := encMode.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal hand: %w", err)
	}
	return data, nil
}

// UnmarshalHand decodes a hand record.
func UnmarshalHand(data []byte) (*engine.Hand, error) {
	var rec handRecord
	if err := decMode.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal hand: %w", err)
	}
	init, err := rec.Initial.toInitialState()
	if err != nil {
		return nil, fmt.Errorf("unmarshal hand: %w", err)
	}
	return engine.RestoreHand(init, rec.Steps), nil
}

// MarshalInitialState encodes a deal on its own, for deals still being built.
func MarshalInitialState(s engine.InitialState) ([]byte, error) {
	data, err := encMode.Marshal(fromInitialState(s))
	if err != nil {
		return nil, fmt.Errorf("marshal initial state: %w", err)
	}
	return data, nil
}

// UnmarshalInitialState decodes a deal written by MarshalInitialState.
func UnmarshalInitialState(data []byte) (engine.InitialState, error) {
	var rec initialRecord
	if err := decMode.Unmarshal(data, &rec); err != nil {
		return engine.InitialState{}, fmt.Errorf("unmarshal initial state: %w", err)
	}
	s, err := rec.toInitialState()
	if err != nil {
		return engine.InitialState{}, fmt.Errorf("unmarshal initial state: %w", err)
	}
	return s, nil
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

func fromInitialState(s engine.InitialState) initialRecord {
	wind := uint8(s.PrevailingWind)
	return initialRecord{
		East:            tileBytes(s.EastHand),
		South:           tileBytes(s.SouthHand),
		West:            tileBytes(s.WestHand),
		North:           tileBytes(s.NorthHand),
		Dead:            tileBytes(s.DeadWall),
		Live:            tileBytes(s.LiveWall),
		Repeat:          s.RepeatCount,
		Hanba:           s.HanbaCount,
		UnclaimedRiichi: s.UnclaimedRiichiCount,
		PrevailingWind:  &wind,
	}
}

func (r initialRecord) toInitialState() (engine.InitialState, error) {
	var s engine.InitialState
	fields := []struct {
		key string
		src []byte
		dst *[]engine.Tile
	}{
		{"e", r.East, &s.EastHand},
		{"s", r.South, &s.SouthHand},
		{"w", r.West, &s.WestHand},
		{"n", r.North, &s.NorthHand},
		{"d", r.Dead, &s.DeadWall},
		{"t", r.Live, &s.LiveWall},
	}
	for _, f := range fields {
		if f.src == nil {
			return engine.InitialState{}, fmt.Errorf("missing field %q", f.key)
		}
		tiles, err := parseTiles(f.src)
		if err != nil {
			return engine.InitialState{}, fmt.Errorf("field %q: %w", f.key, err)
		}
		*f.dst = tiles
	}

	if r.PrevailingWind == nil {
		return engine.InitialState{}, errors.New(`missing field "p"`)
	}
	wind, err := engine.ParseWind(*r.PrevailingWind)
	if err != nil {
		return engine.InitialState{}, fmt.Errorf("field \"p\": %w", err)
	}
	s.PrevailingWind = wind
	s.RepeatCount = r.Repeat
	s.HanbaCount = r.Hanba
	s.UnclaimedRiichiCount = r.UnclaimedRiichi
	return s, nil
}

func tileBytes(tiles []engine.Tile) []byte {
	if len(tiles) == 0 {
		return nil
	}
	out := make([]byte, len(tiles))
	for i, t := range tiles {
		out[i] = uint8(t)
	}
	return out
}

func parseTiles(raw []byte) ([]engine.Tile, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]engine.Tile, len(raw))
	for i, b := range raw {
		t, err := engine.ParseTile(b)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}
