package engine

import (
	"errors"
	"testing"
)

// TestParsePlayer verifies the three seats and the reserved 0b11 value.
func TestParsePlayer(t *testing.T) {
	for _, want := range []Player{PlayerRight, PlayerOpposite, PlayerLeft} {
		got, err := ParsePlayer(uint8(want))
		if err != nil || got != want {
			t.Errorf("ParsePlayer(%d) = (%s, %v), want %s", uint8(want), got, err, want)
		}
	}
	if _, err := ParsePlayer(0b11); !errors.Is(err, ErrInvalidDiscriminant) {
		t.Errorf("ParsePlayer(0b11): want ErrInvalidDiscriminant, got %v", err)
	}
}
