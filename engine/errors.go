package engine

import "errors"

// ErrInvalidDiscriminant reports a raw byte, or a masked field of one, that
// matches no Tile, Action, Player or Wind value. It is the only decode failure
// the engine produces; callers test for it with errors.Is.
var ErrInvalidDiscriminant = errors.New("invalid discriminant")
