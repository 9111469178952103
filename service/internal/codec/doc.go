// Package codec persists hand records as CBOR.
//
// A Hand is stored as a two-key map:
//
//	i  initial state
//	a  raw step log (byte string), omitted when empty
//
// and an InitialState as:
//
//	e, s, w, n  seat hands (byte strings of tile codes)
//	d           dead wall
//	t           live wall
//	x           repeat count, omitted when zero
//	h           hanba count, omitted when zero
//	r           unclaimed riichi sticks, omitted when zero
//	p           prevailing wind
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so equal
// hands always produce identical bytes and a digest of the encoding can
// serve as a content address. Tiles and the wind are validated on decode;
// step bytes are kept raw and only interpreted when the log is replayed.
package codec
