// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import (
	"encoding/binary"
	"math"
)

// An Unpacker consumes MessagePack values from a caller-owned, contiguous
// byte slice with no I/O of its own (buffer mode). It is not safe for
// concurrent use; operations on a single Unpacker are strictly sequential.
type Unpacker struct {
	rest      []byte
	legacyRaw bool
}

// NewUnpacker wraps b for decoding. b is not copied; the caller must not
// mutate it while the Unpacker is in use.
func NewUnpacker(b []byte) *Unpacker {
	return &Unpacker{rest: b}
}

// SetLegacyRaw toggles acceptance of the legacy Raw16/Raw32 labeling for
// 0xda/0xdb (§6.1's compatibility flag, off by default).
func (u *Unpacker) SetLegacyRaw(v bool) { u.legacyRaw = v }

// Rest returns the unread tail of the Unpacker's view, for callers that
// need to inspect or re-slice position directly (e.g. the ABI shim).
func (u *Unpacker) Rest() []byte { return u.rest }

// Peek reports the Kind of the next value without consuming any bytes. It
// returns ErrBufferEmpty if there is nothing left to read, or
// ErrUnrecognisedTag if the next byte is not a tag this codec accepts.
func (u *Unpacker) Peek() (Kind, error) {
	if len(u.rest) == 0 {
		return Unrecognised, ErrBufferEmpty
	}
	k := classify(u.rest[0], u.legacyRaw)
	if k == Unrecognised {
		return Unrecognised, ErrUnrecognisedTag
	}
	return k, nil
}

// Advance consumes the tag byte and its header-data bytes for kind and
// returns the decoded Header. The caller must have obtained kind from a
// preceding Peek and must ensure len(u.Rest()) >= 1+headerDataBytes(kind);
// violating that precondition is a programmer error and panics, per the
// core's rule that data-driven failures return errors but precondition
// violations do not.
func (u *Unpacker) Advance(kind Kind) Header {
	need := 1 + headerDataBytes(kind)
	if len(u.rest) < need {
		panic("mpack: Advance called without enough buffered bytes")
	}
	tag := u.rest[0]
	h := decodeHeader(kind, tag, u.rest[1:need])
	u.rest = u.rest[need:]
	return h
}

// SetAppend swaps in a longer view of the same logical stream. oldTotalLen
// is the total number of bytes the Unpacker had been given up through the
// previous call (i.e. the length of the slice last passed to NewUnpacker
// or SetAppend); newView is the new, longer backing slice starting at
// logical offset 0. The unread offset is preserved without copying.
func (u *Unpacker) SetAppend(oldTotalLen int, newView []byte) {
	consumed := oldTotalLen - len(u.rest)
	u.rest = newView[consumed:]
}

// AsNil consumes a Nil header and reports whether it was well-formed.
func (u *Unpacker) AsNil(h Header) error {
	if h.Kind != Nil {
		return ErrInvalidValue
	}
	return nil
}

// AsBool consumes a BoolFalse/BoolTrue header and returns its value.
func (u *Unpacker) AsBool(h Header) (bool, error) {
	switch h.Kind {
	case BoolTrue:
		return true, nil
	case BoolFalse:
		return false, nil
	default:
		return false, ErrInvalidValue
	}
}

func (u *Unpacker) consume(n int) ([]byte, error) {
	if len(u.rest) < n {
		return nil, ErrBufferEmpty
	}
	b := u.rest[:n]
	u.rest = u.rest[n:]
	return b, nil
}

func wireIsUnsigned(k Kind) bool {
	switch k {
	case PosFixint, Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// readUnsignedWire decodes the on-wire value of an unsigned-family header,
// consuming any payload bytes it declares.
func (u *Unpacker) readUnsignedWire(h Header) (uint64, error) {
	switch h.Kind {
	case PosFixint:
		return uint64(fixintValue(h.tagByte)), nil
	case Uint8:
		b, err := u.consume(1)
		if err != nil {
			return 0, err
		}
		return uint64(b[0]), nil
	case Uint16:
		b, err := u.consume(2)
		if err != nil {
			return 0, err
		}
		return uint64(binary.BigEndian.Uint16(b)), nil
	case Uint32:
		b, err := u.consume(4)
		if err != nil {
			return 0, err
		}
		return uint64(binary.BigEndian.Uint32(b)), nil
	case Uint64:
		b, err := u.consume(8)
		if err != nil {
			return 0, err
		}
		return binary.BigEndian.Uint64(b), nil
	default:
		return 0, ErrInvalidValue
	}
}

// readSignedWire decodes the on-wire value of a signed-family header
// (including fixint, both polarities), consuming any payload bytes.
func (u *Unpacker) readSignedWire(h Header) (int64, error) {
	switch h.Kind {
	case PosFixint, NegFixint:
		return fixintValue(h.tagByte), nil
	case Int8:
		b, err := u.consume(1)
		if err != nil {
			return 0, err
		}
		return int64(int8(b[0])), nil
	case Int16:
		b, err := u.consume(2)
		if err != nil {
			return 0, err
		}
		return int64(int16(binary.BigEndian.Uint16(b))), nil
	case Int32:
		b, err := u.consume(4)
		if err != nil {
			return 0, err
		}
		return int64(int32(binary.BigEndian.Uint32(b))), nil
	case Int64:
		b, err := u.consume(8)
		if err != nil {
			return 0, err
		}
		return int64(binary.BigEndian.Uint64(b)), nil
	default:
		return 0, ErrInvalidValue
	}
}

func fitsUnsigned(v uint64, bits int) bool {
	if bits >= 64 {
		return true
	}
	return v <= (uint64(1)<<uint(bits))-1
}

func fitsSigned(v int64, bits int) bool {
	if bits >= 64 {
		return true
	}
	max := int64(1)<<uint(bits-1) - 1
	min := -(int64(1) << uint(bits-1))
	return v >= min && v <= max
}

// asUint is the shared implementation behind AsUint8/16/32/64: it accepts
// either wire polarity and rejects values that would narrow (I3/4.5).
func (u *Unpacker) asUint(h Header, bits int) (uint64, error) {
	if wireIsUnsigned(h.Kind) {
		v, err := u.readUnsignedWire(h)
		if err != nil {
			return 0, err
		}
		if !fitsUnsigned(v, bits) {
			return 0, ErrInvalidValue
		}
		return v, nil
	}
	v, err := u.readSignedWire(h)
	if err != nil {
		return 0, err
	}
	if v < 0 || !fitsUnsigned(uint64(v), bits) {
		return 0, ErrInvalidValue
	}
	return uint64(v), nil
}

// asInt is the shared implementation behind AsInt8/16/32/64.
func (u *Unpacker) asInt(h Header, bits int) (int64, error) {
	if !wireIsUnsigned(h.Kind) {
		v, err := u.readSignedWire(h)
		if err != nil {
			return 0, err
		}
		if !fitsSigned(v, bits) {
			return 0, ErrInvalidValue
		}
		return v, nil
	}
	v, err := u.readUnsignedWire(h)
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt64 || !fitsSigned(int64(v), bits) {
		return 0, ErrInvalidValue
	}
	return int64(v), nil
}

func (u *Unpacker) AsUint8(h Header) (uint8, error) {
	v, err := u.asUint(h, 8)
	return uint8(v), err
}
func (u *Unpacker) AsUint16(h Header) (uint16, error) {
	v, err := u.asUint(h, 16)
	return uint16(v), err
}
func (u *Unpacker) AsUint32(h Header) (uint32, error) {
	v, err := u.asUint(h, 32)
	return uint32(v), err
}
func (u *Unpacker) AsUint64(h Header) (uint64, error) { return u.asUint(h, 64) }

func (u *Unpacker) AsInt8(h Header) (int8, error) {
	v, err := u.asInt(h, 8)
	return int8(v), err
}
func (u *Unpacker) AsInt16(h Header) (int16, error) {
	v, err := u.asInt(h, 16)
	return int16(v), err
}
func (u *Unpacker) AsInt32(h Header) (int32, error) {
	v, err := u.asInt(h, 32)
	return int32(v), err
}
func (u *Unpacker) AsInt64(h Header) (int64, error) { return u.asInt(h, 64) }

// AsFloat32 consumes a float header and returns it narrowed to float32,
// truncating precision for a wire float64 value (no range check is
// meaningful for floats, unlike the integer narrowing rules).
func (u *Unpacker) AsFloat32(h Header) (float32, error) {
	v, err := u.readFloat(h)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}

// AsFloat64 consumes a float header and returns its value widened to
// float64 when the wire kind was float32.
func (u *Unpacker) AsFloat64(h Header) (float64, error) {
	return u.readFloat(h)
}

func (u *Unpacker) readFloat(h Header) (float64, error) {
	switch h.Kind {
	case Float32:
		b, err := u.consume(4)
		if err != nil {
			return 0, err
		}
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	case Float64:
		b, err := u.consume(8)
		if err != nil {
			return 0, err
		}
		return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
	default:
		return 0, ErrInvalidValue
	}
}

// AsIntTruncated converts a float header to an int64 by truncating toward
// zero, rejecting values that do not fit (§4.5).
func (u *Unpacker) AsIntTruncated(h Header) (int64, error) {
	v, err := u.readFloat(h)
	if err != nil {
		return 0, err
	}
	t := math.Trunc(v)
	// math.MaxInt64 is not exactly representable as a float64 (it rounds up
	// to 2^63), so comparing against it directly would let exactly 2^63
	// through and overflow int64(t); compare against the float64 bound
	// explicitly instead.
	if t < math.MinInt64 || t >= 9223372036854775808.0 || math.IsNaN(t) {
		return 0, ErrInvalidValue
	}
	return int64(t), nil
}

// AsRaw returns the payload slice for any non-array/non-map header: the
// string/binary/ext bytes, or the 1/2/4/8-byte encoding of a numeric
// value. Arrays and maps are structural and are rejected.
func (u *Unpacker) AsRaw(h Header) ([]byte, error) {
	if isContainer(h.Kind) {
		return nil, ErrInvalidValue
	}
	switch h.Kind {
	case Nil, BoolFalse, BoolTrue, PosFixint, NegFixint:
		return nil, nil
	default:
		return u.consume(int(h.Size))
	}
}

// OpenArray returns a cursor over an array header's elements.
func (u *Unpacker) OpenArray(h Header) (*Cursor, error) {
	if !isContainer(h.Kind) || isMap(h.Kind) {
		return nil, ErrInvalidValue
	}
	return &Cursor{u: u, declared: h.Size, isMap: false}, nil
}

// OpenMap returns a cursor over a map header's key/value pairs.
func (u *Unpacker) OpenMap(h Header) (*Cursor, error) {
	if !isMap(h.Kind) {
		return nil, ErrInvalidValue
	}
	return &Cursor{u: u, declared: h.Size, isMap: true}, nil
}

// A Cursor iterates the children of an opened array or map header. It
// shares the underlying Unpacker's position; only one cursor per Unpacker
// may be live at a time, and callers must fully exhaust (or explicitly
// skip) a cursor before using the Unpacker for anything else.
type Cursor struct {
	u        *Unpacker
	declared uint32
	consumed uint32
	isMap    bool
	onValue  bool // map cursors alternate key/value on each advance
}

// IsMap reports whether this cursor was opened over a map header.
func (c *Cursor) IsMap() bool { return c.isMap }

// Len returns the declared element count (array) or pair count (map).
func (c *Cursor) Len() uint32 { return c.declared }

// Done reports whether the cursor has yielded its declared count of
// children (pairs, for a map cursor).
func (c *Cursor) Done() bool { return c.consumed >= c.declared }

// Peek delegates to the underlying Unpacker's Peek, or reports the
// end-sentinel (Unrecognised, nil) once the cursor is exhausted.
func (c *Cursor) Peek() (Kind, error) {
	if c.Done() {
		return Unrecognised, nil
	}
	return c.u.Peek()
}

// Advance delegates to the underlying Unpacker's Advance and then
// increments the cursor's position; for a map cursor, the position only
// advances to the next pair on the second (value) call.
func (c *Cursor) Advance(kind Kind) Header {
	h := c.u.Advance(kind)
	if c.isMap {
		if c.onValue {
			c.consumed++
		}
		c.onValue = !c.onValue
	} else {
		c.consumed++
	}
	return h
}
