// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import "encoding/binary"

// A Header is the fully-decoded record for one MessagePack value's tag:
// its Kind, and either the payload byte count (primitives, str, bin, ext)
// or the element/pair count (array, map). ExtType is only meaningful for
// the ext/fixext kinds.
//
// A Header is produced by the unpacker as each value is entered and is
// invalidated the moment the next value is entered; callers must not hold
// on to one past that point.
type Header struct {
	Kind    Kind
	Size    uint32
	ExtType int8

	tagByte byte // raw tag, used to recover the fixint value
}

// decodeHeader reads exactly headerDataBytes(kind) bytes from rest and
// returns the assembled Header. The caller guarantees
// len(rest) >= headerDataBytes(kind); decodeHeader is pure and performs no
// bounds-extending reads beyond that count.
func decodeHeader(kind Kind, tagByte byte, rest []byte) Header {
	h := Header{Kind: kind, tagByte: tagByte}
	switch kind {
	case Unrecognised, Nil, BoolFalse, BoolTrue,
		Uint8, Int8, Uint16, Int16, Uint32, Int32, Float32, Uint64, Int64, Float64:
		// Size for the known-width numeric kinds is implied by the kind
		// itself; fill it in without consuming any header bytes.
		_, n := payloadKind(kind)
		h.Size = uint32(n)
	case PosFixint:
		h.Size = 0
	case NegFixint:
		h.Size = 0
	case FixStr:
		h.Size = uint32(tagByte & 0x1f)
	case FixArray:
		h.Size = uint32(tagByte & 0x0f)
	case FixMap:
		h.Size = uint32(tagByte & 0x0f)
	case Str8, Bin8:
		h.Size = uint32(rest[0])
	case Str16, Bin16, Array16, Map16, Raw16:
		h.Size = uint32(binary.BigEndian.Uint16(rest[:2]))
	case Str32, Bin32, Array32, Map32, Raw32:
		h.Size = binary.BigEndian.Uint32(rest[:4])
	case FixExt1, FixExt2, FixExt4, FixExt8, FixExt16:
		h.ExtType = int8(rest[0])
		h.Size = uint32(fixExtLen(kind))
	case Ext8:
		h.Size = uint32(rest[0])
		h.ExtType = int8(rest[1])
	case Ext16:
		h.Size = uint32(binary.BigEndian.Uint16(rest[:2]))
		h.ExtType = int8(rest[2])
	case Ext32:
		h.Size = binary.BigEndian.Uint32(rest[:4])
		h.ExtType = int8(rest[4])
	}
	return h
}

func fixExtLen(k Kind) int {
	switch k {
	case FixExt1:
		return 1
	case FixExt2:
		return 2
	case FixExt4:
		return 4
	case FixExt8:
		return 8
	case FixExt16:
		return 16
	default:
		return 0
	}
}

// fixintValue returns the signed value encoded directly in a
// PosFixint/NegFixint tag byte.
func fixintValue(tagByte byte) int64 {
	return int64(int8(tagByte))
}
