// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import "fmt"

// A Kind identifies the logical family and width of a MessagePack tag
// byte. It is the discriminant of a Header.
type Kind int

const (
	// Unrecognised marks a tag byte this codec does not accept.
	Unrecognised Kind = iota

	Nil
	BoolFalse
	BoolTrue
	PosFixint
	NegFixint
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	FixStr
	Str8
	Str16
	Str32
	Bin8
	Bin16
	Bin32
	FixArray
	Array16
	Array32
	FixMap
	Map16
	Map32
	FixExt1
	FixExt2
	FixExt4
	FixExt8
	FixExt16
	Ext8
	Ext16
	Ext32

	// Raw16 and Raw32 are the legacy (pre-2013) spellings of Str16 and
	// Str32. They decode the identical wire bytes (0xda, 0xdb) and carry
	// the identical payload; classify only returns them when legacy raw
	// acceptance is enabled, so callers that care can distinguish a
	// stream produced by an old encoder from label alone. See
	// DESIGN.md's Open Question decision.
	Raw16
	Raw32
)

func (k Kind) String() string {
	switch k {
	case Unrecognised:
		return "unrecognised"
	case Nil:
		return "nil"
	case BoolFalse:
		return "false"
	case BoolTrue:
		return "true"
	case PosFixint:
		return "positive-fixint"
	case NegFixint:
		return "negative-fixint"
	case Uint8, Uint16, Uint32, Uint64:
		return "uint"
	case Int8, Int16, Int32, Int64:
		return "int"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case FixStr, Str8, Str16, Str32:
		return "str"
	case Bin8, Bin16, Bin32:
		return "bin"
	case FixArray, Array16, Array32:
		return "array"
	case FixMap, Map16, Map32:
		return "map"
	case FixExt1, FixExt2, FixExt4, FixExt8, FixExt16, Ext8, Ext16, Ext32:
		return "ext"
	case Raw16, Raw32:
		return "raw"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// PayloadKind reports whether a Kind's payload byte count is known purely
// from the tag (Known, with the count) or must be read from the header
// (Variable: str/bin/ext/array/map).
type PayloadKind int

const (
	// KnownPayload means the payload byte count is determined entirely by
	// the tag. The fixext kinds are KnownPayload but still carry a one-byte
	// ext type in the header.
	KnownPayload PayloadKind = iota
	// VariablePayload means the true size comes from the header's size
	// field, which itself is read from header-data bytes following the
	// tag.
	VariablePayload
)

// classify maps a tag byte to its Kind using whichever table
// implementation this build was compiled with (see tag_table_all.go,
// tag_table_small.go, tag_table_none.go). legacyRaw controls whether 0xda
// and 0xdb classify as Str16/Str32 (false, the default) or as the
// legacy-labeled Raw16/Raw32 (true).
func classify(b byte, legacyRaw bool) Kind {
	k := classifyImpl(b)
	if legacyRaw {
		if k == Str16 {
			return Raw16
		}
		if k == Str32 {
			return Raw32
		}
	}
	return k
}

// headerDataBytes returns the number of bytes following the tag byte that
// must be read to assemble the full Header for kind k: 0 for primitives
// whose value lives in the tag itself, 1/2/4 for str/bin length, 2/3/5 for
// ext (length then a 1-byte ext-type), and so on.
func headerDataBytes(k Kind) int {
	switch k {
	case Unrecognised, Nil, BoolFalse, BoolTrue, PosFixint, NegFixint,
		FixStr, FixArray, FixMap:
		return 0
	case Uint8, Int8, Uint16, Int16, Uint32, Int32, Float32, Uint64, Int64, Float64:
		// The payload byte count for these kinds is wholly determined by
		// the tag; no additional bytes are needed to fill in the header
		// itself. The 1/2/4/8 bytes that follow are payload, read during
		// scalar conversion, not header decode.
		return 0
	case Str8, Bin8:
		return 1
	case Str16, Bin16, Array16, Map16, Raw16:
		return 2
	case Str32, Bin32, Array32, Map32, Raw32:
		return 4
	case FixExt1, FixExt2, FixExt4, FixExt8, FixExt16:
		// The 1/2/4/8/16 data bytes are payload, read during AsRaw/
		// RawReader, not header decode; only the ext-type byte precedes
		// them.
		return 1
	case Ext8:
		return 1 + 1
	case Ext16:
		return 1 + 2
	case Ext32:
		return 1 + 4
	default:
		return 0
	}
}

// payloadKind reports whether kind k's payload size is wholly determined by
// the tag (and, for fixed-width scalars, returns that count) or must be
// read from the header.
func payloadKind(k Kind) (PayloadKind, int) {
	switch k {
	case Nil, BoolFalse, BoolTrue, PosFixint, NegFixint:
		return KnownPayload, 0
	case Uint8, Int8:
		return KnownPayload, 1
	case Uint16, Int16:
		return KnownPayload, 2
	case Uint32, Int32, Float32:
		return KnownPayload, 4
	case Uint64, Int64, Float64:
		return KnownPayload, 8
	case FixExt1:
		return KnownPayload, 1
	case FixExt2:
		return KnownPayload, 2
	case FixExt4:
		return KnownPayload, 4
	case FixExt8:
		return KnownPayload, 8
	case FixExt16:
		return KnownPayload, 16
	default:
		// FixStr/Str*/Bin*/Ext*/Array*/Map*/Raw*: the true count comes
		// from the header's size field.
		return VariablePayload, 0
	}
}

// fetchHint returns headerDataBytes(k) plus the known payload byte count
// (0 for variable-payload kinds) — the minimum number of bytes a streamer
// should try to have buffered before decoding a value of this kind.
func fetchHint(k Kind) int {
	pk, n := payloadKind(k)
	if pk == KnownPayload {
		return headerDataBytes(k) + n
	}
	return headerDataBytes(k)
}

// isContainer reports whether k is an array or map family kind, for which
// Header.Size is an element/pair count rather than a byte length.
func isContainer(k Kind) bool {
	switch k {
	case FixArray, Array16, Array32, FixMap, Map16, Map32:
		return true
	default:
		return false
	}
}

// isMap reports whether k is a map family kind.
func isMap(k Kind) bool {
	switch k {
	case FixMap, Map16, Map32:
		return true
	default:
		return false
	}
}
