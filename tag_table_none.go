// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

//go:build mpacktable_none

package mpack

// TableKind names the lookup-table implementation this build was compiled
// with, for diagnostics (see internal/mpackconf).
const TableKind = "none"

// classifyImpl implements the "none" lookup-table build option: a
// sequence of masked-prefix tests and range matches, no precomputed table.
// This is the smallest-footprint build (no table at all) at the cost of a
// chain of branches per call; pick it for size-constrained builds that
// still want classify() available without a table.
func classifyImpl(b byte) Kind {
	switch {
	case b < 0x80:
		return PosFixint
	case b&0xe0 == 0xe0:
		return NegFixint
	case b&0xe0 == 0xa0:
		return FixStr
	case b&0xf0 == 0x90:
		return FixArray
	case b&0xf0 == 0x80:
		return FixMap
	}
	switch b {
	case 0xc0:
		return Nil
	case 0xc1:
		return Unrecognised
	case 0xc2:
		return BoolFalse
	case 0xc3:
		return BoolTrue
	case 0xc4:
		return Bin8
	case 0xc5:
		return Bin16
	case 0xc6:
		return Bin32
	case 0xc7:
		return Ext8
	case 0xc8:
		return Ext16
	case 0xc9:
		return Ext32
	case 0xca:
		return Float32
	case 0xcb:
		return Float64
	case 0xcc:
		return Uint8
	case 0xcd:
		return Uint16
	case 0xce:
		return Uint32
	case 0xcf:
		return Uint64
	case 0xd0:
		return Int8
	case 0xd1:
		return Int16
	case 0xd2:
		return Int32
	case 0xd3:
		return Int64
	case 0xd4:
		return FixExt1
	case 0xd5:
		return FixExt2
	case 0xd6:
		return FixExt4
	case 0xd7:
		return FixExt8
	case 0xd8:
		return FixExt16
	case 0xd9:
		return Str8
	case 0xda:
		return Str16
	case 0xdb:
		return Str32
	case 0xdc:
		return Array16
	case 0xdd:
		return Array32
	case 0xde:
		return Map16
	case 0xdf:
		return Map32
	default:
		return Unrecognised
	}
}
