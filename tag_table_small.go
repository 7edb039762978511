// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

//go:build mpacktable_small

package mpack

// smallTable covers the non-fixed byte range 0xc0..0xdf (32 entries);
// every byte outside that range belongs to one of the five fixed families
// and is resolved by a mask check instead, keeping the table itself small.
// Built once at init from the same range data tag_table_all.go uses, so
// the two table variants cannot disagree (see DESIGN.md).
var smallTable [0x20]Kind

// TableKind names the lookup-table implementation this build was compiled
// with, for diagnostics (see internal/mpackconf).
const TableKind = "small"

func init() {
	for i := range smallTable {
		smallTable[i] = Unrecognised
	}
	for b, k := range nonFixedRanges() {
		smallTable[b-0xc0] = k
	}
}

// classifyImpl implements the "small" lookup-table build option.
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
	case b >= 0xc0 && b <= 0xdf:
		return smallTable[b-0xc0]
	default:
		return Unrecognised
	}
}
