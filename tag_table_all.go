// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

//go:build !mpacktable_small && !mpacktable_none

package mpack

// fullTable is a 256-entry direct map from byte to Kind, built once from
// nonFixedRanges plus the five fixed-family mask rules. This is the
// default, speed-oriented build: classify is a single array index with no
// branching.
var fullTable [256]Kind

// TableKind names the lookup-table implementation this build was compiled
// with, for diagnostics (see internal/mpackconf).
const TableKind = "all"

func init() {
	for b := 0; b < 0x80; b++ {
		fullTable[b] = PosFixint
	}
	for b := 0x80; b < 0x90; b++ {
		fullTable[b] = FixMap
	}
	for b := 0x90; b < 0xa0; b++ {
		fullTable[b] = FixArray
	}
	for b := 0xa0; b < 0xc0; b++ {
		fullTable[b] = FixStr
	}
	for b, k := range nonFixedRanges() {
		fullTable[b] = k
	}
	for b := 0xe0; b <= 0xff; b++ {
		fullTable[b] = NegFixint
	}
}

// classifyImpl implements the "all" lookup-table build option (the
// default): a single 256-entry array index.
func classifyImpl(b byte) Kind {
	return fullTable[b]
}
