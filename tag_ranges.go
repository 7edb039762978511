// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

// nonFixedRanges returns the tag assignment for every byte in 0xc0..0xdf,
// the "non-fixed" range that doesn't belong to one of the five
// mask-matched fixed families (posfixint, negfixint, fixstr, fixarray,
// fixmap). It is the single generator tag_table_all.go and
// tag_table_small.go both build their tables from, per the requirement
// that the two table variants be produced by one function so they cannot
// disagree with each other or with classifyImpl's masked-prefix fallback.
func nonFixedRanges() map[byte]Kind {
	return map[byte]Kind{
		0xc0: Nil,
		0xc1: Unrecognised,
		0xc2: BoolFalse,
		0xc3: BoolTrue,
		0xc4: Bin8,
		0xc5: Bin16,
		0xc6: Bin32,
		0xc7: Ext8,
		0xc8: Ext16,
		0xc9: Ext32,
		0xca: Float32,
		0xcb: Float64,
		0xcc: Uint8,
		0xcd: Uint16,
		0xce: Uint32,
		0xcf: Uint64,
		0xd0: Int8,
		0xd1: Int16,
		0xd2: Int32,
		0xd3: Int64,
		0xd4: FixExt1,
		0xd5: FixExt2,
		0xd6: FixExt4,
		0xd7: FixExt8,
		0xd8: FixExt16,
		0xd9: Str8,
		0xda: Str16,
		0xdb: Str32,
		0xdc: Array16,
		0xdd: Array32,
		0xde: Map16,
		0xdf: Map32,
	}
}
