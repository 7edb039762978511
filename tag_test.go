// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import "testing"

// oracleClassify re-derives the expected Kind for byte b directly from the
// wire table in spec, independent of whichever tag_table_*.go build this
// test runs under. classifyImpl (whichever variant the active build tag
// selects) must agree with it for every byte (P1).
func oracleClassify(b byte) Kind {
	switch {
	case b < 0x80:
		return PosFixint
	case b >= 0xe0:
		return NegFixint
	case b >= 0xa0 && b < 0xc0:
		return FixStr
	case b >= 0x90 && b < 0xa0:
		return FixArray
	case b >= 0x80 && b < 0x90:
		return FixMap
	}
	if k, ok := nonFixedRanges()[b]; ok {
		return k
	}
	return Unrecognised
}

func TestClassifyTotality(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := byte(i)
		want := oracleClassify(b)
		got := classifyImpl(b)
		if got != want {
			t.Errorf("classifyImpl(0x%02x) = %v, want %v", b, got, want)
		}
	}
}

func TestClassifyReservedByte(t *testing.T) {
	if got := classify(0xc1, false); got != Unrecognised {
		t.Errorf("classify(0xc1) = %v, want Unrecognised", got)
	}
	if got := classify(0xc1, true); got != Unrecognised {
		t.Errorf("classify(0xc1, legacyRaw) = %v, want Unrecognised", got)
	}
}

func TestClassifyLegacyRaw(t *testing.T) {
	if got := classify(0xda, false); got != Str16 {
		t.Errorf("classify(0xda) = %v, want Str16", got)
	}
	if got := classify(0xda, true); got != Raw16 {
		t.Errorf("classify(0xda, legacyRaw) = %v, want Raw16", got)
	}
	if got := classify(0xdb, true); got != Raw32 {
		t.Errorf("classify(0xdb, legacyRaw) = %v, want Raw32", got)
	}
}

func TestFetchHint(t *testing.T) {
	tests := []struct {
		k    Kind
		want int
	}{
		{Nil, 0},
		{PosFixint, 0},
		{Uint8, 1},
		{Uint64, 8},
		{Float64, 8},
		{FixExt4, 1 + 4},
		{Str8, 1},   // variable payload: only the length byte is known up front
		{Array16, 2},
		{FixStr, 0},
	}
	for _, test := range tests {
		if got := fetchHint(test.k); got != test.want {
			t.Errorf("fetchHint(%v) = %d, want %d", test.k, got, test.want)
		}
	}
}
