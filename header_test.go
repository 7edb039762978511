// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeHeaderFixFamilies(t *testing.T) {
	h := decodeHeader(FixStr, 0xa5, nil)
	require.EqualValues(t, 5, h.Size)

	h = decodeHeader(FixArray, 0x9a, nil)
	require.EqualValues(t, 0x0a, h.Size)

	h = decodeHeader(FixMap, 0x83, nil)
	require.EqualValues(t, 3, h.Size)
}

func TestDecodeHeaderLengthFields(t *testing.T) {
	h := decodeHeader(Str8, 0xd9, []byte{0x2a})
	require.EqualValues(t, 0x2a, h.Size)

	h = decodeHeader(Array16, 0xdc, []byte{0x01, 0x00})
	require.EqualValues(t, 0x0100, h.Size)

	h = decodeHeader(Map32, 0xdf, []byte{0x00, 0x01, 0x00, 0x00})
	require.EqualValues(t, 0x00010000, h.Size)
}

func TestDecodeHeaderExt(t *testing.T) {
	h := decodeHeader(FixExt4, 0xd6, []byte{0x07})
	require.EqualValues(t, 4, h.Size)
	require.EqualValues(t, 7, h.ExtType)

	h = decodeHeader(Ext16, 0xc8, []byte{0x00, 0x10, 0xfe})
	require.EqualValues(t, 0x10, h.Size)
	require.EqualValues(t, -2, h.ExtType)
}

func TestDecodeHeaderKnownWidthNumeric(t *testing.T) {
	// These kinds carry no header-data bytes; their Size is filled in
	// purely from the kind itself.
	for _, tc := range []struct {
		k    Kind
		want uint32
	}{
		{Uint8, 1}, {Int8, 1},
		{Uint16, 2}, {Int16, 2},
		{Uint32, 4}, {Int32, 4}, {Float32, 4},
		{Uint64, 8}, {Int64, 8}, {Float64, 8},
	} {
		h := decodeHeader(tc.k, 0x00, nil)
		require.EqualValuesf(t, tc.want, h.Size, "kind %v", tc.k)
	}
}

func TestFixintValue(t *testing.T) {
	require.EqualValues(t, 5, fixintValue(0x05))
	require.EqualValues(t, -1, fixintValue(0xff))
	require.EqualValues(t, -32, fixintValue(0xe0))
}
