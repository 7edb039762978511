// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUintPrefixMinimalWidth(t *testing.T) {
	tests := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0xcc, 0x80}},
		{0xff, []byte{0xcc, 0xff}},
		{0x100, []byte{0xcd, 0x01, 0x00}},
		{0xffff, []byte{0xcd, 0xff, 0xff}},
		{0x10000, []byte{0xce, 0x00, 0x01, 0x00, 0x00}},
		{0xffffffff, []byte{0xce, 0xff, 0xff, 0xff, 0xff}},
		{0x100000000, []byte{0xcf, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}},
	}
	for _, tc := range tests {
		var p Prefix
		uintPrefix(&p, tc.v)
		require.Equalf(t, tc.want, p.Bytes(), "uintPrefix(%d)", tc.v)
	}
}

func TestIntPrefixMinimalWidth(t *testing.T) {
	tests := []struct {
		v    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{-1, []byte{0xff}},
		{-32, []byte{0xe0}},
		{-33, []byte{0xd0, 0xdf}},
		{-128, []byte{0xd0, 0x80}},
		{-129, []byte{0xd1, 0xff, 0x7f}},
		{-32768, []byte{0xd1, 0x80, 0x00}},
		{-32769, []byte{0xd2, 0xff, 0xff, 0x7f, 0xff}},
	}
	for _, tc := range tests {
		var p Prefix
		intPrefix(&p, tc.v)
		require.Equalf(t, tc.want, p.Bytes(), "intPrefix(%d)", tc.v)
	}
}

func TestStrPrefixWidths(t *testing.T) {
	var p Prefix
	require.NoError(t, strPrefix(&p, 0))
	require.Equal(t, []byte{0xa0}, p.Bytes())

	require.NoError(t, strPrefix(&p, 31))
	require.Equal(t, []byte{0xbf}, p.Bytes())

	require.NoError(t, strPrefix(&p, 32))
	require.Equal(t, []byte{0xd9, 32}, p.Bytes())

	require.NoError(t, strPrefix(&p, 0x10000))
	require.Equal(t, []byte{0xdb, 0x00, 0x01, 0x00, 0x00}, p.Bytes())
}

func TestBinPrefixNoFixForm(t *testing.T) {
	var p Prefix
	require.NoError(t, binPrefix(&p, 0))
	require.Equal(t, []byte{0xc4, 0x00}, p.Bytes())
}

func TestContainerPrefixWidths(t *testing.T) {
	var p Prefix
	require.NoError(t, arrayHeaderPrefix(&p, 0))
	require.Equal(t, []byte{0x90}, p.Bytes())

	require.NoError(t, arrayHeaderPrefix(&p, 16))
	require.Equal(t, []byte{0xdc, 0x00, 0x10}, p.Bytes())

	require.NoError(t, mapHeaderPrefix(&p, 15))
	require.Equal(t, []byte{0x8f}, p.Bytes())

	require.NoError(t, mapHeaderPrefix(&p, 0x10000))
	require.Equal(t, []byte{0xdf, 0x00, 0x01, 0x00, 0x00}, p.Bytes())
}

func TestExtPrefixFixextForms(t *testing.T) {
	for n, tag := range map[int]byte{1: 0xd4, 2: 0xd5, 4: 0xd6, 8: 0xd7, 16: 0xd8} {
		var p Prefix
		require.NoError(t, extPrefix(&p, n, 9))
		require.Equalf(t, []byte{tag, 9}, p.Bytes(), "extPrefix(n=%d)", n)
	}

	var p Prefix
	require.NoError(t, extPrefix(&p, 3, 1))
	require.Equal(t, []byte{0xc7, 3, 1}, p.Bytes())
}

func TestLengthOverflowRejected(t *testing.T) {
	var p Prefix
	require.ErrorIs(t, strPrefix(&p, -1), ErrValueTooLarge)
	require.ErrorIs(t, binPrefix(&p, -1), ErrValueTooLarge)
	require.ErrorIs(t, arrayHeaderPrefix(&p, -1), ErrValueTooLarge)
}
