// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeMinimalDispatch(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want []byte
	}{
		{"nil", nil, []byte{0xc0}},
		{"true", true, []byte{0xc3}},
		{"false", false, []byte{0xc2}},
		{"small int", int(1), []byte{0x01}},
		{"negative int", int(-1), []byte{0xff}},
		{"uint8 value", uint8(200), []byte{0xcc, 200}},
		{"string", "hi", append([]byte{0xa2}, "hi"...)},
		{"binary", []byte{1, 2, 3}, []byte{0xc4, 3, 1, 2, 3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := EncodeMinimal(&buf, tc.v)
			require.NoError(t, err)
			require.Equal(t, tc.want, buf.Bytes())
		})
	}
}

func TestEncodeMinimalUnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	_, err := EncodeMinimal(&buf, struct{}{})
	require.Error(t, err)
}

func TestEncodeFloatMinimalPrefersFloat32(t *testing.T) {
	var buf bytes.Buffer
	_, err := EncodeMinimal(&buf, float64(1.5))
	require.NoError(t, err)
	require.Equal(t, byte(0xca), buf.Bytes()[0]) // 1.5 round-trips through float32

	buf.Reset()
	_, err = EncodeMinimal(&buf, float64(0.1))
	require.NoError(t, err)
	require.Equal(t, byte(0xcb), buf.Bytes()[0]) // 0.1 does not
}

func TestEncodeFloat32AlwaysUsesFloat32Tag(t *testing.T) {
	var buf bytes.Buffer
	_, err := EncodeFloat32(&buf, 0.1)
	require.NoError(t, err)
	require.Equal(t, byte(0xca), buf.Bytes()[0])
}

func TestEncodeTypedWidthIgnoresValue(t *testing.T) {
	var buf bytes.Buffer
	_, err := EncodeUint32(&buf, 1)
	require.NoError(t, err)
	require.Equal(t, []byte{0xce, 0x00, 0x00, 0x00, 0x01}, buf.Bytes())
}

func TestEncodeArrayAndMapHeaders(t *testing.T) {
	var buf bytes.Buffer
	_, err := EncodeArrayHeader(&buf, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{0x93}, buf.Bytes())

	buf.Reset()
	_, err = EncodeMapHeader(&buf, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x82}, buf.Bytes())
}

func TestEncodeExtFixForm(t *testing.T) {
	var buf bytes.Buffer
	_, err := EncodeExt(&buf, 5, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, []byte{0xd6, 5, 1, 2, 3, 4}, buf.Bytes())
}

type erroringWriter struct{}

func (erroringWriter) Write([]byte) (int, error) { return 0, bytes.ErrTooLarge }

func TestEncodeStringPropagatesWriteError(t *testing.T) {
	_, err := EncodeString(erroringWriter{}, "abcdefgh")
	require.Error(t, err)
}
