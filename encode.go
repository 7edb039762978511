// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// EncodeNil writes the nil tag to w.
func EncodeNil(w io.Writer) (int, error) {
	var p Prefix
	nilPrefix(&p)
	return writePrefix(w, &p)
}

// EncodeBool writes the minimal bool tag to w.
func EncodeBool(w io.Writer, v bool) (int, error) {
	var p Prefix
	boolPrefix(&p, v)
	return writePrefix(w, &p)
}

// EncodeMinimal chooses the smallest valid tag for v and writes it (plus,
// for string/binary values, the payload) to w. Supported types are nil,
// bool, the built-in integer and float types, string, and []byte; any
// other type is reported as an error. Arrays and maps are structural and
// are not dispatched through EncodeMinimal — callers stream their
// elements individually via EncodeArrayHeader/EncodeMapHeader.
func EncodeMinimal(w io.Writer, v interface{}) (int, error) {
	switch t := v.(type) {
	case nil:
		return EncodeNil(w)
	case bool:
		return EncodeBool(w, t)
	case string:
		return EncodeString(w, t)
	case []byte:
		return EncodeBinary(w, t)
	case int:
		return encodeSignedMinimal(w, int64(t))
	case int8:
		return encodeSignedMinimal(w, int64(t))
	case int16:
		return encodeSignedMinimal(w, int64(t))
	case int32:
		return encodeSignedMinimal(w, int64(t))
	case int64:
		return encodeSignedMinimal(w, t)
	case uint:
		return encodeUnsignedMinimal(w, uint64(t))
	case uint8:
		return encodeUnsignedMinimal(w, uint64(t))
	case uint16:
		return encodeUnsignedMinimal(w, uint64(t))
	case uint32:
		return encodeUnsignedMinimal(w, uint64(t))
	case uint64:
		return encodeUnsignedMinimal(w, t)
	case float32:
		return encodeFloatMinimal(w, float64(t), true)
	case float64:
		return encodeFloatMinimal(w, t, false)
	default:
		return 0, errors.Errorf("mpack: type %T cannot be encoded", v)
	}
}

func encodeSignedMinimal(w io.Writer, v int64) (int, error) {
	var p Prefix
	intPrefix(&p, v)
	return writePrefix(w, &p)
}

func encodeUnsignedMinimal(w io.Writer, v uint64) (int, error) {
	var p Prefix
	uintPrefix(&p, v)
	return writePrefix(w, &p)
}

// encodeFloatMinimal implements §4.3's minimal float rule: emit float32
// only if v survives a round trip through a 4-byte IEEE-754 representation
// unchanged; a caller-supplied float32 always qualifies by construction,
// but a float64 is checked explicitly.
func encodeFloatMinimal(w io.Writer, v float64, wasFloat32 bool) (int, error) {
	var p Prefix
	if wasFloat32 || float64(float32(v)) == v {
		float32Prefix(&p, math.Float32bits(float32(v)))
	} else {
		float64Prefix(&p, math.Float64bits(v))
	}
	return writePrefix(w, &p)
}

// EncodeUint8/16/32/64 and EncodeInt8/16/32/64 emit the MessagePack tag
// that represents the named width exactly (typed-width mode, §4.3),
// regardless of the runtime value.
func EncodeUint8(w io.Writer, v uint8) (int, error)   { return encodeTypedUint(w, 8, uint64(v)) }
func EncodeUint16(w io.Writer, v uint16) (int, error) { return encodeTypedUint(w, 16, uint64(v)) }
func EncodeUint32(w io.Writer, v uint32) (int, error) { return encodeTypedUint(w, 32, uint64(v)) }
func EncodeUint64(w io.Writer, v uint64) (int, error) { return encodeTypedUint(w, 64, v) }

func EncodeInt8(w io.Writer, v int8) (int, error)   { return encodeTypedInt(w, 8, int64(v)) }
func EncodeInt16(w io.Writer, v int16) (int, error) { return encodeTypedInt(w, 16, int64(v)) }
func EncodeInt32(w io.Writer, v int32) (int, error) { return encodeTypedInt(w, 32, int64(v)) }
func EncodeInt64(w io.Writer, v int64) (int, error) { return encodeTypedInt(w, 64, v) }

func encodeTypedUint(w io.Writer, bits int, v uint64) (int, error) {
	var p Prefix
	typedUintPrefix(&p, bits, v)
	return writePrefix(w, &p)
}

func encodeTypedInt(w io.Writer, bits int, v int64) (int, error) {
	var p Prefix
	typedIntPrefix(&p, bits, v)
	return writePrefix(w, &p)
}

// EncodeFloat32 and EncodeFloat64 emit the tag for the named width
// exactly, regardless of whether the value would round-trip through the
// other width.
func EncodeFloat32(w io.Writer, v float32) (int, error) {
	var p Prefix
	float32Prefix(&p, math.Float32bits(v))
	return writePrefix(w, &p)
}

func EncodeFloat64(w io.Writer, v float64) (int, error) {
	var p Prefix
	float64Prefix(&p, math.Float64bits(v))
	return writePrefix(w, &p)
}

// EncodeString writes the minimal str header for s followed by its bytes.
func EncodeString(w io.Writer, s string) (int, error) {
	var p Prefix
	if err := strPrefix(&p, len(s)); err != nil {
		return 0, err
	}
	n, err := writePrefix(w, &p)
	if err != nil {
		return n, err
	}
	m, err := io.WriteString(w, s)
	return n + m, errors.Wrap(err, "writing string payload")
}

// EncodeBinary writes the minimal bin header for data followed by its
// bytes. There is no fix-bin form.
func EncodeBinary(w io.Writer, data []byte) (int, error) {
	var p Prefix
	if err := binPrefix(&p, len(data)); err != nil {
		return 0, err
	}
	n, err := writePrefix(w, &p)
	if err != nil {
		return n, err
	}
	m, err := w.Write(data)
	return n + m, errors.Wrap(err, "writing binary payload")
}

// EncodeExt writes the minimal ext header for data and extType followed by
// data. A fixext form is used when len(data) is 1, 2, 4, 8, or 16.
func EncodeExt(w io.Writer, extType int8, data []byte) (int, error) {
	var p Prefix
	if err := extPrefix(&p, len(data), extType); err != nil {
		return 0, err
	}
	n, err := writePrefix(w, &p)
	if err != nil {
		return n, err
	}
	m, err := w.Write(data)
	return n + m, errors.Wrap(err, "writing ext payload")
}

// EncodeArrayHeader writes the minimal array header for n elements. The
// caller is responsible for writing exactly n element values afterward.
func EncodeArrayHeader(w io.Writer, n int) (int, error) {
	var p Prefix
	if err := arrayHeaderPrefix(&p, n); err != nil {
		return 0, err
	}
	return writePrefix(w, &p)
}

// EncodeMapHeader writes the minimal map header for n pairs. The caller is
// responsible for writing exactly n key/value pairs afterward.
func EncodeMapHeader(w io.Writer, n int) (int, error) {
	var p Prefix
	if err := mapHeaderPrefix(&p, n); err != nil {
		return 0, err
	}
	return writePrefix(w, &p)
}

func writePrefix(w io.Writer, p *Prefix) (int, error) {
	n, err := w.Write(p.Bytes())
	return n, errors.Wrap(err, "writing mpack header")
}
