// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import "encoding/binary"

// maxPrefixLen is the largest header byte sequence this codec ever emits:
// an ext8/16/32 header is 1 (tag) + up to 4 (length) + 1 (ext type) = 6
// bytes.
const maxPrefixLen = 6

// A Prefix is a stack-allocated, ≤6-byte header that a caller can copy out
// or write to a sink. It has no ownership and is trivially copyable; it
// exists so emitters can be called without forcing a heap allocation or an
// io.Writer.
type Prefix struct {
	buf [maxPrefixLen]byte
	n   int
}

// Bytes returns the emitted bytes. The returned slice aliases p; callers
// that need to retain it past p's lifetime must copy.
func (p *Prefix) Bytes() []byte { return p.buf[:p.n] }

func (p *Prefix) reset() { p.n = 0 }

func (p *Prefix) put(b ...byte) {
	p.n += copy(p.buf[p.n:], b)
}

// strPrefix fills p with the minimal str header for a payload of length n,
// per §4.3: ≤31 → fixstr, ≤0xff → str8, ≤0xffff → str16, else str32.
func strPrefix(p *Prefix, n int) error {
	p.reset()
	switch {
	case n < 0 || uint64(n) > maxBlobLen:
		return ErrValueTooLarge
	case n <= 31:
		p.put(0xa0 | byte(n))
	case n <= 0xff:
		p.put(0xd9, byte(n))
	case n <= 0xffff:
		p.put(0xda, byte(n>>8), byte(n))
	default:
		p.put(0xdb, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
	return nil
}

// binPrefix fills p with the minimal bin header for a payload of length n.
// There is no fix-bin form.
func binPrefix(p *Prefix, n int) error {
	p.reset()
	switch {
	case n < 0 || uint64(n) > maxBlobLen:
		return ErrValueTooLarge
	case n <= 0xff:
		p.put(0xc4, byte(n))
	case n <= 0xffff:
		p.put(0xc5, byte(n>>8), byte(n))
	default:
		p.put(0xc6, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
	return nil
}

// arrayHeaderPrefix fills p with the minimal array header for n elements.
func arrayHeaderPrefix(p *Prefix, n int) error {
	return containerPrefix(p, n, 0x90, 0xdc, 0xdd)
}

// mapHeaderPrefix fills p with the minimal map header for n pairs.
func mapHeaderPrefix(p *Prefix, n int) error {
	return containerPrefix(p, n, 0x80, 0xde, 0xdf)
}

func containerPrefix(p *Prefix, n int, fixBase, tag16, tag32 byte) error {
	p.reset()
	switch {
	case n < 0 || uint64(n) > maxBlobLen:
		return ErrValueTooLarge
	case n <= 15:
		p.put(fixBase | byte(n))
	case n <= 0xffff:
		p.put(tag16, byte(n>>8), byte(n))
	default:
		p.put(tag32, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
	return nil
}

// extPrefix fills p with the minimal ext header for a payload of length n
// and the given ext type: a fixext form when n is one of {1,2,4,8,16},
// else the smallest of ext8/16/32 whose length field fits.
func extPrefix(p *Prefix, n int, extType int8) error {
	p.reset()
	if n < 0 || uint64(n) > maxBlobLen {
		return ErrValueTooLarge
	}
	switch n {
	case 1:
		p.put(0xd4, byte(extType))
		return nil
	case 2:
		p.put(0xd5, byte(extType))
		return nil
	case 4:
		p.put(0xd6, byte(extType))
		return nil
	case 8:
		p.put(0xd7, byte(extType))
		return nil
	case 16:
		p.put(0xd8, byte(extType))
		return nil
	}
	switch {
	case n <= 0xff:
		p.put(0xc7, byte(n), byte(extType))
	case n <= 0xffff:
		p.put(0xc8, byte(n>>8), byte(n), byte(extType))
	default:
		p.put(0xc9, byte(n>>24), byte(n>>16), byte(n>>8), byte(n), byte(extType))
	}
	return nil
}

// nilPrefix, boolPrefix emit the single-byte primitive tags.
func nilPrefix(p *Prefix) {
	p.reset()
	p.put(0xc0)
}

func boolPrefix(p *Prefix, v bool) {
	p.reset()
	if v {
		p.put(0xc3)
	} else {
		p.put(0xc2)
	}
}

// uintPrefix emits the minimal-width encoding for a non-negative value,
// preferring positive fixint over uint8 for 0..127 (I3).
func uintPrefix(p *Prefix, v uint64) {
	p.reset()
	switch {
	case v <= 0x7f:
		p.put(byte(v))
	case v <= 0xff:
		p.put(0xcc, byte(v))
	case v <= 0xffff:
		p.put(0xcd, byte(v>>8), byte(v))
	case v <= 0xffffffff:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v))
		p.put(0xce, b[0], b[1], b[2], b[3])
	default:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], v)
		p.put(0xcf, b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7])
	}
}

// intPrefix emits the minimal-width encoding for a signed value: positive
// fixint for 0..127, negative fixint for -1..-32, else the smallest of
// int8/16/32/64 whose range contains v (I3).
func intPrefix(p *Prefix, v int64) {
	p.reset()
	switch {
	case v >= 0:
		uintPrefix(p, uint64(v))
	case v >= -32:
		p.put(byte(v))
	case v >= -0x80:
		p.put(0xd0, byte(v))
	case v >= -0x8000:
		p.put(0xd1, byte(v>>8), byte(v))
	case v >= -0x80000000:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v))
		p.put(0xd2, b[0], b[1], b[2], b[3])
	default:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(v))
		p.put(0xd3, b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7])
	}
}

// typedUintPrefix emits the MessagePack tag that represents a T-width
// unsigned value exactly, irrespective of v's runtime value (typed-width
// mode, §4.3).
func typedUintPrefix(p *Prefix, bits int, v uint64) {
	p.reset()
	switch bits {
	case 8:
		p.put(0xcc, byte(v))
	case 16:
		p.put(0xcd, byte(v>>8), byte(v))
	case 32:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v))
		p.put(0xce, b[0], b[1], b[2], b[3])
	default:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], v)
		p.put(0xcf, b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7])
	}
}

// typedIntPrefix emits the MessagePack tag that represents a T-width
// signed value exactly, irrespective of v's runtime value.
func typedIntPrefix(p *Prefix, bits int, v int64) {
	p.reset()
	switch bits {
	case 8:
		p.put(0xd0, byte(v))
	case 16:
		p.put(0xd1, byte(v>>8), byte(v))
	case 32:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v))
		p.put(0xd2, b[0], b[1], b[2], b[3])
	default:
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(v))
		p.put(0xd3, b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7])
	}
}

// float32Prefix, float64Prefix emit big-endian IEEE-754 floats.
func float32Prefix(p *Prefix, bits uint32) {
	p.reset()
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], bits)
	p.put(0xca, b[0], b[1], b[2], b[3])
}

func float64Prefix(p *Prefix, bits uint64) {
	p.reset()
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], bits)
	p.put(0xcb, b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7])
}

// maxBlobLen is the largest container/blob length this codec will encode
// (2^32 - 1, per §4.4's value-too-large rule).
const maxBlobLen = 1<<32 - 1
