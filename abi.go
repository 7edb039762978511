// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import "unsafe"

// An ABIUnpacker is an ABI-stable descriptor of an in-memory Unpacker's
// position, suitable for passing across an FFI boundary: a pointer to the
// first unread byte and a length. Field types are fixed-width and
// platform-independent (Len is always uint32, never int/uintptr) per
// §6.2's requirement that the public header declare stable field types.
type ABIUnpacker struct {
	Ptr *byte
	Len uint32
}

// NewABIUnpacker wraps b for an FFI caller. Ptr is nil when b is empty.
func NewABIUnpacker(b []byte) ABIUnpacker {
	if len(b) == 0 {
		return ABIUnpacker{}
	}
	return ABIUnpacker{Ptr: &b[0], Len: uint32(len(b))}
}

// Bytes reconstructs the Go slice this descriptor refers to. The caller
// must ensure the pointed-to memory is still valid and at least Len bytes
// long; this is inherently unsafe, as any FFI boundary crossing is.
func (a *ABIUnpacker) Bytes() []byte {
	if a.Ptr == nil || a.Len == 0 {
		return nil
	}
	return unsafe.Slice(a.Ptr, int(a.Len))
}

// SetAppend slides the unread window into a re-based buffer after the
// foreign caller appends more data: oldLen is the total length of the
// stream the caller had previously supplied (matching Unpacker.SetAppend's
// oldTotalLen), and next is the new, longer buffer starting at logical
// offset 0.
func (a *ABIUnpacker) SetAppend(oldLen int, next []byte) {
	consumed := oldLen - int(a.Len)
	rest := next[consumed:]
	if len(rest) == 0 {
		*a = ABIUnpacker{}
		return
	}
	*a = ABIUnpacker{Ptr: &rest[0], Len: uint32(len(rest))}
}

// ToUnpacker returns an Unpacker viewing the same bytes as a. Useful for a
// Go-side caller that received an ABIUnpacker from a foreign caller and
// wants to keep decoding with the ordinary API.
func (a *ABIUnpacker) ToUnpacker() *Unpacker {
	return NewUnpacker(a.Bytes())
}

// FromUnpacker captures u's current unread view as an ABIUnpacker.
func FromUnpacker(u *Unpacker) ABIUnpacker {
	return NewABIUnpacker(u.Rest())
}
