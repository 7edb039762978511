// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import "github.com/pkg/errors"

// Sentinel errors for the taxonomy described in the package's design
// notes. Callers compare against these with errors.Is; internal code wraps
// them with errors.Wrap/Wrapf to add the failing operation's context without
// losing the sentinel identity.
var (
	// ErrBufferEmpty is returned by the buffer unpacker's Peek when the
	// unread view has no bytes left. The stream unpacker never surfaces
	// this to its own caller: it refills and retries internally.
	ErrBufferEmpty = errors.New("mpack: buffer empty")

	// ErrUnrecognisedTag is returned when the leading byte of a value is
	// not a tag this codec accepts (the reserved byte 0xc1). The legacy
	// raw16/raw32 bytes 0xda/0xdb are never rejected: they decode as
	// Str16/Str32, or as Raw16/Raw32 when legacy raw acceptance is enabled.
	ErrUnrecognisedTag = errors.New("mpack: unrecognised tag")

	// ErrInvalidValue is returned when a decoded header's kind cannot be
	// converted to the host type requested, or narrowing would lose
	// information.
	ErrInvalidValue = errors.New("mpack: invalid value for requested type")

	// ErrValueTooLarge is returned by the encoder when a container or
	// blob length exceeds 2^32-1.
	ErrValueTooLarge = errors.New("mpack: value too large to encode")

	// ErrEndOfStream is returned by the stream unpacker when its source
	// yields zero bytes before a full header or payload was assembled.
	ErrEndOfStream = errors.New("mpack: end of stream")
)
