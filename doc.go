// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

// Package mpack implements a MessagePack encoder and decoder at the
// granularity of a single value.
//
// The package is split into a format engine (tag classification, header
// decoding, minimal-width prefix emission) and two unpacker front ends: a
// buffer unpacker that consumes a caller-owned byte slice with no I/O, and a
// stream unpacker that drives an io.Reader through a small refill buffer.
// Arrays and maps are streamed element by element through cursors; the
// package never builds an in-memory document tree.
//
// mpack performs no allocation of its own. Decoded raw payloads are returned
// as slices into the caller's buffer (buffer mode), or as an io.Reader whose
// leading bytes are served from the unpacker's refill buffer (stream mode);
// callers that need an owned copy must copy explicitly.
package mpack
