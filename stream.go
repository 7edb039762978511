// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package mpack

import (
	"io"

	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
)

// A Source is anything the stream unpacker can refill its window from. It
// is deliberately the standard io.Reader shape so any io.Reader —
// *bufio.Reader, *bytes.Reader, a network connection — can drive a Stream
// without an adapter.
type Source interface {
	Read(p []byte) (n int, err error)
}

// A Stream drives a Source through a small refill buffer, assembling
// headers and payloads across arbitrary byte boundaries without ever
// reading past what the current header declares. The refill buffer is
// supplied by the caller and must be at least 8 bytes; a larger buffer
// (one memory page is a reasonable default) reduces Read calls on the
// source but does not change behavior.
//
// A Stream is single-threaded and cooperative: no operation blocks on its
// own account, except whatever blocking the Source's Read performs, which
// is transparent to the Stream.
type Stream struct {
	buf        []byte
	start, len int
	bytesRead  int64
	legacyRaw  bool
	logger     log.Logger
}

// A StreamOption configures a Stream at construction.
type StreamOption func(*Stream)

// WithLogger attaches a structured logger that receives a line on each
// refill, compaction, and skip. A nil logger (the default) disables
// logging entirely; this option is optional precisely because the core
// holds no global state of its own.
func WithLogger(logger log.Logger) StreamOption {
	return func(s *Stream) { s.logger = logger }
}

// WithStreamLegacyRaw toggles the §6.1 compatibility flag for this Stream.
func WithStreamLegacyRaw(v bool) StreamOption {
	return func(s *Stream) { s.legacyRaw = v }
}

// NewStream constructs a Stream using buf as its refill buffer. buf must
// be at least 8 bytes long.
func NewStream(buf []byte, opts ...StreamOption) *Stream {
	s := &Stream{buf: buf}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BytesRead returns the total number of bytes this Stream has pulled from
// any source across its lifetime.
func (s *Stream) BytesRead() int64 { return s.bytesRead }

func (s *Stream) log(keyvals ...interface{}) {
	if s.logger != nil {
		s.logger.Log(keyvals...)
	}
}

func (s *Stream) window() []byte { return s.buf[s.start : s.start+s.len] }

func (s *Stream) consume(n int) {
	s.start += n
	s.len -= n
}

// ensure guarantees at least need bytes are available in the window,
// compacting and refilling from source as necessary. It returns
// ErrEndOfStream if source yields no bytes before need is satisfied, or a
// wrapped source error for any other Read failure.
func (s *Stream) ensure(source Source, need int) error {
	if need > len(s.buf) {
		return errors.Errorf("mpack: refill buffer too small for a %d-byte read (have %d)", need, len(s.buf))
	}
	for s.len < need {
		if s.start > 0 {
			copy(s.buf, s.window())
			s.log("event", "compact", "start", s.start, "len", s.len)
			s.start = 0
		}
		n, err := source.Read(s.buf[s.len:])
		if n > 0 {
			s.len += n
			s.bytesRead += int64(n)
			s.log("event", "refill", "bytes", n)
		}
		if n == 0 {
			if err == nil || err == io.EOF {
				return ErrEndOfStream
			}
			return errors.Wrap(err, "reading from source")
		}
		if err != nil && err != io.EOF {
			return errors.Wrap(err, "reading from source")
		}
	}
	return nil
}

// Next assembles and returns the next value's Header, refilling from
// source as needed. It returns ErrEndOfStream if source is exhausted
// before a tag byte arrives, and ErrUnrecognisedTag if the tag byte is not
// one this codec accepts.
func (s *Stream) Next(source Source) (Header, error) {
	if err := s.ensure(source, 1); err != nil {
		return Header{}, err
	}
	tag := s.buf[s.start]
	kind := classify(tag, s.legacyRaw)
	if kind == Unrecognised {
		return Header{}, ErrUnrecognisedTag
	}
	hdrLen := 1 + headerDataBytes(kind)
	if err := s.ensure(source, hdrLen); err != nil {
		return Header{}, err
	}
	h := decodeHeader(kind, tag, s.buf[s.start+1:s.start+hdrLen])
	s.consume(hdrLen)
	return h, nil
}

// viaBufferUnpacker ensures h's known payload bytes (if any) are in the
// window, hands a temporary Unpacker over the window to fn, and reconciles
// however many bytes fn consumed back into the Stream's position.
func viaBufferUnpacker[T any](s *Stream, source Source, h Header, fn func(*Unpacker) (T, error)) (T, error) {
	var zero T
	_, need := payloadKind(h.Kind)
	if err := s.ensure(source, need); err != nil {
		return zero, err
	}
	u := &Unpacker{rest: s.window(), legacyRaw: s.legacyRaw}
	v, err := fn(u)
	s.consume(s.len - len(u.rest))
	return v, err
}

// AsNil consumes a Nil header.
func (s *Stream) AsNil(h Header) error {
	if h.Kind != Nil {
		return ErrInvalidValue
	}
	return nil
}

// AsBool consumes a BoolFalse/BoolTrue header.
func (s *Stream) AsBool(h Header) (bool, error) {
	switch h.Kind {
	case BoolTrue:
		return true, nil
	case BoolFalse:
		return false, nil
	default:
		return false, ErrInvalidValue
	}
}

func (s *Stream) AsUint8(source Source, h Header) (uint8, error) {
	return viaBufferUnpacker(s, source, h, func(u *Unpacker) (uint8, error) { return u.AsUint8(h) })
}
func (s *Stream) AsUint16(source Source, h Header) (uint16, error) {
	return viaBufferUnpacker(s, source, h, func(u *Unpacker) (uint16, error) { return u.AsUint16(h) })
}
func (s *Stream) AsUint32(source Source, h Header) (uint32, error) {
	return viaBufferUnpacker(s, source, h, func(u *Unpacker) (uint32, error) { return u.AsUint32(h) })
}
func (s *Stream) AsUint64(source Source, h Header) (uint64, error) {
	return viaBufferUnpacker(s, source, h, func(u *Unpacker) (uint64, error) { return u.AsUint64(h) })
}
func (s *Stream) AsInt8(source Source, h Header) (int8, error) {
	return viaBufferUnpacker(s, source, h, func(u *Unpacker) (int8, error) { return u.AsInt8(h) })
}
func (s *Stream) AsInt16(source Source, h Header) (int16, error) {
	return viaBufferUnpacker(s, source, h, func(u *Unpacker) (int16, error) { return u.AsInt16(h) })
}
func (s *Stream) AsInt32(source Source, h Header) (int32, error) {
	return viaBufferUnpacker(s, source, h, func(u *Unpacker) (int32, error) { return u.AsInt32(h) })
}
func (s *Stream) AsInt64(source Source, h Header) (int64, error) {
	return viaBufferUnpacker(s, source, h, func(u *Unpacker) (int64, error) { return u.AsInt64(h) })
}
func (s *Stream) AsFloat32(source Source, h Header) (float32, error) {
	return viaBufferUnpacker(s, source, h, func(u *Unpacker) (float32, error) { return u.AsFloat32(h) })
}
func (s *Stream) AsFloat64(source Source, h Header) (float64, error) {
	return viaBufferUnpacker(s, source, h, func(u *Unpacker) (float64, error) { return u.AsFloat64(h) })
}

// rawReader is the sub-reader RawReader returns: its prefix is whatever
// payload bytes already sat in the Stream's window, and its tail is a
// length-limited adapter over source. It guarantees at most
// header.Size-prefix_bytes additional Reads from source.
//
// While a rawReader is alive, the Stream it was created from must not be
// advanced (Next/As*/OpenArray/OpenMap/Skip) — this is an exclusive
// borrow, not enforced at runtime, matching the core's precondition model.
type rawReader struct {
	s         *Stream
	source    Source
	prefix    []byte
	remaining int
}

func (r *rawReader) Read(p []byte) (int, error) {
	if len(r.prefix) > 0 {
		n := copy(p, r.prefix)
		r.prefix = r.prefix[n:]
		return n, nil
	}
	if r.remaining == 0 {
		return 0, io.EOF
	}
	if len(p) > r.remaining {
		p = p[:r.remaining]
	}
	n, err := r.source.Read(p)
	r.remaining -= n
	r.s.bytesRead += int64(n)
	if err == io.EOF && r.remaining > 0 {
		// The source closed before yielding the bytes this header
		// declared: that is a genuine end-of-stream, not a clean finish.
		return n, ErrEndOfStream
	}
	return n, err
}

// RawReader returns a reader over h's payload bytes. It accepts any
// non-container header: for str/bin/ext the payload is the data bytes, for
// fixed-width numerics it is their big-endian encoding, and for
// nil/bool/fixint it is empty. Arrays and maps are structural and return
// ErrInvalidValue.
func (s *Stream) RawReader(source Source, h Header) (io.Reader, error) {
	if isContainer(h.Kind) {
		return nil, ErrInvalidValue
	}
	total := int(h.Size)
	avail := s.len
	if avail > total {
		avail = total
	}
	prefix := s.window()[:avail]
	s.consume(avail)
	return &rawReader{s: s, source: source, prefix: prefix, remaining: total - avail}, nil
}

// OpenArray returns a cursor over h's elements, driven by this Stream.
func (s *Stream) OpenArray(h Header) (*StreamCursor, error) {
	if !isContainer(h.Kind) || isMap(h.Kind) {
		return nil, ErrInvalidValue
	}
	return &StreamCursor{s: s, declared: h.Size, isMap: false}, nil
}

// OpenMap returns a cursor over h's key/value pairs, driven by this Stream.
func (s *Stream) OpenMap(h Header) (*StreamCursor, error) {
	if !isMap(h.Kind) {
		return nil, ErrInvalidValue
	}
	return &StreamCursor{s: s, declared: h.Size, isMap: true}, nil
}

// A StreamCursor is the stream-mode counterpart to Cursor: it drives a
// Stream instead of a bare Unpacker, needing a Source on every call that
// may refill.
type StreamCursor struct {
	s        *Stream
	declared uint32
	consumed uint32
	isMap    bool
	onValue  bool
}

func (c *StreamCursor) IsMap() bool   { return c.isMap }
func (c *StreamCursor) Len() uint32   { return c.declared }
func (c *StreamCursor) Done() bool    { return c.consumed >= c.declared }

// Next delegates to the Stream's Next and advances the cursor's position,
// returning the end sentinel (a zero Header, io.EOF) once exhausted.
func (c *StreamCursor) Next(source Source) (Header, error) {
	if c.Done() {
		return Header{}, io.EOF
	}
	h, err := c.s.Next(source)
	if err != nil {
		return h, err
	}
	if c.isMap {
		if c.onValue {
			c.consumed++
		}
		c.onValue = !c.onValue
	} else {
		c.consumed++
	}
	return h, nil
}

// Skip drains h's value without producing it: primitives are drained
// byte-for-byte, and arrays/maps are walked recursively child by child.
// An incomplete stream surfaces as ErrEndOfStream.
func (s *Stream) Skip(source Source, h Header) error {
	s.log("event", "skip", "kind", h.Kind.String())
	switch {
	case isContainer(h.Kind):
		var cur *StreamCursor
		var err error
		if isMap(h.Kind) {
			cur, err = s.OpenMap(h)
		} else {
			cur, err = s.OpenArray(h)
		}
		if err != nil {
			return err
		}
		n := h.Size
		if isMap(h.Kind) {
			n *= 2
		}
		for i := uint32(0); i < n; i++ {
			ch, err := cur.Next(source)
			if err != nil {
				return err
			}
			if err := s.Skip(source, ch); err != nil {
				return err
			}
		}
		return nil
	default:
		// RawReader never errors for a non-container kind; for
		// Nil/Bool/fixint (Size == 0) it drains nothing.
		r, _ := s.RawReader(source, h)
		if _, err := io.Copy(io.Discard, r); err != nil {
			return errors.Wrap(err, "skipping payload")
		}
		return nil
	}
}
