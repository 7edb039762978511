// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

// Command mpackcat reads a MessagePack document from standard input,
// decodes every value, re-encodes each with the smallest valid tag, and
// writes the result to standard output. It is the round-trip
// interoperability gate described in SPEC_FULL.md §6.3: feeding its output
// back through a reference encoder/decoder must produce equal host
// values.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cespare/xxhash/v2"
	kitlog "github.com/go-kit/kit/log"
	"github.com/klauspost/compress/zstd"
	"github.com/peterbourgon/ff/v3"
	"github.com/pkg/errors"

	"github.com/creachadair/mpack"
	"github.com/creachadair/mpack/internal/mpackconf"
)

// slogLogger adapts *slog.Logger to go-kit's log.Logger interface so a
// Stream's diagnostic events (refill, compact, skip) flow through the same
// structured logger as the rest of the command.
type slogLogger struct{ l *slog.Logger }

func (s slogLogger) Log(keyvals ...interface{}) error {
	s.l.Debug("mpack", keyvals...)
	return nil
}

var _ kitlog.Logger = slogLogger{}

// refillBufSize is one memory page, the recommended default from §5.
const refillBufSize = 4096

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// errVerifyMismatch is returned by run when -verify detects that re-encoding
// the already-minimal output a second time produces different bytes.
var errVerifyMismatch = errors.New("mpackcat: verify: re-encoding is not idempotent")

func exitCode(err error) int {
	if errors.Is(err, errVerifyMismatch) {
		return 2
	}
	return 1
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flagset := flag.NewFlagSet("mpackcat", flag.ContinueOnError)
	var (
		flTable             = flagset.String("table", mpackconf.TableKind, "lookup-table implementation this binary expects (none, small, all)")
		flAcceptObsoleteRaw = flagset.Bool("accept-obsolete-raw", mpackconf.AcceptObsoleteRaw, "accept legacy raw16/raw32 labeling on decode")
		flVerify            = flagset.Bool("verify", false, "re-encode the output a second time and confirm it is byte-identical")
		flZstd              = flagset.Bool("z", false, "wrap stdin/stdout in a zstd stream")
	)
	if err := ff.Parse(flagset, args, ff.WithEnvVarPrefix("MPACK")); err != nil {
		return errors.Wrap(err, "parsing flags")
	}
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	if *flTable != mpackconf.TableKind {
		return errors.Errorf("mpackcat: built with table=%q, flag requested %q", mpackconf.TableKind, *flTable)
	}

	in := stdin
	out := stdout
	if *flZstd {
		zr, err := zstd.NewReader(stdin)
		if err != nil {
			return errors.Wrap(err, "opening zstd reader")
		}
		defer zr.Close()
		in = zr

		zw, err := zstd.NewWriter(stdout)
		if err != nil {
			return errors.Wrap(err, "opening zstd writer")
		}
		defer zw.Close()
		out = zw
	}

	bw := bufio.NewWriter(out)

	var tee bytes.Buffer
	var dest io.Writer = bw
	if *flVerify {
		dest = io.MultiWriter(bw, &tee)
	}

	if err := transcodeAll(in, dest, *flAcceptObsoleteRaw, logger); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing output")
	}

	if *flVerify {
		ok, err := verifyIdempotent(tee.Bytes(), *flAcceptObsoleteRaw)
		if err != nil {
			return errors.Wrap(err, "verify pass")
		}
		if !ok {
			return errVerifyMismatch
		}
	}
	return nil
}

// transcodeAll walks every top-level value on src and re-encodes each to
// dst with the smallest valid tag, until src signals end-of-stream.
func transcodeAll(src io.Reader, dst io.Writer, acceptObsoleteRaw bool, logger *slog.Logger) error {
	buf := make([]byte, refillBufSize)
	opts := []mpack.StreamOption{mpack.WithStreamLegacyRaw(acceptObsoleteRaw)}
	if logger != nil {
		opts = append(opts, mpack.WithLogger(slogLogger{logger}))
	}
	s := mpack.NewStream(buf, opts...)
	for {
		h, err := s.Next(src)
		if errors.Is(err, mpack.ErrEndOfStream) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "decoding value")
		}
		if err := transcodeValue(dst, s, src, h); err != nil {
			return errors.Wrap(err, "re-encoding value")
		}
	}
}

// transcodeValue decodes the value described by h (recursing into array
// and map children via cursors) and re-encodes it with EncodeMinimal.
func transcodeValue(dst io.Writer, s *mpack.Stream, src io.Reader, h mpack.Header) error {
	switch h.Kind {
	case mpack.Nil:
		_, err := mpack.EncodeNil(dst)
		return err
	case mpack.BoolTrue, mpack.BoolFalse:
		v, err := s.AsBool(h)
		if err != nil {
			return err
		}
		_, err = mpack.EncodeBool(dst, v)
		return err
	case mpack.PosFixint, mpack.Uint8, mpack.Uint16, mpack.Uint32, mpack.Uint64:
		v, err := s.AsUint64(src, h)
		if err != nil {
			return err
		}
		_, err = mpack.EncodeMinimal(dst, v)
		return err
	case mpack.NegFixint, mpack.Int8, mpack.Int16, mpack.Int32, mpack.Int64:
		v, err := s.AsInt64(src, h)
		if err != nil {
			return err
		}
		_, err = mpack.EncodeMinimal(dst, v)
		return err
	case mpack.Float32, mpack.Float64:
		v, err := s.AsFloat64(src, h)
		if err != nil {
			return err
		}
		_, err = mpack.EncodeMinimal(dst, v)
		return err
	case mpack.FixStr, mpack.Str8, mpack.Str16, mpack.Str32, mpack.Raw16, mpack.Raw32:
		b, err := readPayload(s, src, h)
		if err != nil {
			return err
		}
		_, err = mpack.EncodeString(dst, string(b))
		return err
	case mpack.Bin8, mpack.Bin16, mpack.Bin32:
		b, err := readPayload(s, src, h)
		if err != nil {
			return err
		}
		_, err = mpack.EncodeBinary(dst, b)
		return err
	case mpack.FixExt1, mpack.FixExt2, mpack.FixExt4, mpack.FixExt8, mpack.FixExt16,
		mpack.Ext8, mpack.Ext16, mpack.Ext32:
		b, err := readPayload(s, src, h)
		if err != nil {
			return err
		}
		_, err = mpack.EncodeExt(dst, h.ExtType, b)
		return err
	case mpack.FixArray, mpack.Array16, mpack.Array32:
		cur, err := s.OpenArray(h)
		if err != nil {
			return err
		}
		if _, err := mpack.EncodeArrayHeader(dst, int(h.Size)); err != nil {
			return err
		}
		for i := uint32(0); i < h.Size; i++ {
			ch, err := cur.Next(src)
			if err != nil {
				return err
			}
			if err := transcodeValue(dst, s, src, ch); err != nil {
				return err
			}
		}
		return nil
	case mpack.FixMap, mpack.Map16, mpack.Map32:
		cur, err := s.OpenMap(h)
		if err != nil {
			return err
		}
		if _, err := mpack.EncodeMapHeader(dst, int(h.Size)); err != nil {
			return err
		}
		for i := uint32(0); i < 2*h.Size; i++ {
			ch, err := cur.Next(src)
			if err != nil {
				return err
			}
			if err := transcodeValue(dst, s, src, ch); err != nil {
				return err
			}
		}
		return nil
	default:
		return mpack.ErrUnrecognisedTag
	}
}

func readPayload(s *mpack.Stream, src io.Reader, h mpack.Header) ([]byte, error) {
	r, err := s.RawReader(src, h)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// verifyIdempotent re-decodes and re-encodes data (which is already
// minimal, having just come out of transcodeAll) and reports whether the
// second pass is byte-identical to the first. The two passes are compared
// by their xxhash.Sum64 digests; both passes are held in memory in full.
func verifyIdempotent(data []byte, acceptObsoleteRaw bool) (bool, error) {
	first := xxhash.Sum64(data)

	var second bytes.Buffer
	if err := transcodeAll(bytes.NewReader(data), &second, acceptObsoleteRaw, nil); err != nil {
		return false, err
	}
	return first == xxhash.Sum64(second.Bytes()), nil
}
