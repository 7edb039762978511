// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/creachadair/mpack"
)

func encodeFixture(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	_, err := mpack.EncodeMapHeader(&buf, 2)
	require.NoError(t, err)

	_, err = mpack.EncodeString(&buf, "name")
	require.NoError(t, err)
	_, err = mpack.EncodeString(&buf, "mpack")
	require.NoError(t, err)

	_, err = mpack.EncodeString(&buf, "values")
	require.NoError(t, err)
	_, err = mpack.EncodeArrayHeader(&buf, 3)
	require.NoError(t, err)
	_, err = mpack.EncodeMinimal(&buf, int64(1))
	require.NoError(t, err)
	_, err = mpack.EncodeMinimal(&buf, int64(-2))
	require.NoError(t, err)
	_, err = mpack.EncodeMinimal(&buf, true)
	require.NoError(t, err)

	return buf.Bytes()
}

func TestTranscodeAllIsIdempotentOnMinimalInput(t *testing.T) {
	in := encodeFixture(t)

	var out bytes.Buffer
	require.NoError(t, transcodeAll(bytes.NewReader(in), &out, false, nil))
	require.Equal(t, in, out.Bytes(), "re-encoding already-minimal input must reproduce it byte for byte")
}

func TestVerifyIdempotentAcceptsCleanDoc(t *testing.T) {
	in := encodeFixture(t)

	var out bytes.Buffer
	require.NoError(t, transcodeAll(bytes.NewReader(in), &out, false, nil))

	ok, err := verifyIdempotent(out.Bytes(), false)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRunRoundTripsStdinToStdout(t *testing.T) {
	in := encodeFixture(t)
	var out, errOut bytes.Buffer
	err := run(nil, bytes.NewReader(in), &out, &errOut)
	require.NoError(t, err)
	require.Equal(t, in, out.Bytes())
}

func TestRunRejectsUnrecognisedTag(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run(nil, bytes.NewReader([]byte{0xc1}), &out, &errOut)
	require.Error(t, err)
	require.Equal(t, 1, exitCode(err))
}

func TestRunVerifyFlagSucceeds(t *testing.T) {
	in := encodeFixture(t)
	var out, errOut bytes.Buffer
	err := run([]string{"-verify"}, bytes.NewReader(in), &out, &errOut)
	require.NoError(t, err)
	require.Equal(t, in, out.Bytes())
}

func TestRunTableMismatchFails(t *testing.T) {
	var out, errOut bytes.Buffer
	err := run([]string{"-table", "not-a-real-build"}, bytes.NewReader(nil), &out, &errOut)
	require.Error(t, err)
	require.Equal(t, 1, exitCode(err))
}
