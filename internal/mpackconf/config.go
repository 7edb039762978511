// Copyright (C) 2020 Michael J. Fromberger. All Rights Reserved.

// Package mpackconf exposes the codec's compile-time options (§6.4) as
// plain Go values, so tooling and tests can see what a given binary was
// built with. cmd/mpackcat uses them as the defaults of its -table and
// -accept-obsolete-raw flags; it has no -version flag.
package mpackconf

import "github.com/creachadair/mpack"

// TableKind is the lookup-table implementation (mpack.TableKind) this
// binary was compiled with: "none", "small", or "all".
const TableKind = mpack.TableKind

// AcceptObsoleteRaw is the default for §6.1's compatibility flag. The
// specification mandates it start disabled; cmd/mpackcat's
// -accept-obsolete-raw flag overrides this per invocation, it is not a
// build-time knob.
const AcceptObsoleteRaw = false
