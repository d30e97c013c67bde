// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref provides strongly typed, immutable references for
// prefix-tagged keys: module, server and service IDs, and cluster
// seeds.
//
// Every key is a 56-character string whose leading character names its
// kind. Identifiers carry a single prefix character ('M' for modules,
// 'N' for servers, 'V' for services). Seeds carry two: 'S' followed by
// the kind character, so a cluster seed starts with "SC". Length is
// counted in Unicode code points, not bytes.
//
// The kind is fixed at compile time by a prefix type argument:
//
//	ModuleID    = ID[ModulePrefix]
//	ServerID    = ID[ServerPrefix]
//	ServiceID   = ID[ServicePrefix]
//	ClusterSeed = Seed[ClusterPrefix]
//
// All constructors validate their input and return a *[ParseError] on
// failure. The length check always runs before the prefix check, so a
// string of the wrong length is reported as [WrongLength] even when its
// prefix is also wrong. A string of the right length that is not valid
// UTF-8 is reported as [InvalidEncoding]: it could not survive a text
// round-trip. Once constructed, a ref is immutable and comparable with
// ==.
//
// The canonical serialization form is the plain string. JSON, YAML and
// CBOR marshaling go through encoding.TextMarshaler; an empty string
// decodes to the zero value (unset ref).
//
// The package performs no I/O and holds no mutable state, so every
// function is safe for concurrent use.
package ref
