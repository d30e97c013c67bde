// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test fixtures for keyid packages.
//
// [Key] and [KeyOfLength] build key strings from a prefix padded with
// '0' characters, which is how every test in the module writes its
// inputs: Key("SC") is a syntactically valid cluster seed,
// KeyOfLength("SC", 52) is one that fails the length check.
//
// [UniqueKey] returns distinct valid keys for tests that need several
// values of the same kind, such as ordering and map-key tests. Use it
// instead of hand-editing padded literals.
//
// This package has no keyid-internal dependencies, so it can be
// imported from in-package tests without creating cycles.
package testutil
