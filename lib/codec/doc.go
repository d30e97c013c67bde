// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec encodes and decodes documents containing key refs in
// the three formats keyid tooling speaks: JSON, YAML and CBOR.
//
// Every ref type implements encoding.TextMarshaler, so in all three
// formats a ref is a plain text string and decoding a ref runs the ref
// parser. A document that decodes without error therefore holds only
// valid keys.
//
//	data, err := codec.Marshal(codec.FormatYAML, document)
//	err = codec.Unmarshal(codec.FormatJSON, data, &document)
//
// JSON input is read leniently: comments and trailing commas (JSONC)
// are stripped before decoding. JSON output is strict.
//
// [UnmarshalStrict] additionally rejects fields the target does not
// declare. [DecodeDocument] is the entry point for untrusted text
// documents: it detects JSON or YAML, decodes strictly, and retries
// a JSON syntax failure as YAML so flow mappings are accepted.
//
// CBOR uses Core Deterministic Encoding (RFC 8949 §4.2), so the same
// document always produces identical bytes. [Diagnose] renders CBOR in
// diagnostic notation for human inspection.
//
// # Struct Tag Rules
//
// Document types use `json` tags only. fxamacker/cbor reads `json`
// tags when `cbor` tags are absent, and YAML field names are given by
// `yaml` tags when they differ. Never use both `cbor` and `json` tags
// on the same field.
package codec
