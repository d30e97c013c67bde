// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// keyid-check validates module, server and service IDs and cluster
// seeds.
//
// Argument mode validates each positional argument as one kind of key
// (--kind, default "module"):
//
//	keyid-check --kind server NAAAA...
//
// Document mode (--stdin) reads a JSON, JSONC or YAML document with
// any of the fields module_id, server_id, service_id and cluster_seed,
// and validates every field by decoding it into the matching ref type:
//
//	keyid-check --stdin --format cbor < keys.yaml
//
// Valid keys are written to stdout in the --format encoding (text,
// json, yaml, or cbor in diagnostic notation). Rejected keys are
// logged to stderr.
//
// Exit codes: 0 when every key is valid, 1 when at least one key was
// rejected, 2 for usage errors and unreadable input.
package main
