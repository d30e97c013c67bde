// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"strconv"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// keyLength mirrors ref.Length. Duplicated so this package stays free
// of keyid imports.
const keyLength = 56

var uniqueCounter atomic.Uint64

// Key returns prefix padded with '0' to a full 56-character key.
//
//	testutil.Key("M")  // "M000...0" (56 chars)
//	testutil.Key("SC") // "SC00...0" (56 chars)
func Key(prefix string) string {
	return KeyOfLength(prefix, keyLength)
}

// KeyOfLength returns prefix padded with '0' to length code points.
// If prefix is already at least length code points long it is
// returned unchanged.
func KeyOfLength(prefix string, length int) string {
	padding := length - utf8.RuneCountInString(prefix)
	if padding <= 0 {
		return prefix
	}
	return prefix + strings.Repeat("0", padding)
}

// UniqueKey returns a valid-length key starting with prefix whose tail
// encodes a monotonically increasing counter, so successive calls
// return distinct keys that sort in call order.
//
//	a := testutil.UniqueKey("N") // "N000...01"
//	b := testutil.UniqueKey("N") // "N000...02"
func UniqueKey(prefix string) string {
	suffix := strconv.FormatUint(uniqueCounter.Add(1), 10)
	return KeyOfLength(prefix, keyLength-len(suffix)) + suffix
}
