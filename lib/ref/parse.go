// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Length is the required length of every ID and seed, in code points.
const Length = 56

// ParseErrorKind distinguishes the ways a key can fail to parse.
type ParseErrorKind int

const (
	// WrongKeyType means the length was correct but the leading
	// characters did not match the required prefix.
	WrongKeyType ParseErrorKind = iota + 1

	// WrongLength means the input was not exactly [Length] code points.
	WrongLength

	// InvalidEncoding means the input had the right code point count
	// but was not valid UTF-8. Such a string cannot survive a text
	// round-trip, so it is never accepted as a key.
	InvalidEncoding
)

func (k ParseErrorKind) String() string {
	switch k {
	case WrongKeyType:
		return "wrong_key_type"
	case WrongLength:
		return "wrong_length"
	case InvalidEncoding:
		return "invalid_encoding"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// Sentinel errors matched by [ParseError] through errors.Is.
var (
	ErrWrongKeyType    = errors.New("wrong key type")
	ErrWrongLength     = errors.New("wrong key length")
	ErrInvalidEncoding = errors.New("key is not valid UTF-8")
)

// ParseError describes why a string is not a valid ID or seed.
// Callers can use errors.As to extract the structured information:
//
//	var parseErr *ref.ParseError
//	if errors.As(err, &parseErr) && parseErr.Kind == ref.WrongKeyType {
//	    fmt.Println(parseErr.Found, parseErr.Expected)
//	}
type ParseError struct {
	Kind ParseErrorKind

	// Found and Expected are set for WrongKeyType. Found is the leading
	// substring of the input with as many code points as Expected.
	Found    string
	Expected string

	// Length is the actual code point count, set for WrongLength.
	Length int
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case WrongKeyType:
		return fmt.Sprintf("found the prefix %q, but expected %q", e.Found, e.Expected)
	case WrongLength:
		return fmt.Sprintf("found length %d, but should be %d chars", e.Length, Length)
	case InvalidEncoding:
		return "key is not valid UTF-8"
	default:
		return fmt.Sprintf("invalid key (%s)", e.Kind)
	}
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrWrongKeyType:
		return e.Kind == WrongKeyType
	case ErrWrongLength:
		return e.Kind == WrongLength
	case ErrInvalidEncoding:
		return e.Kind == InvalidEncoding
	}
	return false
}

// parse validates value as a key of the given kind character. When
// seed is true the required prefix is [SeedMarker] followed by prefix.
// On success value is returned unchanged.
func parse(value string, prefix rune, seed bool) (string, error) {
	count := utf8.RuneCountInString(value)
	if count != Length {
		return "", &ParseError{Kind: WrongLength, Length: count}
	}
	// RuneCountInString counts each invalid byte as one code point.
	if !utf8.ValidString(value) {
		return "", &ParseError{Kind: InvalidEncoding}
	}

	expected := requiredPrefix(prefix, seed)
	if strings.HasPrefix(value, expected) {
		return value, nil
	}
	return "", &ParseError{
		Kind:     WrongKeyType,
		Found:    leadingRunes(value, utf8.RuneCountInString(expected)),
		Expected: expected,
	}
}

// requiredPrefix returns the prefix string a key must start with.
func requiredPrefix(prefix rune, seed bool) string {
	if seed {
		return string([]rune{SeedMarker, prefix})
	}
	return string(prefix)
}

// leadingRunes returns the first n code points of s.
func leadingRunes(s string, n int) string {
	offset := 0
	for i := 0; i < n && offset < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return s[:offset]
}
