// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"fmt"
	"strings"
)

// ID is a validated identifier whose kind is fixed by P: exactly
// [Length] code points, starting with P's prefix character.
//
// ID is an immutable value type. The zero value is not valid; use
// IsZero to check.
type ID[P Prefix] struct {
	id string
}

// ModuleID identifies a module ("M...").
type ModuleID = ID[ModulePrefix]

// ServerID identifies a server ("N...").
type ServerID = ID[ServerPrefix]

// ServiceID identifies a service ("V...").
type ServiceID = ID[ServicePrefix]

// ParseID validates raw as an identifier of kind P. The returned error
// is a *ParseError.
func ParseID[P Prefix](raw string) (ID[P], error) {
	value, err := parse(raw, prefixOf[P](), false)
	if err != nil {
		return ID[P]{}, err
	}
	return ID[P]{id: value}, nil
}

// MustParseID is like ParseID but panics on error. Use in tests and
// static initialization where the input is known-valid.
func MustParseID[P Prefix](raw string) ID[P] {
	id, err := ParseID[P](raw)
	if err != nil {
		panic(fmt.Sprintf("ref.MustParseID[%s](%q): %v", kindOf[P](), raw, err))
	}
	return id
}

// ParseModuleID validates raw as a module ID.
func ParseModuleID(raw string) (ModuleID, error) { return ParseID[ModulePrefix](raw) }

// ParseServerID validates raw as a server ID.
func ParseServerID(raw string) (ServerID, error) { return ParseID[ServerPrefix](raw) }

// ParseServiceID validates raw as a service ID.
func ParseServiceID(raw string) (ServiceID, error) { return ParseID[ServicePrefix](raw) }

// String returns the full identifier.
func (i ID[P]) String() string { return i.id }

// IsZero reports whether the ID is the zero value (uninitialized).
func (i ID[P]) IsZero() bool { return i.id == "" }

// Kind returns the kind name of the ID (e.g., "module").
func (i ID[P]) Kind() string { return kindOf[P]() }

// Compare orders IDs by their underlying string. It returns -1, 0, or
// +1 and is suitable for slices.SortFunc.
func (i ID[P]) Compare(other ID[P]) int { return strings.Compare(i.id, other.id) }

// MarshalText implements encoding.TextMarshaler for JSON and other
// text-based serialization formats.
func (i ID[P]) MarshalText() ([]byte, error) {
	if i.id == "" {
		return nil, nil
	}
	return []byte(i.id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Validates the
// identifier. An empty input produces the zero value.
func (i *ID[P]) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = ID[P]{}
		return nil
	}
	parsed, err := ParseID[P](string(data))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
