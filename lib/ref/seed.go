// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"fmt"
	"strings"
)

// Seed is a validated seed whose kind is fixed by P: exactly [Length]
// code points, starting with [SeedMarker] followed by P's prefix
// character. The seed material after the prefix is not inspected.
//
// Seed is an immutable value type. The zero value is not valid; use
// IsZero to check, or DefaultSeed for the placeholder seed.
type Seed[P Prefix] struct {
	seed string
}

// ClusterSeed is the seed of a cluster ("SC...").
type ClusterSeed = Seed[ClusterPrefix]

// provisionalSeed is "SC" followed by 54 zeros. It is not real seed
// material.
const provisionalSeed = "SC000000000000000000000000000000000000000000000000000000"

// DefaultSeed returns the placeholder seed. The value is the same for
// every P and carries the cluster prefix, so for other kinds it would
// not pass ParseSeed.
//
// TODO: decide what a default seed should mean; until then this stays
// the fixed "SC000..." placeholder.
func DefaultSeed[P Prefix]() Seed[P] {
	return Seed[P]{seed: provisionalSeed}
}

// DefaultClusterSeed returns the placeholder cluster seed.
func DefaultClusterSeed() ClusterSeed { return DefaultSeed[ClusterPrefix]() }

// ParseSeed validates raw as a seed of kind P. The returned error is a
// *ParseError.
func ParseSeed[P Prefix](raw string) (Seed[P], error) {
	value, err := parse(raw, prefixOf[P](), true)
	if err != nil {
		return Seed[P]{}, err
	}
	return Seed[P]{seed: value}, nil
}

// MustParseSeed is like ParseSeed but panics on error.
func MustParseSeed[P Prefix](raw string) Seed[P] {
	seed, err := ParseSeed[P](raw)
	if err != nil {
		panic(fmt.Sprintf("ref.MustParseSeed[%s](%q): %v", kindOf[P](), raw, err))
	}
	return seed
}

// ParseClusterSeed validates raw as a cluster seed.
func ParseClusterSeed(raw string) (ClusterSeed, error) { return ParseSeed[ClusterPrefix](raw) }

// String returns the full seed string.
func (s Seed[P]) String() string { return s.seed }

// IsZero reports whether the Seed is the zero value (uninitialized).
func (s Seed[P]) IsZero() bool { return s.seed == "" }

// Kind returns the kind name of the seed (e.g., "cluster").
func (s Seed[P]) Kind() string { return kindOf[P]() }

// Compare orders seeds by their underlying string.
func (s Seed[P]) Compare(other Seed[P]) int { return strings.Compare(s.seed, other.seed) }

// MarshalText implements encoding.TextMarshaler.
func (s Seed[P]) MarshalText() ([]byte, error) {
	if s.seed == "" {
		return nil, nil
	}
	return []byte(s.seed), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Validates the
// seed. An empty input produces the zero value.
func (s *Seed[P]) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*s = Seed[P]{}
		return nil
	}
	parsed, err := ParseSeed[P](string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
