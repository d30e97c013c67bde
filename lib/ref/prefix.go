// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

// Prefix is implemented by the stateless marker types that fix the
// kind of an [ID] or [Seed] at compile time. Implementations must
// return constants: the parser calls them on the zero value.
type Prefix interface {
	// Prefix returns the kind character. Seeds are additionally
	// prefixed by [SeedMarker].
	Prefix() rune

	// Kind returns a short human-readable name for the kind, used in
	// panic messages and logs (e.g., "module").
	Kind() string
}

// SeedMarker is the leading character shared by all seeds.
const SeedMarker = 'S'

// ModulePrefix marks module IDs.
type ModulePrefix struct{}

func (ModulePrefix) Prefix() rune { return 'M' }
func (ModulePrefix) Kind() string { return "module" }

// ServerPrefix marks server IDs.
type ServerPrefix struct{}

func (ServerPrefix) Prefix() rune { return 'N' }
func (ServerPrefix) Kind() string { return "server" }

// ServicePrefix marks service IDs.
type ServicePrefix struct{}

func (ServicePrefix) Prefix() rune { return 'V' }
func (ServicePrefix) Kind() string { return "service" }

// ClusterPrefix marks cluster seeds.
type ClusterPrefix struct{}

func (ClusterPrefix) Prefix() rune { return 'C' }
func (ClusterPrefix) Kind() string { return "cluster" }

// prefixOf returns the kind character of P.
func prefixOf[P Prefix]() rune {
	var p P
	return p.Prefix()
}

// kindOf returns the kind name of P.
func kindOf[P Prefix]() string {
	var p P
	return p.Kind()
}
