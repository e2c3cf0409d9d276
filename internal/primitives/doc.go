// Package primitives provides the foundational, zero-dependency data structures
// for the statechart engine: Event, Context, State, Transition, Statechart and
// the Predicate/Contracted pair used for design-by-contract.
//
// This package uses ONLY the Go standard library. internal/core builds the
// interpreter on top of these types; internal/extensibility and the builder
// package are convenience layers. Third-party dependencies live in
// internal/core, internal/config and internal/diagnostics.
package primitives
