// Package types defines the core data types for the stakegraph client.
//
// This package contains the fundamental types used throughout stakegraph:
//   - Atom: A graph node representing an entity (thing, account, person, organization)
//   - Triple: A directed (subject, predicate, object) edge between atoms
//   - Term: The addressable staking unit, either an atom or a triple
//   - Vault: The aggregate stake pool on a term under one bonding curve
//   - Position: One account's stake (shares) in a vault
//   - ProcessedPosition: A classified, ranked pipeline output entry
//
// # Share Values
//
// Share counts are decimal strings on the wire and can exceed 64 bits.
// They are always parsed with ParseShares into math/big integers; no code
// in this repository may widen a share value into a fixed-width or
// floating-point type.
//
// # Label Resolution
//
// Every formatting path resolves display labels through Atom.LabelOr,
// which applies one fixed fallback order: label, then raw data, then the
// caller's fallback string. This is the only place missing labels are
// handled.
//
// # JSON Serialization
//
// All types are designed to be JSON-serializable with struct tags that
// match the graph backend's wire format.
package types
