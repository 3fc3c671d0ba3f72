// Package positions implements the position processing pipeline for the
// stakegraph client.
//
// Raw position records fetched from the graph backend flow through four
// stages, applied identically for every caller:
//
//  1. Normalize: discard positions with zero or absent stake.
//  2. Classify: decide whether each position is a plain entity stake or
//     a relationship stake, determine its support/oppose stance, and
//     compute an opposition ratio from the paired vault totals.
//  3. Rank: stable-sort entries by stake magnitude using exact
//     arbitrary-precision integer comparison.
//  4. Shape: truncate to a caller-specific top-K, render a
//     natural-language digest, and report untruncated aggregate totals.
//
// # Usage
//
//	result := positions.Process(raw, viewerID, positions.Options{TopK: 10})
//
//	fmt.Println(result.Digest)        // numbered list plus totals line
//	payload := result.Payload()       // full ranked list plus summary
//
// # Determinism
//
// Every stage is a pure function over its input: identical input yields
// byte-identical output, including the digest. Downstream consumers rely
// on this for duplicate suppression.
//
// # Stance Convention
//
// A position staked on a triple's own term supports the relationship; a
// position staked on the paired counter term opposes it. The comparison
// is by term-id equality only, never by label inspection. This
// convention is fixed here and applied by every call site.
package positions
