// Package utils provides shared helpers for the stakegraph library.
//
// This package contains:
//   - Concurrent execution helpers with semaphore-bounded fan-out (concurrent.go)
//   - Panic recovery helpers that convert panics to errors (recovery.go)
//
// The fan-out helpers back the follower/following enrichment path, where
// a bounded set of secondary lookups runs concurrently and every branch
// must complete (or fail independently) before ranking proceeds.
package utils
