// Package stakegraph answers structured questions over a decentralized
// knowledge graph whose nodes (atoms) and edges (triples) carry staked
// economic weight. The facade in this package wires a graph fetch
// client to the position processing pipeline and exposes the four
// operations callers consume: account lookup, atom search, and
// follower/following enumeration with interest enrichment.
//
// Every operation returns a ToolResult holding two consistent views of
// the same ranked data: a machine-consumable payload and a
// natural-language digest. See pkg/positions for the pipeline itself
// and pkg/driver for the fetch layer.
package stakegraph
