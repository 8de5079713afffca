// Package harness runs translation scenarios against bound-tree fixtures.
//
// A scenario names one fixture, translates it into an Operation Tree,
// builds the control-flow graph of the body, checks both against the
// structural laws in package verify, and then evaluates its assertions.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: if_without_else
//	description: "if without else joins into Exit after Pack"
//	fixture: ../fixtures/if_without_else.cue
//	pack: true          # optional, default true
//	golden: true        # compare tree and graph against <name>.golden
//	assertions:
//	  - type: tree_contains
//	    kind: Invocation
//	    text: "A()"
//	  - type: block_kinds
//	    kinds: [Entry, Block, Exit]
//	  - type: edge
//	    from: 0
//	    to: 2
//	    conditional: true
//
// The fixture path is resolved relative to the scenario file.
//
// # Assertion Types
//
//   - tree_contains: some operation of kind exists (optionally filtered by
//     syntax text and implicitness)
//   - tree_count: exactly count operations match
//   - tree_order: the kinds occur in this pre-order sequence
//   - tree_hash: the canonical tree hash equals hash
//   - block_count: the graph has exactly count blocks
//   - block_kinds: the block kinds, in ordinal order
//   - edge: block from reaches block to (conditional restricts the edge to
//     the conditional branch)
//
// # Determinism
//
// Translation and graph construction are pure functions of the fixture,
// so two runs of a scenario produce byte-identical dumps. Golden files
// pin those dumps; regenerate them with
//
//	go test ./internal/harness -update
package harness
