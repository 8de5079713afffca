// Package testutil provides helpers shared by tests: bound-tree builders
// with deterministic syntax, a fixed run identifier source, and a logger
// that writes to the test log.
package testutil
