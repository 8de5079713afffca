// Package verify checks the structural laws of Operation Trees and
// control-flow graphs.
//
// Validators are pure functions. They never panic on malformed input;
// every violation becomes a finding so tooling can report all problems
// at once.
package verify
