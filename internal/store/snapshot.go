package store

import (
	"github.com/google/uuid"
)

// Run is one recording session.
type Run struct {
	// ID is assigned by a RunIDGenerator.
	ID string

	// Seq is the logical clock value assigned when the run was written.
	Seq int64

	IRVersion         string
	TranslatorVersion string

	// Packed records whether graphs in this run were packed.
	Packed bool
}

// Snapshot is the recorded outcome of translating one fixture.
type Snapshot struct {
	RunID   string `json:"run_id"`
	Fixture string `json:"fixture"`

	// Path is the fixture file as given on the command line.
	Path string `json:"path"`

	FixtureHash string `json:"fixture_hash"`
	TreeHash    string `json:"tree_hash"`

	// GraphHash is empty when the fixture body is not a block.
	GraphHash string `json:"graph_hash,omitempty"`

	// Findings are the structural violations seen at record time. A
	// healthy translation records none.
	Findings []string `json:"findings,omitempty"`
}

// RunIDGenerator assigns run identifiers.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run identifiers.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
