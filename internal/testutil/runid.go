package testutil

// FixedRunID returns the same run identifier every time.
//
// Recording a snapshot with a FixedRunID makes the stored rows, and any
// golden output derived from them, byte-identical across runs.
//
// Thread-safety: FixedRunID is stateless and safe for concurrent use.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a fixed run identifier source. An empty id yields
// "test-run-default".
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed identifier. It implements
// store.RunIDGenerator.
func (g *FixedRunID) Generate() string {
	return g.id
}
