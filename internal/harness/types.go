package harness

import (
	"github.com/roach88/opflow/internal/flow"
	"github.com/roach88/opflow/internal/ir"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when the structural checks and every assertion held.
	Pass bool `json:"pass"`

	Scenario    string `json:"scenario"`
	FixtureHash string `json:"fixture_hash"`
	Packed      bool   `json:"packed"`

	// Tree and Graph are the text dumps (ir.Format, flow.Format). Graph is
	// empty when the fixture body is not a block.
	Tree  string `json:"tree"`
	Graph string `json:"graph,omitempty"`

	TreeHash  string `json:"tree_hash"`
	GraphHash string `json:"graph_hash,omitempty"`

	// Errors contains structural findings and failed assertions.
	Errors []string `json:"errors,omitempty"`

	root   ir.Operation
	blocks []*flow.BasicBlock
}

// NewResult creates a passing result for the named scenario.
func NewResult(scenario string) *Result {
	return &Result{Pass: true, Scenario: scenario, Errors: []string{}}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Root is the translated Operation Tree.
func (r *Result) Root() ir.Operation { return r.root }

// Blocks is the control-flow graph, or nil when the body is not a block.
func (r *Result) Blocks() []*flow.BasicBlock { return r.blocks }
