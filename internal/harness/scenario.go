package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/opflow/internal/ir"
)

// Scenario is one translation check.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is the bound-tree fixture to translate. Relative paths are
	// resolved against the scenario file's directory by LoadScenario.
	Fixture string `yaml:"fixture"`

	// Pack controls whether the graph is packed. Nil means true.
	Pack *bool `yaml:"pack,omitempty"`

	// Golden compares the tree and graph dumps with a golden file.
	Golden bool `yaml:"golden,omitempty"`

	// Assertions are evaluated after the structural checks pass.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Packed reports whether the scenario's graph is packed.
func (s *Scenario) Packed() bool {
	return s.Pack == nil || *s.Pack
}

// Assertion checks one property of the translated tree or its graph.
type Assertion struct {
	// Type selects the check; see the Assert* constants.
	Type string `yaml:"type"`

	// Kind is an operation kind name (tree_contains, tree_count).
	Kind string `yaml:"kind,omitempty"`

	// Text restricts matches to operations whose syntax text is exactly
	// this (tree_contains, tree_count).
	Text string `yaml:"text,omitempty"`

	// Implicit restricts matches by implicitness when set.
	Implicit *bool `yaml:"implicit,omitempty"`

	// Count is the expected number (tree_count, block_count).
	Count int `yaml:"count,omitempty"`

	// Kinds is the expected sequence (tree_order: operation kinds,
	// block_kinds: block kinds).
	Kinds []string `yaml:"kinds,omitempty"`

	// From and To are block ordinals (edge).
	From int `yaml:"from,omitempty"`
	To   int `yaml:"to,omitempty"`

	// Conditional restricts an edge assertion to the conditional branch.
	Conditional bool `yaml:"conditional,omitempty"`

	// Hash is the expected tree hash (tree_hash).
	Hash string `yaml:"hash,omitempty"`
}

// Assertion type constants.
const (
	AssertTreeContains = "tree_contains"
	AssertTreeCount    = "tree_count"
	AssertTreeOrder    = "tree_order"
	AssertTreeHash     = "tree_hash"
	AssertBlockCount   = "block_count"
	AssertBlockKinds   = "block_kinds"
	AssertEdge         = "edge"
)

// FixtureNotFoundError is returned when a scenario references a fixture
// file that does not exist.
type FixtureNotFoundError struct {
	Scenario     string
	FixturePath  string
	ResolvedPath string
}

func (e *FixtureNotFoundError) Error() string {
	return fmt.Sprintf("scenario %q references fixture %q which does not exist (resolved to: %s)",
		e.Scenario, e.FixturePath, e.ResolvedPath)
}

// LoadScenario reads and parses a scenario YAML file, resolving the
// fixture path relative to the scenario. Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	original := scenario.Fixture
	if original != "" && !filepath.IsAbs(original) {
		scenario.Fixture = filepath.Join(filepath.Dir(path), original)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if _, err := os.Stat(scenario.Fixture); os.IsNotExist(err) {
		return nil, &FixtureNotFoundError{Scenario: scenario.Name, FixturePath: original, ResolvedPath: scenario.Fixture}
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Fixture == "" {
		return fmt.Errorf("fixture is required")
	}
	if len(s.Assertions) == 0 && !s.Golden {
		return fmt.Errorf("a scenario needs assertions, golden: true, or both")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTreeContains, AssertTreeCount:
		if _, ok := ir.ParseOperationKind(a.Kind); !ok {
			return fmt.Errorf("assertions[%d]: unknown operation kind %q for %s", index, a.Kind, a.Type)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertTreeOrder:
		if len(a.Kinds) == 0 {
			return fmt.Errorf("assertions[%d]: kinds list is required for tree_order", index)
		}
		for _, k := range a.Kinds {
			if _, ok := ir.ParseOperationKind(k); !ok {
				return fmt.Errorf("assertions[%d]: unknown operation kind %q", index, k)
			}
		}
	case AssertTreeHash:
		if len(a.Hash) != 64 {
			return fmt.Errorf("assertions[%d]: hash must be 64 hex characters", index)
		}
	case AssertBlockCount:
		if a.Count < 2 {
			return fmt.Errorf("assertions[%d]: a graph has at least 2 blocks", index)
		}
	case AssertBlockKinds:
		if len(a.Kinds) < 2 {
			return fmt.Errorf("assertions[%d]: kinds must list at least Entry and Exit", index)
		}
	case AssertEdge:
		if a.From < 0 || a.To < 0 {
			return fmt.Errorf("assertions[%d]: block ordinals must be non-negative", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
