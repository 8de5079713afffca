package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes content to dir/name and returns the path.
func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fixturePath(t *testing.T, name string) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("testdata", "fixtures", name))
	require.NoError(t, err)
	return abs
}

func TestLoadScenario_ResolvesFixtureRelativeToScenario(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "if_else.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "if_else", scenario.Name)
	assert.Equal(t, filepath.Join("testdata", "fixtures", "if_else.cue"), scenario.Fixture)
	assert.True(t, scenario.Golden)
	assert.True(t, scenario.Packed(), "pack defaults to true")
	require.Len(t, scenario.Assertions, 5)
	assert.Equal(t, []string{"Entry", "Block", "Block", "Exit"}, scenario.Assertions[0].Kinds)
	assert.True(t, scenario.Assertions[1].Conditional)
}

func TestLoadScenario_AbsoluteFixtureKept(t *testing.T) {
	dir := t.TempDir()
	abs := fixturePath(t, "assignment.yaml")
	path := writeScenario(t, dir, "s.yaml", "name: s\nfixture: "+abs+"\npack: false\ngolden: true\n")

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, abs, scenario.Fixture)
	assert.False(t, scenario.Packed())
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "s.yaml", "name: s\nfixture: x.cue\nasertions: []\n")

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
	assert.Contains(t, err.Error(), "asertions")
}

func TestLoadScenario_MissingFixture(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "s.yaml", "name: s\nfixture: gone.cue\ngolden: true\n")

	_, err := LoadScenario(path)
	var notFound *FixtureNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "gone.cue", notFound.FixturePath)
	assert.Equal(t, filepath.Join(dir, "gone.cue"), notFound.ResolvedPath)
	assert.Contains(t, err.Error(), `scenario "s" references fixture "gone.cue"`)
}

func TestValidateScenario(t *testing.T) {
	yes := true
	tests := []struct {
		name    string
		s       Scenario
		wantErr string
	}{
		{"no name", Scenario{Fixture: "f", Golden: true}, "name is required"},
		{"no fixture", Scenario{Name: "n", Golden: true}, "fixture is required"},
		{"nothing to check", Scenario{Name: "n", Fixture: "f"}, "needs assertions"},
		{"golden only", Scenario{Name: "n", Fixture: "f", Golden: true}, ""},
		{"missing type", Scenario{Name: "n", Fixture: "f", Assertions: []Assertion{{}}}, "assertions[0]: type is required"},
		{"unknown type", Scenario{Name: "n", Fixture: "f", Assertions: []Assertion{{Type: "trace_count"}}}, `unknown assertion type "trace_count"`},
		{"bad kind", Scenario{Name: "n", Fixture: "f", Assertions: []Assertion{{Type: AssertTreeContains, Kind: "Call"}}}, `unknown operation kind "Call"`},
		{"negative count", Scenario{Name: "n", Fixture: "f", Assertions: []Assertion{{Type: AssertTreeCount, Kind: "Literal", Count: -1}}}, "non-negative"},
		{"empty order", Scenario{Name: "n", Fixture: "f", Assertions: []Assertion{{Type: AssertTreeOrder}}}, "kinds list is required"},
		{"bad order kind", Scenario{Name: "n", Fixture: "f", Assertions: []Assertion{{Type: AssertTreeOrder, Kinds: []string{"Block", "Nope"}}}}, `unknown operation kind "Nope"`},
		{"short hash", Scenario{Name: "n", Fixture: "f", Assertions: []Assertion{{Type: AssertTreeHash, Hash: "abc"}}}, "64 hex"},
		{"one block", Scenario{Name: "n", Fixture: "f", Assertions: []Assertion{{Type: AssertBlockCount, Count: 1}}}, "at least 2 blocks"},
		{"one block kind", Scenario{Name: "n", Fixture: "f", Assertions: []Assertion{{Type: AssertBlockKinds, Kinds: []string{"Entry"}}}}, "at least Entry and Exit"},
		{"negative edge", Scenario{Name: "n", Fixture: "f", Assertions: []Assertion{{Type: AssertEdge, From: -1}}}, "non-negative"},
		{"valid filter", Scenario{Name: "n", Fixture: "f", Assertions: []Assertion{{Type: AssertTreeContains, Kind: "Literal", Implicit: &yes}}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateScenario(&tt.s)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
