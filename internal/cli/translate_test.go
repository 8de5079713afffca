package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateCommand_Text(t *testing.T) {
	cmd := NewTranslateCommand(testOptions(t, "text"))

	out, err := execute(cmd, fixturePath("if_else.cue"))
	require.NoError(t, err)
	assert.Contains(t, out, "# if_else (tree ")
	assert.Contains(t, out, "Conditional (Syntax: IfStatement[0..21)")
	assert.Contains(t, out, `method=C.B()`)
}

func TestTranslateCommand_JSON(t *testing.T) {
	cmd := NewTranslateCommand(testOptions(t, "json"))

	out, err := execute(cmd, fixturesDir)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   []TranslatedTree `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 3)

	// Directory walks are sorted.
	assert.Equal(t, "assignment", resp.Data[0].Fixture)
	assert.Equal(t, "if_else", resp.Data[1].Fixture)
	assert.Equal(t, "while_break", resp.Data[2].Fixture)
	for _, tree := range resp.Data {
		assert.Len(t, tree.TreeHash, 64)
		assert.True(t, json.Valid(tree.Tree))
	}
}

func TestTranslateCommand_Deterministic(t *testing.T) {
	first, err := execute(NewTranslateCommand(testOptions(t, "json")), fixturesDir)
	require.NoError(t, err)
	second, err := execute(NewTranslateCommand(testOptions(t, "json")), fixturesDir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTranslateCommand_OutputFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "trees.json")
	cmd := NewTranslateCommand(testOptions(t, "text"))

	out, err := execute(cmd, fixturePath("assignment.yaml"), "-o", outFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 tree(s) to "+outFile)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var trees []TranslatedTree
	require.NoError(t, json.Unmarshal(data, &trees))
	require.Len(t, trees, 1)
	assert.Equal(t, "assignment", trees[0].Fixture)
}

func TestTranslateCommand_MissingArgs(t *testing.T) {
	cmd := NewTranslateCommand(testOptions(t, "text"))

	_, err := execute(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestTranslateCommand_PathNotFound(t *testing.T) {
	cmd := NewTranslateCommand(testOptions(t, "text"))

	out, err := execute(cmd, "/nonexistent/fixture.cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestTranslateCommand_EmptyDirectory(t *testing.T) {
	cmd := NewTranslateCommand(testOptions(t, "text"))

	out, err := execute(cmd, t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "no fixture files found")
}

func TestTranslateCommand_BrokenFixture(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("symbols: {}\n"), 0o644))

	cmd := NewTranslateCommand(testOptions(t, "text"))
	out, err := execute(cmd, broken, fixturePath("assignment.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "✗ Translation failed")
	assert.Contains(t, out, "E204")
}

func TestTranslateCommand_ForcedFixtureFormat(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(fixturePath("assignment.yaml"))
	require.NoError(t, err)
	path := filepath.Join(dir, "assignment.fixture")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	opts := testOptions(t, "text")
	opts.Config.FixtureFormat = "yaml"
	out, err := execute(NewTranslateCommand(opts), path)
	require.NoError(t, err)
	assert.Contains(t, out, "# assignment (tree ")
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abc", short("abc"))
	assert.Equal(t, "0123456789ab", short("0123456789abcdef"))
}
