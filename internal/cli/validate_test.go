package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/opflow/internal/fixture"
	"github.com/roach88/opflow/internal/harness"
)

func TestValidateCommand_Valid(t *testing.T) {
	cmd := NewValidateCommand(testOptions(t, "text"))

	out, err := execute(cmd, fixturesDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 3 fixture(s) valid")
}

func TestValidateCommand_ValidJSON(t *testing.T) {
	cmd := NewValidateCommand(testOptions(t, "json"))

	out, err := execute(cmd, fixturesDir)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, 3, resp.Data.Fixtures)
	assert.Empty(t, resp.Data.Issues)
}

func TestValidateCommand_DecodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.cue")
	require.NoError(t, os.WriteFile(path, []byte("body: {\n\tkind: \"Block\"\n\tstatements: [\n"), 0o644))

	cmd := NewValidateCommand(testOptions(t, "text"))
	out, err := execute(cmd, path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, fixture.ErrCodeDecode)
}

func TestValidateCommand_MissingBodyJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbols: {}\n"), 0o644))

	cmd := NewValidateCommand(testOptions(t, "json"))
	out, err := execute(cmd, path, fixturePath("if_else.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Data ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Data.Valid)
	assert.Equal(t, 2, resp.Data.Fixtures)
	require.Len(t, resp.Data.Issues, 1)
	assert.Equal(t, fixture.ErrCodeMissingBody, resp.Data.Issues[0].Code)
	assert.Equal(t, path, resp.Data.Issues[0].Fixture)
}

func TestValidateCommand_PathNotFound(t *testing.T) {
	cmd := NewValidateCommand(testOptions(t, "text"))

	_, err := execute(cmd, "/nonexistent")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestIssuesFor_Findings(t *testing.T) {
	fx := &fixture.Fixture{Name: "sample"}
	issues := issuesFor(translated{
		Path:    "sample.cue",
		Fixture: fx,
		Result:  nil,
		Err:     &fixture.LoadError{Code: fixture.ErrCodeUnknownSymbol, Message: "unknown symbol \"y\"", Path: "body.operand", Line: 4, Column: 2},
	})
	require.Len(t, issues, 1)
	assert.Equal(t, "sample", issues[0].Fixture)
	assert.Equal(t, fixture.ErrCodeUnknownSymbol, issues[0].Code)
	assert.Equal(t, "body.operand: unknown symbol \"y\"", issues[0].Message)
	assert.Equal(t, 4, issues[0].Line)
	assert.Equal(t, 2, issues[0].Column)
}

func TestIssuesFor_LawFindings(t *testing.T) {
	result := harness.NewResult("loop")
	result.AddError("tree: Literal has no parent")
	result.AddError("graph: B2 lists B1 as predecessor but B1 does not branch to B2")

	issues := issuesFor(translated{Path: "loop.yaml", Fixture: &fixture.Fixture{Name: "loop"}, Result: result})
	require.Len(t, issues, 2)
	assert.Equal(t, ErrCodeTreeFinding, issues[0].Code)
	assert.Equal(t, ErrCodeGraphFinding, issues[1].Code)
	assert.Zero(t, issues[1].Line)
}
