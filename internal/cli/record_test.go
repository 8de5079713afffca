package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/opflow/internal/store"
)

func TestRecordCommand_Text(t *testing.T) {
	opts := testOptions(t, "text")

	out, err := execute(NewRecordCommand(opts), fixturesDir, "--run-id", "baseline")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Recorded 3 snapshot(s) in run baseline")
	assert.Contains(t, out, "  if_else: tree ")
	assert.Contains(t, out, ", graph ")

	st, err := store.Open(opts.Config.DB)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	run, err := st.ReadRun(ctx, "baseline")
	require.NoError(t, err)
	assert.True(t, run.Packed)

	snaps, err := st.ReadSnapshots(ctx, "baseline")
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, "assignment", snaps[0].Fixture)
	assert.Empty(t, snaps[0].GraphHash, "expression bodies have no graph")
	assert.NotEmpty(t, snaps[1].GraphHash)
}

func TestRecordCommand_JSONGeneratesRunID(t *testing.T) {
	opts := testOptions(t, "json")

	out, err := execute(NewRecordCommand(opts), fixturePath("if_else.cue"))
	require.NoError(t, err)

	var resp struct {
		Data RecordResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Data.RunID, 36)
	assert.Equal(t, int64(1), resp.Data.Seq)
	assert.True(t, resp.Data.Packed)
	require.Len(t, resp.Data.Snapshots, 1)
	assert.Equal(t, resp.Data.RunID, resp.Data.Snapshots[0].RunID)
}

func TestRecordCommand_SecondRunAdvancesSeq(t *testing.T) {
	opts := testOptions(t, "json")

	_, err := execute(NewRecordCommand(opts), fixturePath("if_else.cue"), "--run-id", "one")
	require.NoError(t, err)
	out, err := execute(NewRecordCommand(opts), fixturePath("if_else.cue"), "--run-id", "two")
	require.NoError(t, err)

	var resp struct {
		Data RecordResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, int64(2), resp.Data.Seq)
}

func TestRecordCommand_DuplicateFixtureNames(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	copyFixture(t, dir, "assignment.yaml")
	copyFixture(t, sub, "assignment.yaml")

	opts := testOptions(t, "text")
	out, err := execute(NewRecordCommand(opts), dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, `fixture name "assignment" used by both`)

	_, statErr := os.Stat(opts.Config.DB)
	assert.True(t, os.IsNotExist(statErr), "nothing is recorded")
}

func TestRecordCommand_BadDatabasePath(t *testing.T) {
	opts := testOptions(t, "text")
	opts.Config.DB = "/nonexistent/dir/opflow.db"

	out, err := execute(NewRecordCommand(opts), fixturePath("assignment.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E008]")
}
