package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/opflow/internal/ir"
	"github.com/roach88/opflow/internal/testutil"
)

func TestBeginRun_StampsVersions(t *testing.T) {
	s := createTestStore(t)

	run := createTestRun(t, s, "run-1")
	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, ir.IRVersion, run.IRVersion)
	assert.Equal(t, ir.TranslatorVersion, run.TranslatorVersion)
	assert.True(t, run.Packed)
	assert.Positive(t, run.Seq)
}

func TestBeginRun_SeqIncreases(t *testing.T) {
	s := createTestStore(t)

	first := createTestRun(t, s, "run-b")
	second := createTestRun(t, s, "run-a")
	assert.Greater(t, second.Seq, first.Seq, "seq follows insertion, not id order")
}

func TestBeginRun_UUIDv7(t *testing.T) {
	s := createTestStore(t)

	run, err := s.BeginRun(context.Background(), UUIDv7Generator{}, false)
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.False(t, run.Packed)
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first := createTestRun(t, s, "run-1")
	require.NoError(t, s.WriteRun(ctx, Run{ID: "run-1", IRVersion: "9.9.9", TranslatorVersion: "x"}))

	again, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestWriteRun_EmptyID(t *testing.T) {
	s := createTestStore(t)
	err := s.WriteRun(context.Background(), Run{})
	assert.ErrorContains(t, err, "empty run id")
}

func TestWriteSnapshots_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	snap := createTestSnapshot("run-1", "if_else", "a")
	snap.Findings = []string{"tree: Literal: parent mismatch"}
	require.NoError(t, s.WriteSnapshots(ctx, []Snapshot{snap, createTestSnapshot("run-1", "assignment", "b")}))

	got, err := s.ReadSnapshots(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "assignment", got[0].Fixture, "ordered by fixture name")
	assert.Equal(t, []string{}, got[0].Findings)
	assert.Equal(t, snap, got[1])
}

func TestWriteSnapshot_DuplicateIgnored(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	require.NoError(t, s.WriteSnapshot(ctx, createTestSnapshot("run-1", "if_else", "a")))
	require.NoError(t, s.WriteSnapshot(ctx, createTestSnapshot("run-1", "if_else", "b")))

	got, err := s.ReadSnapshots(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tree-a", got[0].TreeHash)
}

func TestWriteSnapshots_UnknownRunRollsBack(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	err := s.WriteSnapshots(ctx, []Snapshot{
		createTestSnapshot("run-1", "a", "a"),
		createTestSnapshot("missing", "b", "b"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write snapshot b")

	got, err := s.ReadSnapshots(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, got, "transaction must roll back")
}

func TestFixedRunID_SatisfiesGenerator(t *testing.T) {
	var gen RunIDGenerator = testutil.NewFixedRunID("")
	assert.Equal(t, "test-run-default", gen.Generate())
}
