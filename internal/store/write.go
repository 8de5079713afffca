package store

import (
	"context"
	"fmt"

	"github.com/roach88/opflow/internal/ir"
)

// BeginRun writes a new run stamped with the running IR and translator
// versions and returns it with its assigned seq.
func (s *Store) BeginRun(ctx context.Context, gen RunIDGenerator, packed bool) (Run, error) {
	run := Run{
		ID:                gen.Generate(),
		IRVersion:         ir.IRVersion,
		TranslatorVersion: ir.TranslatorVersion,
		Packed:            packed,
	}
	if err := s.WriteRun(ctx, run); err != nil {
		return Run{}, err
	}
	return s.ReadRun(ctx, run.ID)
}

// WriteRun inserts a run record. Uses ON CONFLICT(id) DO NOTHING for
// idempotency: rewriting an existing run keeps its original seq.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("write run: empty run id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, ir_version, translator_version, packed)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.IRVersion,
		run.TranslatorVersion,
		run.Packed,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// WriteSnapshots inserts snapshots in a single transaction. A snapshot for
// a (run, fixture) pair that already exists is silently ignored.
//
// Note: every snapshot's run must already exist (foreign key constraint).
func (s *Store) WriteSnapshots(ctx context.Context, snaps []Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write snapshots: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshots
		(run_id, fixture, path, fixture_hash, tree_hash, graph_hash, findings)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, fixture) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("write snapshots: prepare: %w", err)
	}
	defer stmt.Close()

	for _, snap := range snaps {
		findings, err := marshalFindings(snap.Findings)
		if err != nil {
			return fmt.Errorf("write snapshot %s: %w", snap.Fixture, err)
		}
		_, err = stmt.ExecContext(ctx,
			snap.RunID,
			snap.Fixture,
			snap.Path,
			snap.FixtureHash,
			snap.TreeHash,
			snap.GraphHash,
			findings,
		)
		if err != nil {
			return fmt.Errorf("write snapshot %s: %w", snap.Fixture, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write snapshots: commit: %w", err)
	}
	return nil
}

// WriteSnapshot inserts a single snapshot.
func (s *Store) WriteSnapshot(ctx context.Context, snap Snapshot) error {
	return s.WriteSnapshots(ctx, []Snapshot{snap})
}
