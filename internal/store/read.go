package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned when a run id or the latest run does not exist.
var ErrRunNotFound = errors.New("run not found")

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const runColumns = `seq, id, ir_version, translator_version, packed`

func scanRun(row scanner) (Run, error) {
	var run Run
	if err := row.Scan(&run.Seq, &run.ID, &run.IRVersion, &run.TranslatorVersion, &run.Packed); err != nil {
		return Run{}, err
	}
	return run, nil
}

// ReadRun returns the run with the given id.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %q: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %q: %w", id, err)
	}
	return run, nil
}

// LatestRun returns the run with the highest seq.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY seq DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("latest run: %w", ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// ListRuns returns every run ordered by seq ASC.
// Returns an empty slice (not nil) when the log is empty.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

const snapshotColumns = `run_id, fixture, path, fixture_hash, tree_hash, graph_hash, findings`

func scanSnapshot(row scanner) (Snapshot, error) {
	var snap Snapshot
	var findings string
	err := row.Scan(&snap.RunID, &snap.Fixture, &snap.Path, &snap.FixtureHash, &snap.TreeHash, &snap.GraphHash, &findings)
	if err != nil {
		return Snapshot{}, fmt.Errorf("scan snapshot: %w", err)
	}
	if snap.Findings, err = unmarshalFindings(findings); err != nil {
		return Snapshot{}, fmt.Errorf("scan snapshot %s: %w", snap.Fixture, err)
	}
	return snap, nil
}

func (s *Store) querySnapshots(ctx context.Context, where string, arg any) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+snapshotColumns+`
		FROM snapshots
		WHERE `+where+` = ?
		ORDER BY fixture COLLATE BINARY ASC, run_id COLLATE BINARY ASC
	`, arg)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snaps := []Snapshot{}
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snaps, nil
}

// ReadSnapshots returns the snapshots of a run ordered by fixture name.
// Returns an empty slice (not nil) if the run recorded nothing.
func (s *Store) ReadSnapshots(ctx context.Context, runID string) ([]Snapshot, error) {
	snaps, err := s.querySnapshots(ctx, "run_id", runID)
	if err != nil {
		return nil, fmt.Errorf("read snapshots for run %q: %w", runID, err)
	}
	return snaps, nil
}

// FindByFixtureHash returns every snapshot, across runs, recorded for a
// fixture with the given content hash.
func (s *Store) FindByFixtureHash(ctx context.Context, hash string) ([]Snapshot, error) {
	snaps, err := s.querySnapshots(ctx, "fixture_hash", hash)
	if err != nil {
		return nil, fmt.Errorf("find snapshots by fixture hash: %w", err)
	}
	return snaps, nil
}
