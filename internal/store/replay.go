package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/opflow/internal/ir"
)

// VersionError reports a run recorded under an incompatible IR schema.
type VersionError struct {
	Recorded string
	Current  string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("run recorded with IR version %s cannot be replayed by IR version %s", e.Recorded, e.Current)
}

// CheckCompatible returns a *VersionError when recorded and the running
// ir.IRVersion differ in major version.
func CheckCompatible(recorded string) error {
	return checkCompatible(recorded, ir.IRVersion)
}

func checkCompatible(recorded, current string) error {
	rv, err := semver.NewVersion(recorded)
	if err != nil {
		return fmt.Errorf("invalid recorded IR version %q: %w", recorded, err)
	}
	cv, err := semver.NewVersion(current)
	if err != nil {
		return fmt.Errorf("invalid IR version %q: %w", current, err)
	}
	if rv.Major() != cv.Major() {
		return &VersionError{Recorded: recorded, Current: current}
	}
	return nil
}

// Translator produces a fresh snapshot for a recorded one. It is called
// concurrently for different fixtures.
type Translator func(ctx context.Context, recorded Snapshot) (Snapshot, error)

// Drift is one recorded value that no longer matches.
type Drift struct {
	Fixture  string `json:"fixture"`
	Field    string `json:"field"`
	Recorded string `json:"recorded"`
	Current  string `json:"current"`
}

// ReplayFailure is a fixture that could not be translated again.
type ReplayFailure struct {
	Fixture string
	Err     error
}

// ReplayReport is the outcome of replaying a run. Drifts and Failures are
// ordered by fixture name.
type ReplayReport struct {
	Run      Run
	Checked  int
	Drifts   []Drift
	Failures []ReplayFailure
}

// Clean reports whether every fixture replayed to identical hashes.
func (r *ReplayReport) Clean() bool {
	return len(r.Drifts) == 0 && len(r.Failures) == 0
}

// Replay re-translates every snapshot of a run with up to workers
// concurrent calls to translate and compares the results.
//
// The returned error is reserved for replays that could not start or were
// cancelled: an unknown run, an incompatible IR version, or ctx expiring.
// Translation errors become ReplayFailures.
func (s *Store) Replay(ctx context.Context, runID string, translate Translator, workers int) (*ReplayReport, error) {
	run, err := s.ReadRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if err := CheckCompatible(run.IRVersion); err != nil {
		return nil, err
	}

	recorded, err := s.ReadSnapshots(ctx, runID)
	if err != nil {
		return nil, err
	}

	current := make([]Snapshot, len(recorded))
	errs := make([]error, len(recorded))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range recorded {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			current[i], errs[i] = translate(gctx, recorded[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("replay %s: %w", runID, err)
	}

	report := &ReplayReport{Run: run, Checked: len(recorded)}
	for i, rec := range recorded {
		if errs[i] != nil {
			report.Failures = append(report.Failures, ReplayFailure{Fixture: rec.Fixture, Err: errs[i]})
			continue
		}
		report.Drifts = append(report.Drifts, Compare(rec, current[i])...)
	}
	return report, nil
}

// Compare lists the fields of current that differ from recorded.
func Compare(recorded, current Snapshot) []Drift {
	var drifts []Drift
	check := func(field, was, now string) {
		if was != now {
			drifts = append(drifts, Drift{Fixture: recorded.Fixture, Field: field, Recorded: was, Current: now})
		}
	}
	check("fixture_hash", recorded.FixtureHash, current.FixtureHash)
	check("tree_hash", recorded.TreeHash, current.TreeHash)
	check("graph_hash", recorded.GraphHash, current.GraphHash)
	check("findings", strings.Join(recorded.Findings, "; "), strings.Join(current.Findings, "; "))
	return drifts
}
