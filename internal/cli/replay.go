package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/opflow/internal/fixture"
	"github.com/roach88/opflow/internal/harness"
	"github.com/roach88/opflow/internal/store"
)

// ReplayFailure is a fixture that could not be translated again.
type ReplayFailure struct {
	Fixture string `json:"fixture"`
	Error   string `json:"error"`
}

// ReplayResult holds the replay outcome for a run.
type ReplayResult struct {
	RunID         string          `json:"run_id"`
	Checked       int             `json:"checked"`
	Deterministic bool            `json:"deterministic"`
	Drifts        []store.Drift   `json:"drifts"`
	Failures      []ReplayFailure `json:"failures"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [run-id]",
		Short: "Re-translate a recorded run and report drift",
		Long: `Re-translate every fixture of a recorded run and compare the fixture,
tree and graph hashes with the recorded ones. Without a run id the most
recent run is replayed. Runs recorded under a different IR major version
are refused.

Exit codes:
  0 - Every hash matched
  1 - Drift detected or a fixture could not be translated
  2 - Command error (database not found, unknown run, incompatible version)

Examples:
  opflow replay
  opflow replay baseline --db ./snapshots.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runReplay(opts *RootOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)
	ctx := cmd.Context()

	st, err := store.Open(opts.settings().DB)
	if err != nil {
		return f.Error(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to open database: %v", err), nil)
	}
	defer st.Close()

	var run store.Run
	if len(args) == 1 {
		run, err = st.ReadRun(ctx, args[0])
	} else {
		run, err = st.LatestRun(ctx)
	}
	if err != nil {
		return f.Error(ExitCommandError, ErrCodeStore, err.Error(), nil)
	}

	report, err := st.Replay(ctx, run.ID, replayTranslator(opts, run), opts.workers())
	var verr *store.VersionError
	switch {
	case errors.As(err, &verr):
		return f.Error(ExitCommandError, ErrCodeStore, verr.Error(), nil)
	case err != nil:
		return WrapExitError(ExitCommandError, "replay failed", err)
	}

	result := ReplayResult{
		RunID:         run.ID,
		Checked:       report.Checked,
		Deterministic: report.Clean(),
		Drifts:        report.Drifts,
		Failures:      []ReplayFailure{},
	}
	if result.Drifts == nil {
		result.Drifts = []store.Drift{}
	}
	for _, fail := range report.Failures {
		result.Failures = append(result.Failures, ReplayFailure{Fixture: fail.Fixture, Error: fail.Err.Error()})
	}

	if f.JSON() {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		writeReplay(f, result)
	}
	if !result.Deterministic {
		return NewExitError(ExitFailure, fmt.Sprintf("replay of %s found %d drift(s) and %d failure(s)", run.ID, len(result.Drifts), len(result.Failures)))
	}
	return nil
}

// replayTranslator re-translates a snapshot's fixture with the packing
// setting the run was recorded under.
func replayTranslator(opts *RootOptions, run store.Run) store.Translator {
	h := harness.New(harness.WithLogger(opts.logger()))
	format := opts.fixtureFormat()
	return func(ctx context.Context, rec store.Snapshot) (store.Snapshot, error) {
		fx, err := fixture.LoadFileAs(rec.Path, format)
		if err != nil {
			return store.Snapshot{}, err
		}
		r, err := h.Translate(ctx, fx, run.Packed)
		if err != nil {
			return store.Snapshot{}, err
		}
		return snapshotOf(run.ID, rec.Path, fx, r), nil
	}
}

func writeReplay(f *OutputFormatter, result ReplayResult) {
	if result.Deterministic {
		fmt.Fprintf(f.Writer, "%s Run %s: %d fixture(s) replayed, no drift\n", f.pass(), result.RunID, result.Checked)
		return
	}
	fmt.Fprintf(f.Writer, "%s Run %s: %d fixture(s) replayed\n", f.fail(), result.RunID, result.Checked)
	for _, d := range result.Drifts {
		fmt.Fprintf(f.Writer, "  %s: %s changed\n", d.Fixture, d.Field)
		fmt.Fprintf(f.Writer, "    recorded: %s\n", d.Recorded)
		fmt.Fprintf(f.Writer, "    current:  %s\n", d.Current)
	}
	for _, fail := range result.Failures {
		fmt.Fprintf(f.Writer, "  %s: %s\n", fail.Fixture, fail.Error)
	}
}
