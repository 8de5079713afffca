package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/opflow/internal/fixture"
	"github.com/roach88/opflow/internal/harness"
	"github.com/roach88/opflow/internal/store"
)

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	RunID string // fixed run id; generated when empty
}

// RecordResult summarizes a recorded run.
type RecordResult struct {
	RunID     string           `json:"run_id"`
	Seq       int64            `json:"seq"`
	Packed    bool             `json:"packed"`
	Snapshots []store.Snapshot `json:"snapshots"`
}

// fixedRunID lets --run-id stand in for the UUIDv7 generator.
type fixedRunID string

func (id fixedRunID) Generate() string { return string(id) }

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RecordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "record <fixture|dir>...",
		Short: "Record translation hashes as a snapshot run",
		Long: `Translate every fixture and store its fixture, tree and graph hashes
in the snapshot database as a new run. Use replay to check that later
builds still produce the same hashes.

Examples:
  opflow record fixtures/
  opflow record fixtures/ --db ./snapshots.db --run-id baseline`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run-id", "", "run identifier (default: generated UUIDv7)")

	return cmd
}

func runRecord(opts *RecordOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	cfg := opts.settings()
	ctx := cmd.Context()

	files, err := fixtureFiles(f, args)
	if err != nil {
		return err
	}
	batch, err := translateFiles(ctx, opts.RootOptions, files)
	if err != nil {
		return WrapExitError(ExitCommandError, "record cancelled", err)
	}
	if errs := failures(batch); len(errs) > 0 {
		return reportFailures(f, errs)
	}

	seen := make(map[string]string, len(batch))
	for _, t := range batch {
		if prev, ok := seen[t.Fixture.Name]; ok {
			return f.Error(ExitCommandError, ErrCodeGeneric,
				fmt.Sprintf("fixture name %q used by both %s and %s", t.Fixture.Name, prev, t.Path), nil)
		}
		seen[t.Fixture.Name] = t.Path
	}

	st, err := store.Open(cfg.DB)
	if err != nil {
		return f.Error(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to open database: %v", err), nil)
	}
	defer st.Close()

	var gen store.RunIDGenerator = store.UUIDv7Generator{}
	if opts.RunID != "" {
		gen = fixedRunID(opts.RunID)
	}
	run, err := st.BeginRun(ctx, gen, cfg.Pack)
	if err != nil {
		return f.Error(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to begin run: %v", err), nil)
	}

	snaps := make([]store.Snapshot, len(batch))
	for i, t := range batch {
		snaps[i] = snapshotOf(run.ID, t.Path, t.Fixture, t.Result)
	}
	if err := st.WriteSnapshots(ctx, snaps); err != nil {
		return f.Error(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to write snapshots: %v", err), nil)
	}
	opts.logger().Debug("recorded run", "run", run.ID, "seq", run.Seq, "snapshots", len(snaps))

	if f.JSON() {
		return f.Success(RecordResult{RunID: run.ID, Seq: run.Seq, Packed: run.Packed, Snapshots: snaps})
	}
	fmt.Fprintf(f.Writer, "%s Recorded %d snapshot(s) in run %s\n", f.pass(), len(snaps), run.ID)
	for _, s := range snaps {
		fmt.Fprintf(f.Writer, "  %s: tree %s", s.Fixture, short(s.TreeHash))
		if s.GraphHash != "" {
			fmt.Fprintf(f.Writer, ", graph %s", short(s.GraphHash))
		}
		if n := len(s.Findings); n > 0 {
			fmt.Fprintf(f.Writer, " (%d finding(s))", n)
		}
		fmt.Fprintln(f.Writer)
	}
	return nil
}

// snapshotOf captures the hashes of one translation.
func snapshotOf(runID, path string, fx *fixture.Fixture, r *harness.Result) store.Snapshot {
	return store.Snapshot{
		RunID:       runID,
		Fixture:     fx.Name,
		Path:        path,
		FixtureHash: fx.Hash,
		TreeHash:    r.TreeHash,
		GraphHash:   r.GraphHash,
		Findings:    r.Errors,
	}
}
