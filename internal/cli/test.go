package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/opflow/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern)
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run translation scenarios",
		Long: `Run YAML scenarios: each loads a fixture, translates it, builds its
graph, checks the structural laws, evaluates assertions, and compares
golden dumps under --golden-dir.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  opflow test ./scenarios
  opflow test ./scenarios --filter "while_*"
  opflow test ./scenarios --update
  opflow test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	cfg := opts.settings()

	if _, err := os.Stat(scenariosDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}

	paths, err := findScenarioFiles(scenariosDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find scenarios", err)
	}

	if len(paths) == 0 {
		if f.JSON() {
			return f.Success(&harness.SuiteResult{Failures: []harness.ScenarioFailure{}})
		}
		fmt.Fprintln(f.Writer, "No scenarios found.")
		return nil
	}

	h := harness.New(harness.WithLogger(opts.logger()))
	suite, err := h.RunSuite(cmd.Context(), paths, harness.SuiteOptions{
		Workers:   opts.workers(),
		GoldenDir: cfg.GoldenDir,
		Update:    opts.Update,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "test run cancelled", err)
	}

	if f.JSON() {
		if suite.Failures == nil {
			suite.Failures = []harness.ScenarioFailure{}
		}
		if err := f.Success(suite); err != nil {
			return err
		}
	} else {
		writeSuite(f, suite, opts.Update)
	}

	if suite.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenario(s) failed", suite.Failed, suite.TotalScenarios))
	}
	return nil
}

// findScenarioFiles lists scenario files whose base name, without
// extension, matches filter.
func findScenarioFiles(dir, filter string) ([]string, error) {
	all, err := harness.FindScenarios(dir)
	if err != nil || filter == "" {
		return all, err
	}
	var files []string
	for _, path := range all {
		base := filepath.Base(path)
		matched, err := filepath.Match(filter, strings.TrimSuffix(base, filepath.Ext(base)))
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern: %w", err)
		}
		if matched {
			files = append(files, path)
		}
	}
	return files, nil
}

func writeSuite(f *OutputFormatter, suite *harness.SuiteResult, updated bool) {
	for _, r := range suite.Results {
		if !r.Pass {
			continue
		}
		if updated {
			fmt.Fprintf(f.Writer, "%s %s %s\n", f.pass(), r.Scenario, f.Styles().Muted.Render("(golden updated)"))
		} else {
			fmt.Fprintf(f.Writer, "%s %s\n", f.pass(), r.Scenario)
		}
	}
	for _, fail := range suite.Failures {
		fmt.Fprintf(f.Writer, "%s %s\n", f.fail(), fail.Scenario)
		for _, e := range fail.Errors {
			for _, line := range strings.Split(strings.TrimRight(e, "\n"), "\n") {
				fmt.Fprintf(f.Writer, "  %s\n", line)
			}
		}
	}
	fmt.Fprintf(f.Writer, "\n%d passed, %d failed, %d total\n", suite.Passed, suite.Failed, suite.TotalScenarios)
}
