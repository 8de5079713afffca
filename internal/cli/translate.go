package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/opflow/internal/ir"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Output string // output file path
}

// TranslatedTree is the machine-readable form of one translation.
type TranslatedTree struct {
	Fixture  string          `json:"fixture"`
	Path     string          `json:"path"`
	TreeHash string          `json:"tree_hash"`
	Tree     json.RawMessage `json:"tree"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <fixture|dir>...",
		Short: "Translate bound-tree fixtures to Operation Trees",
		Long: `Translate bound-tree fixtures and print the resulting Operation Trees.

Text output is the indented tree dump. JSON output embeds the canonical
dump whose hash identifies the tree.

Examples:
  opflow translate testdata/if_else.cue
  opflow translate fixtures/ --format json
  opflow translate fixtures/ -o trees.json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write canonical JSON dumps to this file")

	return cmd
}

func runTranslate(opts *TranslateOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	files, err := fixtureFiles(f, args)
	if err != nil {
		return err
	}
	batch, err := translateFiles(cmd.Context(), opts.RootOptions, files)
	if err != nil {
		return WrapExitError(ExitCommandError, "translation cancelled", err)
	}
	if errs := failures(batch); len(errs) > 0 {
		return reportFailures(f, errs)
	}

	trees := make([]TranslatedTree, len(batch))
	for i, t := range batch {
		dump, err := ir.MarshalCanonical(ir.Dump(t.Result.Root()))
		if err != nil {
			return f.Error(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("dumping %s: %v", t.Fixture.Name, err), nil)
		}
		trees[i] = TranslatedTree{Fixture: t.Fixture.Name, Path: t.Path, TreeHash: t.Result.TreeHash, Tree: dump}
	}

	if opts.Output != "" {
		if err := writeTrees(trees, opts.Output); err != nil {
			return f.Error(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	if f.JSON() {
		return f.Success(trees)
	}
	for i, t := range batch {
		if i > 0 {
			fmt.Fprintln(f.Writer)
		}
		fmt.Fprintf(f.Writer, "# %s %s\n", t.Fixture.Name, f.Styles().Muted.Render("(tree "+short(t.Result.TreeHash)+")"))
		fmt.Fprint(f.Writer, t.Result.Tree)
	}
	if opts.Output != "" {
		fmt.Fprintf(f.Writer, "\nWrote %d tree(s) to %s\n", len(trees), opts.Output)
	}
	return nil
}

// reportFailures prints load or translation failures and returns a
// command error.
func reportFailures(f *OutputFormatter, errs []error) error {
	if f.JSON() {
		details := make([]string, len(errs))
		for i, err := range errs {
			details[i] = err.Error()
		}
		return f.Error(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("%d fixture(s) failed", len(errs)), details)
	}
	fmt.Fprintln(f.Writer, f.fail(), "Translation failed")
	fmt.Fprintln(f.Writer)
	for _, err := range errs {
		fmt.Fprintf(f.Writer, "  %v\n", err)
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("%d fixture(s) failed", len(errs)))
}

// writeTrees writes the dumps as indented JSON.
func writeTrees(trees []TranslatedTree, filename string) error {
	data, err := json.MarshalIndent(trees, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling trees: %w", err)
	}
	return os.WriteFile(filename, data, 0o644)
}

// short abbreviates a content hash for text output.
func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
