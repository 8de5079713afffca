package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/opflow/internal/flow"
	"github.com/roach88/opflow/internal/ir"
)

// CFGOptions holds flags for the cfg command.
type CFGOptions struct {
	*RootOptions
	Detail bool // print full statement dumps instead of the table
}

// GraphOutput is the machine-readable form of one graph.
type GraphOutput struct {
	Fixture   string          `json:"fixture"`
	GraphHash string          `json:"graph_hash"`
	Blocks    int             `json:"blocks"`
	Graph     json.RawMessage `json:"graph"`
}

// NewCFGCommand creates the cfg command.
func NewCFGCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CFGOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cfg <fixture|dir>...",
		Short: "Build control-flow graphs for fixture bodies",
		Long: `Translate each fixture and build the control-flow graph of its body.

Fixtures whose body is not a block have no graph and are skipped.
Use --pack=false to see the graph before empty blocks are removed.

Examples:
  opflow cfg testdata/while_break.yaml
  opflow cfg testdata/while_break.yaml --detail
  opflow cfg fixtures/ --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCFG(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Detail, "detail", false, "print full operation dumps per block")

	return cmd
}

func runCFG(opts *CFGOptions, args []string, cmd *cobra.Command) error {
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

	graphs := []GraphOutput{}
	for _, t := range batch {
		blocks := t.Result.Blocks()
		if blocks == nil {
			opts.logger().Info("body is not a block, no graph", "fixture", t.Fixture.Name, "kind", t.Result.Root().Kind())
			continue
		}
		if f.JSON() {
			dump, err := ir.MarshalCanonical(flow.Dump(blocks))
			if err != nil {
				return f.Error(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("dumping %s: %v", t.Fixture.Name, err), nil)
			}
			graphs = append(graphs, GraphOutput{Fixture: t.Fixture.Name, GraphHash: t.Result.GraphHash, Blocks: len(blocks), Graph: dump})
			continue
		}

		fmt.Fprintf(f.Writer, "# %s %s\n", t.Fixture.Name, f.Styles().Muted.Render(fmt.Sprintf("(graph %s, %d blocks)", short(t.Result.GraphHash), len(blocks))))
		if opts.Detail {
			fmt.Fprint(f.Writer, t.Result.Graph)
		} else {
			renderBlocks(f.Writer, blocks)
		}
		fmt.Fprintln(f.Writer)
	}

	if f.JSON() {
		return f.Success(graphs)
	}
	return nil
}

// renderBlocks draws one table row per block.
func renderBlocks(w io.Writer, blocks []*flow.BasicBlock) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Block", "Kind", "Preds", "Statements", "Branch", "Next"})

	for _, b := range blocks {
		statements := make([]string, len(b.Statements))
		for i, s := range b.Statements {
			statements[i] = operationLabel(s)
		}
		branch := ""
		if c := b.Conditional; c != nil {
			when := "true"
			if c.JumpIfFalse {
				when = "false"
			}
			branch = fmt.Sprintf("%s if %s: %s", c.Destination, when, operationLabel(c.Condition))
		}
		next := ""
		if b.Next != nil {
			next = b.Next.String()
		}
		t.AppendRow(table.Row{b.String(), b.Kind.String(), blockList(b.Predecessors()), strings.Join(statements, "\n"), branch, next})
	}
	t.Render()
}

// operationLabel is a one-line description: the operation kind and the
// source text it covers.
func operationLabel(op ir.Operation) string {
	if s := op.Syntax(); s != nil && s.Text != "" {
		return fmt.Sprintf("%s %q", op.Kind(), s.Text)
	}
	return op.Kind().String()
}

func blockList(blocks []*flow.BasicBlock) string {
	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = b.String()
	}
	return strings.Join(names, ",")
}
