package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/opflow/internal/fixture"
)

// Validation finding codes. Fixture load errors keep their E2xx codes.
const (
	ErrCodeTreeFinding  = "E301" // Operation Tree law violated
	ErrCodeGraphFinding = "E302" // Control-flow graph law violated
)

// ValidationIssue is one problem found in one fixture.
type ValidationIssue struct {
	Fixture string `json:"fixture"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Fixtures int               `json:"fixtures"`
	Issues   []ValidationIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <fixture|dir>...",
		Short: "Check fixtures decode and translate to well-formed trees and graphs",
		Long: `Decode every fixture, translate it, build its graph, and check the
structural laws of both: parent links, implicit flags, block placement,
edge symmetry, and (when packing) the absence of empty blocks.

Exit codes:
  0 - Every fixture is valid
  1 - At least one fixture failed to decode or broke a law
  2 - Command error (missing paths, etc.)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	files, err := fixtureFiles(f, args)
	if err != nil {
		return err
	}
	result, err := validateFiles(cmd, opts, files)
	if err != nil {
		return err
	}

	if f.JSON() {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		writeValidation(f, result)
	}
	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(result.Issues)))
	}
	return nil
}

func validateFiles(cmd *cobra.Command, opts *RootOptions, files []string) (*ValidationResult, error) {
	batch, err := translateFiles(cmd.Context(), opts, files)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "validation cancelled", err)
	}

	result := &ValidationResult{Fixtures: len(batch), Issues: []ValidationIssue{}}
	for _, t := range batch {
		result.Issues = append(result.Issues, issuesFor(t)...)
	}
	result.Valid = len(result.Issues) == 0
	return result, nil
}

// issuesFor converts a translation outcome into issues.
func issuesFor(t translated) []ValidationIssue {
	name := t.Path
	if t.Fixture != nil {
		name = t.Fixture.Name
	}

	if t.Err != nil {
		return loadIssues(name, t.Err)
	}

	var issues []ValidationIssue
	for _, finding := range t.Result.Errors {
		code := ErrCodeTreeFinding
		if strings.HasPrefix(finding, "graph: ") {
			code = ErrCodeGraphFinding
		}
		issues = append(issues, ValidationIssue{Fixture: name, Code: code, Message: finding})
	}
	return issues
}

// loadIssues reports every problem in a possibly joined load error.
func loadIssues(name string, err error) []ValidationIssue {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var issues []ValidationIssue
		for _, e := range joined.Unwrap() {
			issues = append(issues, loadIssues(name, e)...)
		}
		return issues
	}
	var le *fixture.LoadError
	if !errors.As(err, &le) {
		return []ValidationIssue{{Fixture: name, Code: ErrCodeGeneric, Message: err.Error()}}
	}
	msg := le.Message
	if le.Path != "" {
		msg = le.Path + ": " + msg
	}
	issue := ValidationIssue{Fixture: name, Code: le.Code, Message: msg, Line: le.Line, Column: le.Column}
	if le.Pos.IsValid() {
		issue.Line, issue.Column = le.Pos.Line(), le.Pos.Column()
	}
	return []ValidationIssue{issue}
}

func writeValidation(f *OutputFormatter, result *ValidationResult) {
	if result.Valid {
		fmt.Fprintf(f.Writer, "%s %d fixture(s) valid\n", f.pass(), result.Fixtures)
		return
	}
	fmt.Fprintln(f.Writer, f.fail(), "Validation failed")
	fmt.Fprintln(f.Writer)
	for _, issue := range result.Issues {
		if issue.Line > 0 {
			fmt.Fprintf(f.Writer, "%s:%d:%d\n", issue.Fixture, issue.Line, issue.Column)
		} else {
			fmt.Fprintf(f.Writer, "%s\n", issue.Fixture)
		}
		fmt.Fprintf(f.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}
}
