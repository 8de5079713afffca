package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/opflow/internal/fixture"
	"github.com/roach88/opflow/internal/harness"
)

// fixtureFiles expands command arguments into fixture files. Directories
// are walked; files are taken as given, whatever their extension.
func fixtureFiles(f *OutputFormatter, args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, f.Error(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("path not found: %s", arg), nil)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := fixture.FindFixtureFiles(arg)
		if err != nil {
			return nil, f.Error(ExitCommandError, ErrCodeScanError, fmt.Sprintf("error scanning directory: %v", err), nil)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, f.Error(ExitCommandError, ErrCodeNoFiles, "no fixture files found", nil)
	}
	return files, nil
}

// translated pairs a fixture file with its outcome. Exactly one of Result
// and Err is set.
type translated struct {
	Path    string
	Fixture *fixture.Fixture
	Result  *harness.Result
	Err     error
}

// translateFiles loads and translates files concurrently, at most
// opts.workers() at a time. Every fixture gets its own Factory. Results
// come back in file order; per-file failures are reported in Err, and the
// returned error is reserved for cancellation.
func translateFiles(ctx context.Context, opts *RootOptions, files []string) ([]translated, error) {
	h := harness.New(harness.WithLogger(opts.logger()))
	cfg := opts.settings()
	format := opts.fixtureFormat()

	out := make([]translated, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i].Path = path
			fx, err := fixture.LoadFileAs(path, format)
			if err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Fixture = fx
			out[i].Result, out[i].Err = h.Translate(gctx, fx, cfg.Pack)
			if errors.Is(out[i].Err, context.Canceled) {
				return out[i].Err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// failures collects the per-file errors of a batch.
func failures(batch []translated) []error {
	var errs []error
	for _, t := range batch {
		var le *fixture.LoadError
		switch {
		case t.Err == nil:
		case errors.As(t.Err, &le):
			errs = append(errs, t.Err)
		default:
			errs = append(errs, fmt.Errorf("%s: %w", t.Path, t.Err))
		}
	}
	return errs
}
