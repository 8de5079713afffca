package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/roach88/opflow/internal/fixture"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Debounce time.Duration

	// ready runs once the watcher is armed; onValidate after every pass.
	ready      func()
	onValidate func(*ValidationResult)
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch <dir>...",
		Short: "Re-validate fixtures whenever they change",
		Long: `Validate every fixture under the given directories, then watch them
and re-validate each fixture that is written or created. Runs until
interrupted.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 100*time.Millisecond, "quiet period before re-validating")

	return cmd
}

func runWatch(ctx context.Context, opts *WatchOptions, dirs []string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	logger := opts.logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start watcher", err)
	}
	defer func() { _ = watcher.Close() }()

	var initial []string
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return f.Error(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("not a directory: %s", dir), nil)
		}
		if err := watchDirRecursive(watcher, dir); err != nil {
			return WrapExitError(ExitCommandError, "failed to watch "+dir, err)
		}
		found, err := fixture.FindFixtureFiles(dir)
		if err != nil {
			return f.Error(ExitCommandError, ErrCodeScanError, fmt.Sprintf("error scanning directory: %v", err), nil)
		}
		initial = append(initial, found...)
	}
	if opts.ready != nil {
		opts.ready()
	}

	revalidate := func(files []string) error {
		if len(files) == 0 {
			return nil
		}
		result, err := validateFiles(cmd, opts.RootOptions, files)
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
		if opts.onValidate != nil {
			opts.onValidate(result)
		}
		return nil
	}

	if err := revalidate(initial); err != nil {
		return err
	}

	pending := map[string]struct{}{}
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDirRecursive(watcher, event.Name); err != nil {
						logger.Error("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, ok := fixture.FormatOf(event.Name); !ok {
				continue
			}
			logger.Debug("fixture changed", "file", event.Name, "op", event.Op.String())
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			files := make([]string, 0, len(pending))
			for path := range pending {
				files = append(files, path)
			}
			slices.Sort(files)
			clear(pending)
			if err := revalidate(files); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
