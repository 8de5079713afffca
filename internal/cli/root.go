package cli

import (
	"io"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/roach88/opflow/internal/config"
	"github.com/roach88/opflow/internal/fixture"
)

// RootOptions holds global flags and the loaded configuration for all
// commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Config is filled in before any subcommand runs.
	Config *config.Config
	Logger *slog.Logger
}

// NewRootCommand creates the root command for the opflow CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "opflow",
		Short: "Operation trees and control-flow graphs from bound trees",
		Long: `opflow translates bound syntax trees into language-neutral Operation
Trees and builds control-flow graphs over method bodies.

Bound trees are read from CUE or YAML fixtures.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	// Global flags. Every flag except --verbose and --config maps onto a
	// config key of the same name.
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (log level debug)")
	pf.StringVar(&opts.ConfigFile, "config", "", "config file (default opflow.yaml)")
	pf.StringVar(&opts.Format, "format", config.DefaultFormat, "output format (json|text)")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	pf.String("fixture-format", config.DefaultFixtureFormat, "fixture decoder (auto|cue|yaml)")
	pf.String("db", config.DefaultDB, "snapshot database path")
	pf.String("golden-dir", config.DefaultGoldenDir, "golden file directory")
	pf.Int("workers", 0, "concurrent translations (0 = one per CPU)")
	pf.Bool("pack", true, "remove empty blocks from built graphs")

	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewCFGCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewRecordCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// load resolves the layered configuration and installs the logger.
func (o *RootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigFile, cmd.Flags())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	o.Config = cfg
	o.Format = cfg.Format
	o.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	if cfg.File != "" {
		o.Logger.Debug("loaded config", "file", cfg.File)
	}
	return nil
}

// settings returns the loaded configuration, or defaults when a command
// runs without the root (as in tests).
func (o *RootOptions) settings() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	return &config.Config{
		Format:        o.Format,
		LogLevel:      config.DefaultLogLevel,
		FixtureFormat: config.DefaultFixtureFormat,
		DB:            config.DefaultDB,
		GoldenDir:     config.DefaultGoldenDir,
		Pack:          true,
	}
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o *RootOptions) workers() int {
	if w := o.settings().Workers; w > 0 {
		return w
	}
	return runtime.NumCPU()
}

// fixtureFormat maps the fixture_format setting onto a decoder; auto
// defers to the file extension.
func (o *RootOptions) fixtureFormat() fixture.Format {
	if f := o.settings().FixtureFormat; f != "auto" {
		return fixture.Format(f)
	}
	return ""
}
