package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/opflow/internal/config"
)

const (
	fixturesDir  = "../harness/testdata/fixtures"
	scenariosDir = "../harness/testdata/scenarios"
	goldenDir    = "../harness/testdata/golden"
)

// testOptions returns root options with defaults, a per-test database and
// the harness golden files.
func testOptions(t *testing.T, format string) *RootOptions {
	t.Helper()
	return &RootOptions{
		Format: format,
		Config: &config.Config{
			Format:        format,
			LogLevel:      config.DefaultLogLevel,
			FixtureFormat: config.DefaultFixtureFormat,
			DB:            filepath.Join(t.TempDir(), "opflow.db"),
			GoldenDir:     goldenDir,
			Workers:       2,
			Pack:          true,
		},
	}
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// copyFixture copies a harness fixture into dir and returns its new path.
func copyFixture(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixturesDir, name))
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func fixturePath(name string) string {
	return filepath.Join(fixturesDir, name)
}
