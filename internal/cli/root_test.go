package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "opflow", cmd.Use)
	assert.Contains(t, cmd.Long, "Operation")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"translate", "cfg", "validate", "record", "replay", "test", "watch"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	tests := map[string]string{
		"format":         "text",
		"log-level":      "info",
		"fixture-format": "auto",
		"db":             "opflow.db",
		"golden-dir":     "testdata/golden",
		"workers":        "0",
		"pack":           "true",
	}
	for name, def := range tests {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, def, flag.DefValue, name)
	}
}

func TestSubcommandFlags(t *testing.T) {
	cmd := NewRootCommand()

	translateCmd, _, err := cmd.Find([]string{"translate"})
	require.NoError(t, err)
	outputFlag := translateCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	recordCmd, _, err := cmd.Find([]string{"record"})
	require.NoError(t, err)
	assert.NotNil(t, recordCmd.Flags().Lookup("run-id"))

	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)
	assert.NotNil(t, testCmd.Flags().Lookup("update"))
	assert.NotNil(t, testCmd.Flags().Lookup("filter"))

	watchCmd, _, err := cmd.Find([]string{"watch"})
	require.NoError(t, err)
	debounce := watchCmd.Flags().Lookup("debounce")
	require.NotNil(t, debounce)
	assert.Equal(t, "100ms", debounce.DefValue)
}

func TestRootLoadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "opflow.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("format: json\nworkers: 3\npack: false\n"), 0o644))

	cmd := NewRootCommand()
	out, err := execute(cmd, "--config", cfgFile, "translate", fixturePath("assignment.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)
}

func TestRootFlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "opflow.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("format: json\n"), 0o644))

	cmd := NewRootCommand()
	out, err := execute(cmd, "--config", cfgFile, "--format", "text", "translate", fixturePath("assignment.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "# assignment (tree ")
}

func TestRootInvalidConfig(t *testing.T) {
	cmd := NewRootCommand()
	_, err := execute(cmd, "--format", "xml", "translate", fixturePath("assignment.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRootVerboseLogsToStderr(t *testing.T) {
	cmd := NewRootCommand()
	stderr := &bytes.Buffer{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"-v", "cfg", fixturePath("assignment.yaml")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "body is not a block")
}

func TestRootOptionsDefaults(t *testing.T) {
	opts := &RootOptions{Format: "json"}

	cfg := opts.settings()
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "opflow.db", cfg.DB)
	assert.True(t, cfg.Pack)
	assert.Positive(t, opts.workers())
	assert.Empty(t, opts.fixtureFormat())
	assert.NotNil(t, opts.logger())
}
