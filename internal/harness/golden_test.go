package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_IfElse(t *testing.T) {
	result, err := RunWithGolden(t, loadScenario(t, "if_else.yaml"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestGoldenText_TreeOnly(t *testing.T) {
	r := &Result{Tree: "Empty\n"}
	assert.Equal(t, "# tree\nEmpty\n", string(GoldenText(r)))

	r.Graph = "B0 Entry\n"
	assert.Equal(t, "# tree\nEmpty\n# graph\nB0 Entry\n", string(GoldenText(r)))
}

func TestCheckGolden(t *testing.T) {
	dir := t.TempDir()
	r := &Result{Scenario: "s", Tree: "Block\n  Empty\n"}

	err := CheckGolden(dir, r, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read golden file")

	require.NoError(t, CheckGolden(filepath.Join(dir, "nested"), r, true))
	require.NoError(t, CheckGolden(filepath.Join(dir, "nested"), r, false))
	written, err := os.ReadFile(filepath.Join(dir, "nested", "s.golden"))
	require.NoError(t, err)
	assert.Equal(t, GoldenText(r), written)

	r.Tree = "Block\n  Return\n"
	err = CheckGolden(filepath.Join(dir, "nested"), r, false)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "golden", ae.Type)
	assert.Equal(t, `line 3: want "  Empty", got "  Return"`, ae.Actual)
}
