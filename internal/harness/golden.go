package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenText is the golden-file form of a result: the tree dump, then the
// graph dump when there is one.
func GoldenText(r *Result) []byte {
	var buf bytes.Buffer
	buf.WriteString("# tree\n")
	buf.WriteString(r.Tree)
	if r.Graph != "" {
		buf.WriteString("# graph\n")
		buf.WriteString(r.Graph)
	}
	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares its dumps against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, GoldenText(result))
}

// CheckGolden compares result with dir/{name}.golden outside of go test.
// With update set the file is (re)written instead.
func CheckGolden(dir string, result *Result, update bool) error {
	path := filepath.Join(dir, result.Scenario+".golden")
	got := GoldenText(result)
	if update {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create golden dir: %w", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			return fmt.Errorf("failed to write golden file: %w", err)
		}
		return nil
	}

	want, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read golden file: %w", err)
	}
	if bytes.Equal(want, got) {
		return nil
	}
	return &AssertionError{
		Type:     "golden",
		Expected: "dump matching " + path,
		Actual:   firstDifference(string(want), string(got)),
	}
}

func firstDifference(want, got string) string {
	wl, gl := strings.Split(want, "\n"), strings.Split(got, "\n")
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if w != g {
			return fmt.Sprintf("line %d: want %q, got %q", i+1, w, g)
		}
	}
	return "identical lines, different bytes"
}
